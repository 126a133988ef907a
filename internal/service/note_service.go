package service

import (
	"context"
)

// NoteService manages the saved note snippets
type NoteService struct {
	app *App
}

// NewNoteService creates a new note service
func NewNoteService(app *App) *NoteService {
	return &NoteService{app: app}
}

// List returns the saved notes
func (s *NoteService) List(ctx context.Context) ([]string, error) {
	return s.app.Notes.List(ctx)
}

// Add saves a note and returns the updated list
func (s *NoteService) Add(ctx context.Context, text string) ([]string, error) {
	if _, err := s.app.Notes.Add(ctx, text); err != nil {
		return nil, err
	}
	return s.app.Notes.List(ctx)
}

// Remove deletes a note and returns the updated list
func (s *NoteService) Remove(ctx context.Context, text string) ([]string, error) {
	if err := s.app.Notes.Remove(ctx, text); err != nil {
		return nil, err
	}
	return s.app.Notes.List(ctx)
}
