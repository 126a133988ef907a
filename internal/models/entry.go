package models

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// MaxNotesLength bounds the free-text notes of an entry, in runes
const MaxNotesLength = 1000

// Entry is a single logged observation
type Entry struct {
	ID        string    `json:"id" db:"id"`
	Position  *Position `json:"position,omitempty" db:"-"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Category  Category  `json:"category" db:"category"`

	// Descriptive attributes, all optional
	Size           string    `json:"size,omitempty" db:"size"`
	Color          string    `json:"color,omitempty" db:"color"`
	Smell          string    `json:"smell,omitempty" db:"smell"`
	Food           FoodLabel `json:"food,omitempty" db:"food"`
	HoursSinceMeal *float64  `json:"hours_since_meal,omitempty" db:"hours_since_meal"`
	Notes          string    `json:"notes,omitempty" db:"notes"`

	// IsManual entries carry no position and never reach the map or grid
	IsManual bool `json:"is_manual" db:"is_manual"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasPosition reports whether the entry can be placed on the map
func (e Entry) HasPosition() bool {
	return e.Position != nil && !e.IsManual
}

// Validate checks the entry invariants against the given clock reading
func (e Entry) Validate(now time.Time) error {
	if e.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidEntry)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEntry, e.Category)
	}
	if e.IsManual != (e.Position == nil) {
		return fmt.Errorf("%w: manual flag and position disagree", ErrInvalidEntry)
	}
	if e.Position != nil {
		if err := e.Position.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidEntry)
	}
	if e.Timestamp.After(now) {
		return fmt.Errorf("%w: timestamp is in the future", ErrInvalidEntry)
	}
	if e.HoursSinceMeal != nil && !(*e.HoursSinceMeal > 0) {
		return fmt.Errorf("%w: hours since meal must be positive", ErrInvalidEntry)
	}
	if e.Size != "" && !oneOf(e.Size, validSizes) {
		return fmt.Errorf("%w: unknown size %q", ErrInvalidEntry, e.Size)
	}
	if e.Color != "" && !oneOf(e.Color, validColors) {
		return fmt.Errorf("%w: unknown color %q", ErrInvalidEntry, e.Color)
	}
	if e.Smell != "" && !oneOf(e.Smell, validSmells) {
		return fmt.Errorf("%w: unknown smell %q", ErrInvalidEntry, e.Smell)
	}
	if utf8.RuneCountInString(string(e.Food)) > MaxFoodLabelLength {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, ErrInvalidFoodLabel)
	}
	if utf8.RuneCountInString(e.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidEntry, MaxNotesLength)
	}
	return nil
}

// CreateEntryRequest is the body of POST /api/v1/entries.
// Latitude and longitude are both set for a GPS entry and both omitted for a
// manual one. Timestamp defaults to now.
type CreateEntryRequest struct {
	Lat            *float64   `json:"lat"`
	Lng            *float64   `json:"lng"`
	Timestamp      *time.Time `json:"timestamp"`
	Category       string     `json:"category" binding:"required"`
	Size           string     `json:"size"`
	Color          string     `json:"color"`
	Smell          string     `json:"smell"`
	Food           string     `json:"food"`
	HoursSinceMeal *float64   `json:"hours_since_meal"`
	Notes          string     `json:"notes"`
}

// ToEntry builds an unsaved entry from the request. ID and CreatedAt are left
// for the store to assign.
func (r CreateEntryRequest) ToEntry(now time.Time) (Entry, error) {
	category, err := ParseCategory(r.Category)
	if err != nil {
		return Entry{}, err
	}
	food, err := NewFoodLabel(r.Food)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	e := Entry{
		Timestamp:      now,
		Category:       category,
		Size:           r.Size,
		Color:          r.Color,
		Smell:          r.Smell,
		Food:           food,
		HoursSinceMeal: r.HoursSinceMeal,
		Notes:          r.Notes,
	}
	if r.Timestamp != nil {
		e.Timestamp = *r.Timestamp
	}

	switch {
	case r.Lat != nil && r.Lng != nil:
		e.Position = &Position{Lat: *r.Lat, Lng: *r.Lng}
	case r.Lat == nil && r.Lng == nil:
		e.IsManual = true
	default:
		return Entry{}, fmt.Errorf("%w: lat and lng must be given together", ErrInvalidEntry)
	}

	return e, e.Validate(now)
}
