package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Profile is the dog profile kept next to the entry collection
type Profile struct {
	Name      string     `json:"name"`
	Breed     string     `json:"breed,omitempty"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	WeightKg  *float64   `json:"weight_kg,omitempty"`
	Microchip string     `json:"microchip,omitempty"`

	// Veterinarian contact
	VetName  string `json:"vet_name,omitempty"`
	VetEmail string `json:"vet_email,omitempty"`
	VetPhone string `json:"vet_phone,omitempty"`

	// Treatment schedule
	NextVaccination   *time.Time `json:"next_vaccination,omitempty"`
	NextAntiparasitic *time.Time `json:"next_antiparasitic,omitempty"`
	NextFleaTick      *time.Time `json:"next_flea_tick,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern     = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)
	microchipPattern = regexp.MustCompile(`^\d{15}$`)
)

// IsEmpty reports whether no profile has been saved yet
func (p Profile) IsEmpty() bool {
	return p.Name == "" && p.UpdatedAt.IsZero()
}

// Validate checks the profile fields; all except Name are optional
func (p Profile) Validate(now time.Time) error {
	var problems []string

	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if p.Birthdate != nil && p.Birthdate.After(now) {
		problems = append(problems, "birthdate is in the future")
	}
	if p.WeightKg != nil && !(*p.WeightKg > 0) {
		problems = append(problems, "weight must be positive")
	}
	if p.VetEmail != "" && !emailPattern.MatchString(p.VetEmail) {
		problems = append(problems, "vet email is malformed")
	}
	if p.VetPhone != "" && !phonePattern.MatchString(p.VetPhone) {
		problems = append(problems, "vet phone is malformed")
	}
	if p.Microchip != "" && !microchipPattern.MatchString(p.Microchip) {
		problems = append(problems, "microchip must have 15 digits")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, ", "))
	}
	return nil
}

// ReminderType constants
const (
	ReminderVaccination   = "vaccination"
	ReminderAntiparasitic = "antiparasitic"
	ReminderFleaTick      = "flea_tick"
)

// Reminder is a treatment that is due soon or overdue
type Reminder struct {
	Type      string    `json:"type"`
	DueDate   time.Time `json:"due_date"`
	DaysLeft  int       `json:"days_left"`
	IsOverdue bool      `json:"is_overdue"`
}
