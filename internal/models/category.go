package models

import (
	"fmt"
	"strings"
)

// Category is the outcome class of an entry
type Category string

// Category constants
const (
	CategoryNormal   Category = "normal"
	CategorySoft     Category = "soft"
	CategoryDiarrhea Category = "diarrhea"
	CategoryHard     Category = "hard"
	CategoryBlood    Category = "blood"
	CategoryMucus    Category = "mucus"
)

// Categories lists every known category in display order
var Categories = []Category{
	CategoryNormal,
	CategorySoft,
	CategoryDiarrhea,
	CategoryHard,
	CategoryBlood,
	CategoryMucus,
}

// legacy names found in older backups
var categoryAliases = map[string]Category{
	"healthy": CategoryNormal,
}

// ParseCategory converts a raw string into a known Category
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := categoryAliases[key]; ok {
		return alias, nil
	}
	c := Category(key)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidEntry, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsProblem reports whether c counts as a health problem. Every category
// other than normal does.
func (c Category) IsProblem() bool {
	return c != CategoryNormal
}

// Size classes
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Color classes
const (
	ColorNormal = "normal"
	ColorLight  = "light"
	ColorDark   = "dark"
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

// Smell classes
const (
	SmellNormal  = "normal"
	SmellStrong  = "strong"
	SmellUnusual = "unusual"
)

var (
	validSizes  = []string{SizeSmall, SizeMedium, SizeLarge}
	validColors = []string{ColorNormal, ColorLight, ColorDark, ColorGreen, ColorYellow, ColorRed}
	validSmells = []string{SmellNormal, SmellStrong, SmellUnusual}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
