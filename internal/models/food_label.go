package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxFoodLabelLength bounds the free-text food label, in runes
const MaxFoodLabelLength = 64

// FoodLabel is a trimmed, length-bounded free-text food name
type FoodLabel string

// NewFoodLabel trims s and checks its length. An empty label is valid and
// means "no food recorded".
func NewFoodLabel(s string) (FoodLabel, error) {
	trimmed := strings.TrimSpace(s)
	if utf8.RuneCountInString(trimmed) > MaxFoodLabelLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidFoodLabel, MaxFoodLabelLength)
	}
	return FoodLabel(trimmed), nil
}

// String returns the label text
func (f FoodLabel) String() string {
	return string(f)
}

// IsEmpty reports whether no food was recorded
func (f FoodLabel) IsEmpty() bool {
	return strings.TrimSpace(string(f)) == ""
}
