package models

import "errors"

// Validation sentinels. Callers wrap them with field detail via fmt.Errorf.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidEntry      = errors.New("invalid entry")
	ErrInvalidFoodLabel  = errors.New("invalid food label")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrInvalidProfile    = errors.New("invalid profile")
	ErrInvalidCellID     = errors.New("invalid cell id")
)
