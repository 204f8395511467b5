package core

import "errors"

var (
	ErrOutOfRange       = errors.New("coordinate out of range")
	ErrOccupied         = errors.New("cell already occupied")
	ErrMalformedBoard   = errors.New("malformed board")
	ErrUnknownDirection = errors.New("unknown direction")
	ErrInvalidHealth    = errors.New("health out of range")
)
