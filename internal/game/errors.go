package game

import "errors"

var (
	ErrMatchOver     = errors.New("match is over")
	ErrInvalidAction = errors.New("invalid action")
	ErrEmptyPit      = errors.New("pit is empty")
)
