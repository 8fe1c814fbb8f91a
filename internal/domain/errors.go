package domain

import "errors"

var (
	// ErrDoneCriteriaUnmet blocks a move to the Done stage when fewer than two
	// good-enough flags are set and no stop reason is given.
	ErrDoneCriteriaUnmet = errors.New("at least 2 of 3 good-enough criteria or a stop reason are required to mark an item done")

	ErrInvalidStage = errors.New("invalid stage")
	ErrInvalidRYG   = errors.New("invalid ryg status")
)
