package game

import "errors"

var (
	ErrNotPlaying  = errors.New("game is not in progress")
	ErrWrongAction = errors.New("action is not expected now")
	ErrOffBoard    = errors.New("square is off the board")
	ErrOccupied    = errors.New("square is not empty")
	ErrNotAdjacent = errors.New("destination is not adjacent")
	ErrNotOwner    = errors.New("piece does not belong to the expected side")
	ErrInMill      = errors.New("piece is protected by a mill")
	ErrNoRemoval   = errors.New("no removal is owed")
	ErrBadCommand  = errors.New("malformed command")
	ErrBadRule     = errors.New("invalid rule")
	ErrBadRotation = errors.New("rotation must be a multiple of 90 degrees")
)
