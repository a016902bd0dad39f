package apperror

import "errors"

var (
	ErrSessionFinished = errors.New("session is already finished")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrNoSnapshot      = errors.New("no snapshot received yet")
)
