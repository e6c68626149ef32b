package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameFull          = errors.New("game already full")
	ErrGameFinished      = errors.New("game is already finished")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidPosition   = errors.New("invalid position")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrNotConnected      = errors.New("message stream is not connected")
	ErrSessionStarted    = errors.New("session already joined a match")
)
