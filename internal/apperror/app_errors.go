package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrSessionNotFound   = errors.New("session not found")
	ErrConcurrentUpdate  = errors.New("session was modified concurrently")
	ErrSessionIDRequired = errors.New("session id is required")
)
