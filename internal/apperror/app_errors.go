package apperror

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrRateLimited    = errors.New("too many messages")
	ErrSessionClosed  = errors.New("session is closed")
)
