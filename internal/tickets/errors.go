package tickets

import "errors"

var (
	ErrNotFound     = errors.New("ticket not found")
	ErrInvalidState = errors.New("invalid ticket state transition")
)
