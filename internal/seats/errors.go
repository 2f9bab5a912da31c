package seats

import "errors"

var (
	ErrNotFound = errors.New("seat not found")
	ErrConfig   = errors.New("invalid seat generation parameters")
)
