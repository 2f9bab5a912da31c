package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySelection    = errors.New("no seats selected")
	ErrSeatNotFound      = errors.New("seat does not exist for this event")
	ErrNotFoundOrExpired = errors.New("payment session not found or expired")
	ErrSeatConflict      = errors.New("seats are no longer available")
)

// ConflictError reports exactly which seats were taken by another booking,
// so the customer can adjust their selection instead of retrying blind.
type ConflictError struct {
	Labels []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seats already taken: %s", strings.Join(e.Labels, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrSeatConflict
}
