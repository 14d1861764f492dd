package event

import (
	"errors"
	"fmt"
)

var ErrFetch = errors.New("fetch failed")

// FetchError is returned by every failed API call, whatever the cause:
// transport failure, non-2xx status or an unreadable body.
type FetchError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
