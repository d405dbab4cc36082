package libemit

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrLimitExceeded is the base error returned when a registration would
	// push a listener or subscription registry past its configured maximum.
	// Match it with errors.Is, or use errors.As with LimitError to read the
	// limit that was hit.
	ErrLimitExceeded = errors.New("listener limit exceeded")
)

type LimitError struct {
	Limit uint
}

func (e LimitError) Error() string {
	return fmt.Sprintf("listener limit exceeded: %d already registered", e.Limit)
}

func (e LimitError) Unwrap() error { return ErrLimitExceeded }

func newLimitError(limit uint) error {
	return LimitError{Limit: limit}
}
