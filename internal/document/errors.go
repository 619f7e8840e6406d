package document

import (
	"errors"
	"fmt"
)

// InvalidTransitionError reports a lifecycle rule violation. No write is
// performed when it is returned.
type InvalidTransitionError struct {
	DocumentID int64
	From       string // status observed at validation time
	To         string
	Reason     string // set for rule violations other than the state pair
}

// Error returns the error string.
func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("document %d: invalid transition to %s: %s", e.DocumentID, e.To, e.Reason)
	}
	return fmt.Sprintf("document %d: invalid transition %s -> %s", e.DocumentID, e.From, e.To)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}
