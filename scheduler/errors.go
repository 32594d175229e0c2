package scheduler

import (
	"errors"
	"fmt"
)

// ErrSlotTaken signals that the targeted slot was reserved by another
// request between read and write. Callers surface it distinctly from
// generic failures so the visitor can be asked to pick another time.
var ErrSlotTaken = errors.New("slot no longer available")

// ValidationError is a client-correctable rejection: malformed time range,
// bad duration, overlapping blocks, or an aggregate span over 24 hours.
// Nothing is persisted when one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
