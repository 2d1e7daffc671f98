// internal/extract/errors.go
package extract

import (
	"errors"
	"fmt"
)

// Rejection reasons, logged with the URL when an item is dropped.
const (
	ReasonBodyTooShort = "body too short"
	ReasonNoContainer  = "no container matched"
	ReasonEmptyPage    = "empty page"
)

// RejectError is a structured extraction failure. The driver logs it and
// continues; it never aborts a run.
type RejectError struct {
	URL    string
	Reason string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("extraction rejected %s: %s", e.URL, e.Reason)
}

// IsBodyTooShort reports whether err is a short-body rejection, the
// condition that triggers rendered-page escalation.
func IsBodyTooShort(err error) bool {
	var re *RejectError
	return errors.As(err, &re) && re.Reason == ReasonBodyTooShort
}
