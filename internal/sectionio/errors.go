package sectionio

import "fmt"

// ValidationError represents a malformed geometry record
type ValidationError struct {
	Field string // path of the offending field, e.g. contours[0].segments[2].radius
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}
