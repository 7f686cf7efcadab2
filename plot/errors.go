package plot

import "fmt"

// ValidationError reports an unrecognized mark, coordinate, channel or
// stack tag, or a malformed axis bound. Mark is the index of the
// offending descriptor, or -1 when the problem is not tied to one.
type ValidationError struct {
	Mark   int
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Mark < 0 {
		return fmt.Sprintf("plot: %s", e.Detail)
	}
	return fmt.Sprintf("plot: mark %d: %s", e.Mark, e.Detail)
}

// UnknownFieldError reports a channel whose field reference does not
// resolve against the bound table's schema.
type UnknownFieldError struct {
	Mark    int
	Channel Channel
	Field   string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("plot: mark %d: channel %q references unknown field %q", e.Mark, e.Channel, e.Field)
}
