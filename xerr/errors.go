// Package xerr defines the typed-error taxonomy shared by the
// fragment, linebreak, position, and paginate packages.
package xerr

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure raised at a package boundary.
// All kinds are fatal for the call that raised them; none are
// recovered internally.
type Kind int

const (
	// EmptyText indicates the input text has length zero.
	EmptyText Kind = iota
	// BadWhitespace indicates the text starts with non-tab whitespace
	// or ends with any whitespace.
	BadWhitespace
	// LengthMismatch indicates the measured-width vector length does
	// not equal the character count of the text.
	LengthMismatch
	// BadSpans indicates the splitter returned overlapping or
	// out-of-order spans, or missed position 0 or position n.
	BadSpans
	// InvalidSchedule indicates a target-width schedule contains
	// non-positive or non-finite values, a max-lines-per-column entry
	// is negative (0 means no limit), or columns per page is not
	// positive.
	InvalidSchedule
	// OracleRequired indicates positioning was invoked with a
	// non-font measurer (e.g. a constant-width stub) where real font
	// metrics are required.
	OracleRequired
)

func (k Kind) String() string {
	switch k {
	case EmptyText:
		return "empty text"
	case BadWhitespace:
		return "bad whitespace"
	case LengthMismatch:
		return "length mismatch"
	case BadSpans:
		return "bad spans"
	case InvalidSchedule:
		return "invalid schedule"
	case OracleRequired:
		return "oracle required"
	default:
		return "unknown"
	}
}

// Error wraps a Kind with the operation that raised it and, optionally,
// an underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind, so
// callers can write errors.Is(err, xerr.New(xerr.EmptyText, "", nil)).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// New constructs an *Error for kind raised by op, optionally wrapping
// cause.
func New(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// Newf constructs an *Error for kind raised by op, wrapping a new
// error built from format and args.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
