package formselect

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for element and selection failures.
var (
	// ErrUnsupportedOperation is returned by operations that are defined on
	// the element interface but meaningless for the concrete element, such as
	// assigning an option's text value.
	ErrUnsupportedOperation = errors.New("formselect: unsupported operation")

	// ErrOwnerNotFound indicates an option has no enclosing select. This is a
	// markup error, not a transient condition.
	ErrOwnerNotFound = errors.New("formselect: owner select not found")

	// ErrUnexpectedElement indicates a node was wrapped as the wrong element type.
	ErrUnexpectedElement = errors.New("formselect: unexpected element")

	// ErrElementNotFound indicates a document lookup matched nothing.
	ErrElementNotFound = errors.New("formselect: element not found")
)

// ElementError carries the element and operation that failed alongside the
// originating error.
type ElementError struct {
	Op   string
	Tag  string
	Name string
	Hint string
	Err  error
}

func (e *ElementError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("formselect: ")
	b.WriteString(e.Op)
	if e.Tag != "" {
		b.WriteString(" <")
		b.WriteString(e.Tag)
		if e.Name != "" {
			fmt.Fprintf(&b, " name=%q", e.Name)
		}
		b.WriteString(">")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(strings.TrimPrefix(e.Err.Error(), "formselect: "))
	}
	if e.Hint != "" {
		b.WriteString(" (")
		b.WriteString(e.Hint)
		b.WriteString(")")
	}
	return b.String()
}

func (e *ElementError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func elementError(op string, el *Element, err error) error {
	out := &ElementError{Op: op, Err: err}
	if el != nil && el.node != nil {
		out.Tag = el.TagName()
		out.Name = el.Name()
	}
	return out
}
