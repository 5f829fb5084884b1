package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData is returned by a TabularStore when a location holds no records.
var ErrNoData = errors.New("no records at location")

// ErrLayoutNotFound is returned by a LayoutChecker when no stored layout matches the id.
var ErrLayoutNotFound = errors.New("layout not found")

// ValidationError reports a missing attribute, an out-of-vocabulary value,
// or an unresolvable layout reference.
type ValidationError struct {
	Attribute Attribute
	Value     string
	Allowed   []string
	Reason    string
	Err       error
}

func (e *ValidationError) Error() string {
	switch {
	case len(e.Allowed) > 0:
		return fmt.Sprintf("%s value is invalid: %q. Values are: %s",
			e.Attribute, e.Value, quoteAll(e.Allowed))
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Attribute, e.Reason, e.Err)
	default:
		return fmt.Sprintf("%s %s", e.Attribute, e.Reason)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DuplicateError reports that an extract type with identical attributes already exists.
type DuplicateError struct {
	Fields Fields
}

// Error lists every compared attribute, free text included.
func (e *DuplicateError) Error() string {
	var b strings.Builder
	b.WriteString("extract type already exists (layout_id=")
	b.WriteString(e.Fields.LayoutID)
	for _, attr := range Attributes()[1:] {
		v, _ := e.Fields.Get(attr)
		fmt.Fprintf(&b, " %s=%q", attr, v)
	}
	b.WriteString(")")
	return b.String()
}

// StoreError wraps a failure of the underlying tabular store.
type StoreError struct {
	Op       string // "read" or "write"
	Location string
	Err      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Location, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDuplicate reports whether err is or wraps a DuplicateError.
func IsDuplicate(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}

// IsStore reports whether err is or wraps a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
