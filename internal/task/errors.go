package task

import "fmt"

// MalformedRecordError indicates a persisted record that cannot be
// deserialized: a missing required key, an unknown enumeration name, or an
// invalid timestamp.
type MalformedRecordError struct {
	Field string // record key, empty when the record itself failed to decode
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed task record: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed task record: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// UnknownEnumValueError indicates a priority or status name outside the
// enumeration.
type UnknownEnumValueError struct {
	Kind  string // "priority" or "status"
	Value string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s value %q", e.Kind, e.Value)
}

// InvalidTimestampError indicates a timestamp string that is not valid
// ISO-8601.
type InvalidTimestampError struct {
	Value string
	Err   error
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %v", e.Value, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *InvalidTimestampError) Unwrap() error {
	return e.Err
}
