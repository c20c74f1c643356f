package task

import (
	"encoding/json"
	"errors"
	"time"
)

// record is the flat on-disk shape of a task. Field names are fixed for
// compatibility with files the tool already wrote.
type record struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"due_date"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// requiredKeys must be present in every persisted record.
var requiredKeys = []string{"id", "title", "description", "priority", "status", "tags"}

var errMissingKey = errors.New("missing required key")

// timestampLayouts are tried in order when parsing. Files written by earlier
// versions of the tool carry naive local timestamps without a zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 timestamp string, failing with
// InvalidTimestampError.
func ParseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, &InvalidTimestampError{Value: s, Err: firstErr}
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// MarshalJSON emits the flat record form: enum names as strings, timestamps
// as ISO-8601, due_date as null when absent.
func (t Task) MarshalJSON() ([]byte, error) {
	rec := record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority.String(),
		Status:      t.Status.String(),
		Tags:        t.Tags,
		CreatedAt:   formatTimestamp(t.CreatedAt),
		UpdatedAt:   formatTimestamp(t.UpdatedAt),
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	if t.DueDate != nil {
		due := formatTimestamp(*t.DueDate)
		rec.DueDate = &due
	}
	return json.Marshal(rec)
}

// UnmarshalJSON is the inverse of MarshalJSON for any record it produced.
// It fails with MalformedRecordError on missing required keys, unrecognized
// enumeration names, or invalid timestamps.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &MalformedRecordError{Err: err}
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return &MalformedRecordError{Field: key, Err: errMissingKey}
		}
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return &MalformedRecordError{Err: err}
	}

	priority, err := ParsePriority(rec.Priority)
	if err != nil {
		return &MalformedRecordError{Field: "priority", Err: err}
	}
	status, err := ParseStatus(rec.Status)
	if err != nil {
		return &MalformedRecordError{Field: "status", Err: err}
	}

	var due *time.Time
	if rec.DueDate != nil {
		parsed, err := ParseTimestamp(*rec.DueDate)
		if err != nil {
			return &MalformedRecordError{Field: "due_date", Err: err}
		}
		due = &parsed
	}

	var createdAt, updatedAt time.Time
	if rec.CreatedAt != "" {
		if createdAt, err = ParseTimestamp(rec.CreatedAt); err != nil {
			return &MalformedRecordError{Field: "created_at", Err: err}
		}
	}
	if rec.UpdatedAt != "" {
		if updatedAt, err = ParseTimestamp(rec.UpdatedAt); err != nil {
			return &MalformedRecordError{Field: "updated_at", Err: err}
		}
	}

	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}

	*t = Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Priority:    priority,
		DueDate:     due,
		Status:      status,
		Tags:        tags,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	return nil
}
