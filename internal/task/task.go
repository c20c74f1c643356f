// Package task defines the task entity, its enumerations, and the JSON
// record form used by the storage file.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Priority is an ordered urgency level. Higher values are more urgent.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

var priorityNames = map[Priority]string{
	PriorityLow:      "LOW",
	PriorityMedium:   "MEDIUM",
	PriorityHigh:     "HIGH",
	PriorityCritical: "CRITICAL",
}

// String returns the canonical enumeration name, e.g. "HIGH".
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParsePriority resolves an enumeration name to a Priority. The match is
// exact; unrecognized names fail with UnknownEnumValueError.
func ParsePriority(name string) (Priority, error) {
	for p, n := range priorityNames {
		if n == name {
			return p, nil
		}
	}
	return 0, &UnknownEnumValueError{Kind: "priority", Value: name}
}

// PriorityNames returns all valid priority names in ascending urgency order.
func PriorityNames() []string {
	return []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}
}

// Status is a task progress state. No transition rules are enforced.
type Status int

const (
	StatusNotStarted Status = iota + 1
	StatusInProgress
	StatusBlocked
	StatusCompleted
)

var statusNames = map[Status]string{
	StatusNotStarted: "NOT_STARTED",
	StatusInProgress: "IN_PROGRESS",
	StatusBlocked:    "BLOCKED",
	StatusCompleted:  "COMPLETED",
}

// String returns the canonical enumeration name, e.g. "IN_PROGRESS".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseStatus resolves an enumeration name to a Status. The match is exact;
// unrecognized names fail with UnknownEnumValueError.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, &UnknownEnumValueError{Kind: "status", Value: name}
}

// StatusNames returns all valid status names.
func StatusNames() []string {
	return []string{"NOT_STARTED", "IN_PROGRESS", "BLOCKED", "COMPLETED"}
}

// Task is a single to-do item.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
	Status      Status
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Params holds construction inputs for New. Zero values fall back to the
// defaults: description "", priority MEDIUM, status NOT_STARTED, empty tags,
// and a freshly generated uuid id.
type Params struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
	Status      Status
	Tags        []string
}

// New constructs a task. Title validation is the caller's responsibility.
func New(p Params) *Task {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	priority := p.Priority
	if priority == 0 {
		priority = PriorityMedium
	}
	status := p.Status
	if status == 0 {
		status = StatusNotStarted
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now()
	return &Task{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		Priority:    priority,
		DueDate:     p.DueDate,
		Status:      status,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// OptionalTime distinguishes "field not supplied" from "supplied as null".
// Set false leaves the due date untouched; Set true with a nil Time clears it.
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

// ClearDueDate returns an OptionalTime that removes the due date.
func ClearDueDate() OptionalTime {
	return OptionalTime{Set: true}
}

// DueBy returns an OptionalTime that sets the due date to t.
func DueBy(t time.Time) OptionalTime {
	return OptionalTime{Set: true, Time: &t}
}

// Patch is a partial update. Nil pointer fields (and nil Tags) are left
// untouched.
type Patch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *Status
	DueDate     OptionalTime
	Tags        []string
}

// IsZero reports whether the patch carries no changes.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Status == nil && !p.DueDate.Set && p.Tags == nil
}

// Apply overwrites the supplied fields and bumps UpdatedAt, even when the
// patch is empty. The id and CreatedAt never change.
func (t *Task) Apply(p Patch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Time
	}
	if p.Tags != nil {
		t.Tags = p.Tags
	}
	t.UpdatedAt = time.Now()
}
