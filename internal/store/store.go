// Package store owns the in-memory task collection and synchronizes it to a
// JSON file after every mutation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/task"
)

// document is the storage file structure.
type document struct {
	Tasks []task.Task `json:"tasks"`
}

// Store holds the task collection. The file at path is read once at Open and
// fully rewritten after every mutating call. Iteration order is insertion
// order; replacing a task under an existing id keeps its position.
type Store struct {
	path   string
	logger *log.Logger
	tasks  map[string]*task.Task
	order  []string
}

// Open loads the collection from path. A missing file yields an empty store.
// A file that fails to parse, or contains any record that fails to
// deserialize, is abandoned: the store starts empty and the failure is
// logged. The corrupt file is not overwritten until the first mutation.
func Open(path string, logger *log.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger,
		tasks:  make(map[string]*task.Task),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("tasks file is corrupt, starting with an empty collection",
			"path", path, "err", err)
		return s, nil
	}
	for i := range doc.Tasks {
		t := doc.Tasks[i]
		if _, exists := s.tasks[t.ID]; !exists {
			s.order = append(s.order, t.ID)
		}
		s.tasks[t.ID] = &t
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Add inserts t under its id, replacing any existing task with the same id,
// persists the collection, and returns the id.
func (s *Store) Add(t *task.Task) (string, error) {
	if _, exists := s.tasks[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.tasks[t.ID] = t
	if err := s.persist(); err != nil {
		return "", err
	}
	return t.ID, nil
}

// Get looks up a task by id. It has no side effects.
func (s *Store) Get(id string) (*task.Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// Update applies a partial update to the task with the given id and
// persists. It returns false without writing when the id is absent.
func (s *Store) Update(id string, p task.Patch) (bool, error) {
	t, ok := s.tasks[id]
	if !ok {
		return false, nil
	}
	t.Apply(p)
	if err := s.persist(); err != nil {
		return true, err
	}
	return true, nil
}

// Delete removes the task with the given id and persists. It returns false
// without writing when the id is absent.
func (s *Store) Delete(id string) (bool, error) {
	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if err := s.persist(); err != nil {
		return true, err
	}
	return true, nil
}

// Filter selects tasks by AND-combination of the non-zero criteria. Tag
// matching is exact and case-sensitive.
type Filter struct {
	Status   *task.Status
	Priority *task.Priority
	Tag      string
}

func (f Filter) matches(t *task.Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, tag := range t.Tags {
			if tag == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// List returns the filtered tasks ordered by priority descending, then due
// date ascending with tasks lacking a due date last. Ties on both keys keep
// insertion order.
func (s *Store) List(f Filter) []*task.Task {
	var result []*task.Task
	for _, id := range s.order {
		t := s.tasks[id]
		if f.matches(t) {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return false
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})
	return result
}

// persist rewrites the full collection to the backing file with 2-space
// indentation, in insertion order.
func (s *Store) persist() error {
	doc := document{Tasks: make([]task.Task, 0, len(s.order))}
	for _, id := range s.order {
		doc.Tasks = append(doc.Tasks, *s.tasks[id])
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}
