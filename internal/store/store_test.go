package store

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/task"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tasks.json")
}

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func TestOpenMissingFile(t *testing.T) {
	path := testPath(t)
	s := openTestStore(t, path)
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("opening a missing file must not create it")
	}
}

func TestAddAndGet(t *testing.T) {
	path := testPath(t)
	s := openTestStore(t, path)

	tk := task.New(task.Params{Title: "Write report"})
	id, err := s.Add(tk)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != tk.ID {
		t.Errorf("Add returned %q, want %q", id, tk.ID)
	}

	got, ok := s.Get(id)
	if !ok {
		t.Fatal("Get: task not found")
	}
	if got.ID != id {
		t.Errorf("Get: id %q, want %q", got.ID, id)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Add must persist: %v", err)
	}
}

func TestAddOverwritesSameID(t *testing.T) {
	s := openTestStore(t, testPath(t))

	first := task.New(task.Params{ID: "dup", Title: "first"})
	second := task.New(task.Params{ID: "dup", Title: "second"})
	if _, err := s.Add(first); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add(second); err != nil {
		t.Fatal(err)
	}

	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
	got, _ := s.Get("dup")
	if got.Title != "second" {
		t.Errorf("Title: got %q, want second (last write wins)", got.Title)
	}
}

func TestMissingIDOperations(t *testing.T) {
	path := testPath(t)
	s := openTestStore(t, path)

	if _, ok := s.Get("nope"); ok {
		t.Error("Get on missing id: got found")
	}
	ok, err := s.Update("nope", task.Patch{})
	if err != nil || ok {
		t.Errorf("Update on missing id: got (%v, %v), want (false, nil)", ok, err)
	}
	ok, err = s.Delete("nope")
	if err != nil || ok {
		t.Errorf("Delete on missing id: got (%v, %v), want (false, nil)", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("missing-id operations must not write the backing file")
	}
}

func TestUpdatePersistsAndBumpsTimestamps(t *testing.T) {
	path := testPath(t)
	s := openTestStore(t, path)

	tk := task.New(task.Params{Title: "x"})
	id, _ := s.Add(tk)
	created := tk.CreatedAt
	prevUpdated := tk.UpdatedAt

	time.Sleep(time.Millisecond)
	status := task.StatusCompleted
	ok, err := s.Update(id, task.Patch{Status: &status})
	if err != nil || !ok {
		t.Fatalf("Update: got (%v, %v)", ok, err)
	}

	got, _ := s.Get(id)
	if got.Status != task.StatusCompleted {
		t.Errorf("Status: got %v, want COMPLETED", got.Status)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed: got %v, want %v", got.CreatedAt, created)
	}
	if !got.UpdatedAt.After(prevUpdated) {
		t.Errorf("UpdatedAt not bumped: %v <= %v", got.UpdatedAt, prevUpdated)
	}

	// Reopen and check the change hit disk.
	reopened := openTestStore(t, path)
	persisted, ok := reopened.Get(id)
	if !ok {
		t.Fatal("task missing after reopen")
	}
	if persisted.Status != task.StatusCompleted {
		t.Errorf("persisted Status: got %v, want COMPLETED", persisted.Status)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t, testPath(t))
	id, _ := s.Add(task.New(task.Params{Title: "x"}))

	ok, err := s.Delete(id)
	if err != nil || !ok {
		t.Fatalf("Delete: got (%v, %v)", ok, err)
	}
	if _, found := s.Get(id); found {
		t.Error("task still present after delete")
	}
	ok, _ = s.Delete(id)
	if ok {
		t.Error("second delete: got true")
	}
}

func TestListFilters(t *testing.T) {
	s := openTestStore(t, testPath(t))

	mustAdd := func(p task.Params) string {
		t.Helper()
		id, err := s.Add(task.New(p))
		if err != nil {
			t.Fatal(err)
		}
		return id
	}

	blocked := mustAdd(task.Params{Title: "a", Status: task.StatusBlocked, Priority: task.PriorityLow})
	mustAdd(task.Params{Title: "b", Status: task.StatusInProgress, Priority: task.PriorityHigh})
	tagged := mustAdd(task.Params{Title: "c", Priority: task.PriorityHigh, Tags: []string{"work"}})

	st := task.StatusBlocked
	got := s.List(Filter{Status: &st})
	if len(got) != 1 || got[0].ID != blocked {
		t.Errorf("status filter: got %d tasks", len(got))
	}

	p := task.PriorityHigh
	got = s.List(Filter{Priority: &p})
	if len(got) != 2 {
		t.Errorf("priority filter: got %d tasks, want 2", len(got))
	}

	got = s.List(Filter{Tag: "work"})
	if len(got) != 1 || got[0].ID != tagged {
		t.Errorf("tag filter: got %d tasks", len(got))
	}

	// Case-sensitive tag match.
	if got := s.List(Filter{Tag: "Work"}); len(got) != 0 {
		t.Errorf("tag filter is case-insensitive: got %d tasks", len(got))
	}

	// AND combination.
	ns := task.StatusNotStarted
	got = s.List(Filter{Status: &ns, Priority: &p, Tag: "work"})
	if len(got) != 1 || got[0].ID != tagged {
		t.Errorf("combined filter: got %d tasks", len(got))
	}
}

func TestListSortOrder(t *testing.T) {
	s := openTestStore(t, testPath(t))

	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(48 * time.Hour)

	lowLater, _ := s.Add(task.New(task.Params{Title: "low later", Priority: task.PriorityLow, DueDate: &later}))
	critical, _ := s.Add(task.New(task.Params{Title: "critical", Priority: task.PriorityCritical}))
	lowSoon, _ := s.Add(task.New(task.Params{Title: "low soon", Priority: task.PriorityLow, DueDate: &soon}))
	lowNoDue, _ := s.Add(task.New(task.Params{Title: "low no due", Priority: task.PriorityLow}))
	high, _ := s.Add(task.New(task.Params{Title: "high", Priority: task.PriorityHigh}))

	got := s.List(Filter{})
	want := []string{critical, high, lowSoon, lowLater, lowNoDue}
	if len(got) != len(want) {
		t.Fatalf("List: got %d tasks, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %q (%s), want %q", i, got[i].ID, got[i].Title, id)
		}
	}
}

func TestListTieBreakNoDueDateLast(t *testing.T) {
	s := openTestStore(t, testPath(t))

	tomorrow := time.Now().Add(24 * time.Hour)
	a, _ := s.Add(task.New(task.Params{Title: "A", Priority: task.PriorityLow, DueDate: &tomorrow}))
	b, _ := s.Add(task.New(task.Params{Title: "B", Priority: task.PriorityLow}))

	got := s.List(Filter{})
	if len(got) != 2 || got[0].ID != a || got[1].ID != b {
		t.Errorf("tie-break: got order %v, want [A B]", []string{got[0].Title, got[1].Title})
	}
}

func TestCorruptFileResetsToEmpty(t *testing.T) {
	path := testPath(t)
	if err := os.WriteFile(path, []byte("{ this is not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := openTestStore(t, path)
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}

	// The corrupt file is left alone until the first mutation.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{ this is not json" {
		t.Error("corrupt file rewritten before any mutation")
	}
}

func TestBadRecordResetsToEmpty(t *testing.T) {
	path := testPath(t)
	content := `{"tasks": [{"id": "a", "title": "t", "description": "", "priority": "URGENT", "status": "BLOCKED", "tags": []}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := openTestStore(t, path)
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0 after bad record", s.Len())
	}
}

func TestPersistFormat(t *testing.T) {
	path := testPath(t)
	s := openTestStore(t, path)
	if _, err := s.Add(task.New(task.Params{Title: "x", Tags: []string{"a"}})); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Tasks []map[string]interface{} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("persisted file is not valid JSON: %v", err)
	}
	if len(doc.Tasks) != 1 {
		t.Fatalf("tasks: got %d, want 1", len(doc.Tasks))
	}
	for _, key := range []string{"id", "title", "description", "priority", "due_date", "status", "tags", "created_at", "updated_at"} {
		if _, ok := doc.Tasks[0][key]; !ok {
			t.Errorf("persisted record missing key %q", key)
		}
	}
}

func TestReopenPreservesInsertionOrder(t *testing.T) {
	path := testPath(t)
	s := openTestStore(t, path)

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		id, err := s.Add(task.New(task.Params{Title: title, Priority: task.PriorityMedium}))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	reopened := openTestStore(t, path)
	got := reopened.List(Filter{})
	if len(got) != 3 {
		t.Fatalf("List after reopen: got %d tasks", len(got))
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestAddListUpdateDeleteScenario(t *testing.T) {
	s := openTestStore(t, testPath(t))

	id, err := s.Add(task.New(task.Params{Title: "Write report", Priority: task.PriorityHigh}))
	if err != nil {
		t.Fatal(err)
	}

	p := task.PriorityHigh
	listed := s.List(Filter{Priority: &p})
	if len(listed) != 1 || listed[0].ID != id {
		t.Fatalf("List(priority=HIGH): got %d tasks", len(listed))
	}

	completed := task.StatusCompleted
	ok, err := s.Update(id, task.Patch{Status: &completed})
	if err != nil || !ok {
		t.Fatalf("Update: got (%v, %v)", ok, err)
	}
	got, _ := s.Get(id)
	if got.Status != task.StatusCompleted {
		t.Errorf("Status: got %v, want COMPLETED", got.Status)
	}

	ok, err = s.Delete(id)
	if err != nil || !ok {
		t.Fatalf("Delete: got (%v, %v)", ok, err)
	}
	if _, found := s.Get(id); found {
		t.Error("Get after delete: found")
	}
}
