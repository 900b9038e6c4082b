package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/storage"
	"github.com/sandeepkv93/studyping/internal/streak"
)

func setupRecords(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	records, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "store-test.db"))
	if err != nil {
		t.Fatalf("open records: %v", err)
	}
	t.Cleanup(func() { _ = records.Close() })
	return records
}

func setupTaskStore(t *testing.T) (*TaskStore, *storage.SQLiteStore) {
	t.Helper()
	records := setupRecords(t)
	engine, err := streak.Open(records)
	if err != nil {
		t.Fatalf("open streak engine: %v", err)
	}
	ts, err := OpenTaskStore(records, engine)
	if err != nil {
		t.Fatalf("open task store: %v", err)
	}
	return ts, records
}

// setupBareTaskStore skips the streak engine for tests that only inspect
// persistence behavior.
func setupBareTaskStore(t *testing.T) (*TaskStore, *storage.SQLiteStore) {
	t.Helper()
	records := setupRecords(t)
	ts, err := OpenTaskStore(records, nil)
	if err != nil {
		t.Fatalf("open task store: %v", err)
	}
	return ts, records
}

func day(d int) model.Date {
	return model.Date{Year: 2024, Month: time.May, Day: d}
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	ts, _ := setupTaskStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		task, err := ts.Create(CreateTaskInput{Title: "Revise", Subject: "Physics", Type: model.TypeHomework, Due: day(1), Priority: model.PriorityLow})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestCreateValidation(t *testing.T) {
	ts, records := setupBareTaskStore(t)

	cases := []struct {
		name string
		in   CreateTaskInput
	}{
		{"empty title", CreateTaskInput{Title: "  ", Due: day(1)}},
		{"zero date", CreateTaskInput{Title: "Essay"}},
		{"bad type", CreateTaskInput{Title: "Essay", Due: day(1), Type: model.TaskType("Quiz")}},
		{"bad priority", CreateTaskInput{Title: "Essay", Due: day(1), Priority: model.Priority("Urgent")}},
	}
	for _, tc := range cases {
		_, err := ts.Create(tc.in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
	if ts.Len() != 0 {
		t.Fatalf("validation failures must not mutate, got %d tasks", ts.Len())
	}
	if _, err := records.LoadTasks(); !errors.Is(err, storage.ErrNoRecord) {
		t.Fatalf("validation failures must not persist, got %v", err)
	}
}

func TestCreateDefaultsSubjectTypePriority(t *testing.T) {
	ts, _ := setupTaskStore(t)
	task, err := ts.Create(CreateTaskInput{Title: "Finish worksheet", Due: day(2)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Subject != model.DefaultSubject {
		t.Fatalf("expected default subject, got %q", task.Subject)
	}
	if task.Type != model.TypeOther || task.Priority != model.PriorityMedium {
		t.Fatalf("unexpected defaults: type=%s priority=%s", task.Type, task.Priority)
	}
}

func TestUpdateReplacesOnlySuppliedFields(t *testing.T) {
	ts, _ := setupTaskStore(t)
	created, err := ts.Create(CreateTaskInput{Title: "Old title", Subject: "Physics", Type: model.TypeHomework, Due: day(1), Priority: model.PriorityLow})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "New title"
	pri := model.PriorityHigh
	updated, err := ts.Update(created.ID, TaskPatch{Title: &title, Priority: &pri})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "New title" || updated.Priority != model.PriorityHigh {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Subject != "Physics" || updated.Type != model.TypeHomework || !updated.Due.Equal(day(1)) {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateUnknownIDFails(t *testing.T) {
	ts, _ := setupTaskStore(t)
	title := "x"
	if _, err := ts.Update("missing", TaskPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateValidationLeavesTaskUnchanged(t *testing.T) {
	ts, _ := setupTaskStore(t)
	created, err := ts.Create(CreateTaskInput{Title: "Keep me", Subject: "English", Type: model.TypeProject, Due: day(1), Priority: model.PriorityLow})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := model.TaskType("Quiz")
	_, err = ts.Update(created.ID, TaskPatch{Type: &bad})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got, err := ts.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != model.TypeProject {
		t.Fatalf("task mutated by failed update: %+v", got)
	}
}

func TestDeleteRemovesAndPersists(t *testing.T) {
	ts, records := setupBareTaskStore(t)
	created, err := ts.Create(CreateTaskInput{Title: "Bye", Due: day(1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := ts.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ts.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	persisted, err := records.LoadTasks()
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(persisted) != 0 {
		t.Fatalf("expected empty persisted collection, got %d", len(persisted))
	}
}

func TestDeleteUnknownIDLeavesStoreUntouched(t *testing.T) {
	ts, records := setupBareTaskStore(t)
	created, err := ts.Create(CreateTaskInput{Title: "Stay", Due: day(1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := ts.Delete("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ts.Len() != 1 {
		t.Fatalf("collection changed, len=%d", ts.Len())
	}
	persisted, err := records.LoadTasks()
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != created.ID {
		t.Fatalf("persisted store changed: %#v", persisted)
	}
}

func TestSetCompletedAdvancesStreakOnFirstTransition(t *testing.T) {
	ts, _ := setupTaskStore(t)
	created, err := ts.Create(CreateTaskInput{Title: "Due today", Due: day(1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	task, advanced, err := ts.SetCompleted(created.ID, true, day(1))
	if err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if !task.Completed || !advanced {
		t.Fatalf("expected completed task and streak advance, got %+v advanced=%v", task, advanced)
	}

	// toggling an already-complete task is not a new completion event
	_, advanced, err = ts.SetCompleted(created.ID, true, day(1))
	if err != nil {
		t.Fatalf("set completed again: %v", err)
	}
	if advanced {
		t.Fatal("repeat completion must not advance the streak")
	}
}

func TestSetCompletedOverdueStillPersists(t *testing.T) {
	ts, records := setupTaskStore(t)
	created, err := ts.Create(CreateTaskInput{Title: "Overdue", Due: day(1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	task, advanced, err := ts.SetCompleted(created.ID, true, day(5))
	if err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if advanced {
		t.Fatal("overdue completion must not advance the streak")
	}
	if !task.Completed {
		t.Fatal("completion flag must flip regardless of streak outcome")
	}
	persisted, err := records.LoadTasks()
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(persisted) != 1 || !persisted[0].Completed {
		t.Fatalf("completion not persisted: %#v", persisted)
	}
}

func TestCollectionSurvivesReopen(t *testing.T) {
	ts, records := setupBareTaskStore(t)
	created, err := ts.Create(CreateTaskInput{Title: "Persist me", Subject: "History", Type: model.TypeExam, Due: day(9), Priority: model.PriorityHigh})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reopened, err := OpenTaskStore(records, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(created.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Title != "Persist me" || got.Type != model.TypeExam {
		t.Fatalf("unexpected reloaded task: %+v", got)
	}
}

func TestFindByIDPrefix(t *testing.T) {
	ts, _ := setupTaskStore(t)
	created, err := ts.Create(CreateTaskInput{Title: "Target", Due: day(1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := ts.FindByIDPrefix(created.ID[:8])
	if err != nil {
		t.Fatalf("find by prefix: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("wrong task resolved: %q", got.ID)
	}
	if _, err := ts.FindByIDPrefix("zzzzzzzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := ts.FindByIDPrefix(""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty prefix, got %v", err)
	}
}

func TestListReturnsCopy(t *testing.T) {
	ts, _ := setupTaskStore(t)
	if _, err := ts.Create(CreateTaskInput{Title: "Original", Due: day(1)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	list := ts.List()
	list[0].Title = "tampered"
	if ts.List()[0].Title == "tampered" {
		t.Fatal("List must not expose internal state")
	}
}

func TestCreateAfterStorageFailureKeepsMemory(t *testing.T) {
	ts, records := setupBareTaskStore(t)
	if _, err := ts.Create(CreateTaskInput{Title: "Revise", Due: day(1)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := records.Close(); err != nil {
		t.Fatalf("close records: %v", err)
	}

	task, err := ts.Create(CreateTaskInput{Title: "Worksheet", Due: day(2)})
	var storageErr *storage.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if ts.Len() != 2 {
		t.Fatalf("expected both tasks in memory, got %d", ts.Len())
	}
	if _, err := ts.Get(task.ID); err != nil {
		t.Fatalf("task must stay retrievable after failed save: %v", err)
	}
}

func TestSetCompletedAfterStorageFailureKeepsFlag(t *testing.T) {
	ts, records := setupBareTaskStore(t)
	task, err := ts.Create(CreateTaskInput{Title: "Revise", Due: day(1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := records.Close(); err != nil {
		t.Fatalf("close records: %v", err)
	}

	_, _, err = ts.SetCompleted(task.ID, true, day(1))
	var storageErr *storage.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
	got, err := ts.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Completed {
		t.Fatal("completion flag must survive a failed save")
	}
}
