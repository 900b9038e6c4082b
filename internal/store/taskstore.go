// Package store owns the canonical in-memory task collection and the user
// profile. Every mutation validates first, applies, then persists the whole
// record synchronously.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/storage"
	"github.com/sandeepkv93/studyping/internal/streak"
)

type TaskStore struct {
	records storage.RecordStore
	streak  *streak.Engine
	tasks   []model.Task
}

// OpenTaskStore loads the persisted collection, or starts empty on first
// run. The streak engine is invoked on completion events; it may be nil in
// contexts that do not track streaks.
func OpenTaskStore(records storage.RecordStore, streakEngine *streak.Engine) (*TaskStore, error) {
	if records == nil {
		return nil, errors.New("store: nil record store")
	}
	tasks, err := records.LoadTasks()
	if errors.Is(err, storage.ErrNoRecord) {
		tasks = nil
	} else if err != nil {
		return nil, fmt.Errorf("store: load tasks: %w", err)
	}
	return &TaskStore{records: records, streak: streakEngine, tasks: tasks}, nil
}

type CreateTaskInput struct {
	Title    string
	Subject  string
	Type     model.TaskType
	Due      model.Date
	Priority model.Priority
}

func (s *TaskStore) Create(in CreateTaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Due.IsZero() {
		return model.Task{}, &ValidationError{Field: "date", Reason: "must be a valid calendar date"}
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = model.DefaultSubject
	}
	taskType := in.Type
	if taskType == "" {
		taskType = model.TypeOther
	}
	if !taskType.IsValid() {
		return model.Task{}, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown task type %q", in.Type)}
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return model.Task{}, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", in.Priority)}
	}

	task := model.Task{
		ID:        s.newID(),
		Title:     title,
		Subject:   subject,
		Type:      taskType,
		Due:       in.Due,
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, &ValidationError{Field: "task", Reason: err.Error()}
	}

	s.tasks = append(s.tasks, task)
	if err := s.persist(); err != nil {
		return task, err
	}
	return task, nil
}

type TaskPatch struct {
	Title    *string
	Subject  *string
	Type     *model.TaskType
	Due      *model.Date
	Priority *model.Priority
}

func (s *TaskStore) Update(id string, patch TaskPatch) (model.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, ErrNotFound
	}

	candidate := s.tasks[idx]
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return model.Task{}, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		candidate.Title = title
	}
	if patch.Subject != nil {
		subject := strings.TrimSpace(*patch.Subject)
		if subject == "" {
			subject = model.DefaultSubject
		}
		candidate.Subject = subject
	}
	if patch.Type != nil {
		if !patch.Type.IsValid() {
			return model.Task{}, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown task type %q", *patch.Type)}
		}
		candidate.Type = *patch.Type
	}
	if patch.Due != nil {
		if patch.Due.IsZero() {
			return model.Task{}, &ValidationError{Field: "date", Reason: "must be a valid calendar date"}
		}
		candidate.Due = *patch.Due
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return model.Task{}, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", *patch.Priority)}
		}
		candidate.Priority = *patch.Priority
	}
	if err := candidate.Validate(); err != nil {
		return model.Task{}, &ValidationError{Field: "task", Reason: err.Error()}
	}

	s.tasks[idx] = candidate
	if err := s.persist(); err != nil {
		return candidate, err
	}
	return candidate, nil
}

func (s *TaskStore) Delete(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return s.persist()
}

// SetCompleted flips the completion flag. On the false→true transition the
// streak engine judges the event against the task's due date before the
// flag changes; the task is persisted whatever the streak outcome. The
// returned bool reports a streak advance so the UI can celebrate.
func (s *TaskStore) SetCompleted(id string, done bool, today model.Date) (model.Task, bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false, ErrNotFound
	}

	advanced := false
	var streakErr error
	if done && !s.tasks[idx].Completed && s.streak != nil {
		advanced, streakErr = s.streak.RecordCompletion(s.tasks[idx].Due, today)
	}

	s.tasks[idx].Completed = done
	if err := s.persist(); err != nil {
		return s.tasks[idx], advanced, err
	}
	return s.tasks[idx], advanced, streakErr
}

func (s *TaskStore) Get(id string) (model.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, ErrNotFound
	}
	return s.tasks[idx], nil
}

// FindByIDPrefix resolves a shortened id as typed in the command palette.
func (s *TaskStore) FindByIDPrefix(prefix string) (model.Task, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return model.Task{}, ErrNotFound
	}
	found := -1
	for i, t := range s.tasks {
		if strings.HasPrefix(t.ID, prefix) {
			if found >= 0 {
				return model.Task{}, ErrAmbiguousID
			}
			found = i
		}
	}
	if found < 0 {
		return model.Task{}, ErrNotFound
	}
	return s.tasks[found], nil
}

// List returns a copy of the collection. Ordering is whatever insertion
// produced; the view engine owns presentation order.
func (s *TaskStore) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Len() int {
	return len(s.tasks)
}

func (s *TaskStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) newID() string {
	for {
		id := uuid.NewString()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *TaskStore) persist() error {
	if err := s.records.SaveTasks(s.tasks); err != nil {
		return &storage.StorageError{Op: "save tasks", Err: err}
	}
	return nil
}
