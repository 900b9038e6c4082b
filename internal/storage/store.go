package storage

import (
	"errors"

	"github.com/sandeepkv93/studyping/internal/model"
)

// ErrNoRecord is returned when a record key has never been written. First
// run looks like this for all three records.
var ErrNoRecord = errors.New("storage: no record")

// StorageError marks a persistence failure after an in-memory mutation
// already took effect. The change is live for the session but may not
// survive a restart; callers warn rather than roll back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// RecordStore persists the three application records: the task collection,
// the profile, and the streak state. Each record is independently loadable
// and each save is a full overwrite of the previous value.
type RecordStore interface {
	LoadTasks() ([]model.Task, error)
	SaveTasks(tasks []model.Task) error

	LoadProfile() (model.Profile, error)
	SaveProfile(p model.Profile) error

	LoadStreak() (model.StreakState, error)
	SaveStreak(s model.StreakState) error
}
