// Package streak tracks consecutive-day study activity. The counter moves
// on two triggers only: a gap check at application start and a
// qualification check on each task completion.
package streak

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/storage"
)

type Engine struct {
	records storage.RecordStore
	state   model.StreakState
}

func Open(records storage.RecordStore) (*Engine, error) {
	if records == nil {
		return nil, errors.New("streak: nil record store")
	}
	state, err := records.LoadStreak()
	if errors.Is(err, storage.ErrNoRecord) {
		state = model.StreakState{}
	} else if err != nil {
		return nil, fmt.Errorf("streak: load state: %w", err)
	}
	return &Engine{records: records, state: state}, nil
}

func (e *Engine) State() model.StreakState {
	return e.state
}

// StartOfDay runs the gap check. A single skipped calendar day keeps the
// streak alive; a gap of two or more resets the count to zero. The last
// active date is left as-is so the reset is observable.
func (e *Engine) StartOfDay(today model.Date) (bool, error) {
	if e.state.LastActive.IsZero() {
		return false, nil
	}
	if model.DaysBetween(e.state.LastActive, today) <= 1 {
		return false, nil
	}
	if e.state.Count == 0 {
		return false, nil
	}
	e.state.Count = 0
	if err := e.records.SaveStreak(e.state); err != nil {
		return true, &storage.StorageError{Op: "save streak", Err: err}
	}
	return true, nil
}

// RecordCompletion evaluates one completion event. It qualifies only when
// the task is finished on or before its due date, and at most one
// completion per calendar day moves the counter.
func (e *Engine) RecordCompletion(due, today model.Date) (bool, error) {
	if today.After(due) {
		return false, nil
	}
	if e.state.LastActive.Equal(today) {
		return false, nil
	}
	e.state.Count++
	e.state.LastActive = today
	if err := e.records.SaveStreak(e.state); err != nil {
		return true, &storage.StorageError{Op: "save streak", Err: err}
	}
	return true, nil
}

func (e *Engine) NextMilestone() int {
	return e.state.NextMilestone()
}

func (e *Engine) Progress() float64 {
	return e.state.Progress()
}
