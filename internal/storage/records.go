package storage

import (
	"time"

	"github.com/sandeepkv93/studyping/internal/model"
)

// Wire shapes for the JSON record values. Kept separate from the domain
// model so the stored form can stay stable if the model moves.

type taskRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subject   string     `json:"subject"`
	Type      string     `json:"type"`
	Due       model.Date `json:"date"`
	Priority  string     `json:"priority"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"created_at"`
}

type profileRecord struct {
	Name   string `json:"name"`
	Class  int    `json:"class"`
	Stream string `json:"stream"`
}

type streakRecord struct {
	Count      int        `json:"count"`
	LastActive model.Date `json:"last_active_date"`
}

func toTaskRecord(t model.Task) taskRecord {
	return taskRecord{
		ID:        t.ID,
		Title:     t.Title,
		Subject:   t.Subject,
		Type:      string(t.Type),
		Due:       t.Due,
		Priority:  string(t.Priority),
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UTC(),
	}
}

func fromTaskRecord(r taskRecord) model.Task {
	return model.Task{
		ID:        r.ID,
		Title:     r.Title,
		Subject:   r.Subject,
		Type:      model.TaskType(r.Type),
		Due:       r.Due,
		Priority:  model.Priority(r.Priority),
		Completed: r.Completed,
		CreatedAt: r.CreatedAt,
	}
}

func toProfileRecord(p model.Profile) profileRecord {
	return profileRecord{Name: p.Name, Class: p.Class, Stream: string(p.Stream)}
}

func fromProfileRecord(r profileRecord) model.Profile {
	return model.Profile{Name: r.Name, Class: r.Class, Stream: model.Stream(r.Stream)}
}

func toStreakRecord(s model.StreakState) streakRecord {
	return streakRecord{Count: s.Count, LastActive: s.LastActive}
}

func fromStreakRecord(r streakRecord) model.StreakState {
	return model.StreakState{Count: r.Count, LastActive: r.LastActive}
}
