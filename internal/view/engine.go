// Package view derives the displayable task list for each named filter.
// Apply is pure: it never mutates its input, touches storage, or samples
// the clock. The caller supplies today exactly once per invocation.
package view

import (
	"sort"

	"github.com/sandeepkv93/studyping/internal/model"
)

type Filter string

const (
	FilterAll      Filter = "all"
	FilterPriority Filter = "priority"
	FilterToday    Filter = "today"
	FilterExams    Filter = "exams"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterPriority, FilterToday, FilterExams:
		return true
	default:
		return false
	}
}

func Filters() []Filter {
	return []Filter{FilterAll, FilterPriority, FilterToday, FilterExams}
}

// Heading returns the dashboard heading shown for the filter.
func (f Filter) Heading() string {
	switch f {
	case FilterPriority:
		return "Priority Tasks"
	case FilterToday:
		return "Due Today"
	case FilterExams:
		return "Exams Corner"
	default:
		return "Upcoming Tasks"
	}
}

// Apply selects and orders tasks for one filter. An empty result is a
// normal outcome, not an error.
func Apply(tasks []model.Task, f Filter, today model.Date) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, f, today) {
			out = append(out, t)
		}
	}

	// Due date ascending for every filter, stable so insertion order breaks
	// ties. The all view additionally floats incomplete tasks above
	// completed ones, keeping the date order inside each group.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Due.Before(out[j].Due)
	})
	if f == FilterAll {
		sort.SliceStable(out, func(i, j int) bool {
			return !out[i].Completed && out[j].Completed
		})
	}
	return out
}

func matches(t model.Task, f Filter, today model.Date) bool {
	switch f {
	case FilterPriority:
		return t.Priority == model.PriorityHigh && !t.Completed
	case FilterToday:
		return t.Due.Equal(today) && !t.Completed
	case FilterExams:
		return t.Type.IsExamLike()
	default:
		return true
	}
}
