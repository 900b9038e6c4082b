package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/storage"
	"github.com/sandeepkv93/studyping/internal/view"
	"github.com/sandeepkv93/studyping/internal/views"
)

func (m Model) handleDashboardKey(msg tea.KeyMsg) Model {
	keyStr := msg.String()

	if m.ConfirmDeleteID != "" {
		switch keyStr {
		case "y":
			m = m.deleteTask(m.ConfirmDeleteID)
			m.ConfirmDeleteID = ""
		case "n", "esc":
			m.ConfirmDeleteID = ""
			m.Status = StatusBar{Text: "delete cancelled", IsError: false}
		}
		return m
	}

	switch keyStr {
	case "j", "down":
		if m.Cursor < len(m.Visible)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "g":
		m.Cursor = 0
	case "G":
		if len(m.Visible) > 0 {
			m.Cursor = len(m.Visible) - 1
		}
	case "x", " ", "enter":
		m = m.toggleSelected()
	case "d":
		if t, ok := m.selectedTask(); ok {
			m.ConfirmDeleteID = t.ID
		}
	case m.Keys.Add:
		m = m.openTaskForm("")
	case "e":
		if t, ok := m.selectedTask(); ok {
			m = m.openTaskForm(t.ID)
		}
	case m.Keys.Profile:
		m = m.openProfileForm()
	case m.Keys.All:
		m = m.applyFilter(view.FilterAll)
	case m.Keys.Priority:
		m = m.applyFilter(view.FilterPriority)
	case m.Keys.Today:
		m = m.applyFilter(view.FilterToday)
	case m.Keys.Exams:
		m = m.applyFilter(view.FilterExams)
	}
	return m
}

func (m Model) applyFilter(f view.Filter) Model {
	m.Filter = f
	m.Cursor = 0
	m.refreshVisible()
	m.Status = StatusBar{Text: fmt.Sprintf("showing: %s", f.Heading()), IsError: false}
	return m
}

// toggleSelected flips completion on the highlighted task. A persistence
// failure keeps the in-memory flip, so the list is refreshed either way and
// the error is surfaced instead of rolled back.
func (m Model) toggleSelected() Model {
	t, ok := m.selectedTask()
	if !ok {
		return m
	}
	updated, advanced, err := m.Tasks.SetCompleted(t.ID, !t.Completed, m.TodayDate)
	if err != nil {
		var storageErr *storage.StorageError
		if errors.As(err, &storageErr) {
			m.Status = StatusBar{Text: fmt.Sprintf("saved in memory only: %s", err), IsError: true}
			m.refreshVisible()
			return m
		}
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.refreshVisible()
	if advanced {
		m = m.celebrateStreak()
	} else if updated.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", updated.Title), IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", updated.Title), IsError: false}
	}
	return m
}

func (m Model) celebrateStreak() Model {
	if m.Streak == nil {
		return m
	}
	count := m.Streak.State().Count
	m.Status = StatusBar{Text: fmt.Sprintf("streak extended to %d day(s)", count), IsError: false}
	if count > 0 && (model.StreakState{Count: count - 1}).NextMilestone() == count {
		md := fmt.Sprintf("# %d-day streak!\n\nMilestone reached. Next stop: **%d** days.",
			count, m.Streak.NextMilestone())
		m.notify("Milestone", views.RenderMarkdown(md, m.theme), "info")
	} else {
		m.notify("Streak", m.Status.Text, "info")
	}
	return m
}

func (m Model) deleteTask(id string) Model {
	t, err := m.Tasks.Get(id)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if err := m.Tasks.Delete(id); err != nil {
		var storageErr *storage.StorageError
		if errors.As(err, &storageErr) {
			m.Status = StatusBar{Text: fmt.Sprintf("removed in memory only: %s", err), IsError: true}
			m.refreshVisible()
			return m
		}
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.refreshVisible()
	m.Status = StatusBar{Text: fmt.Sprintf("removed: %s", t.Title), IsError: false}
	return m
}
