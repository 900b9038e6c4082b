package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/rollover"
	"github.com/sandeepkv93/studyping/internal/views"
)

func waitForRolloverCmd(ch <-chan rollover.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return RolloverMsg{Event: ev}
	}
}

func (m Model) Init() tea.Cmd {
	if m.Events != nil {
		return waitForRolloverCmd(m.Events.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}

		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}

		switch m.Screen {
		case ScreenSetup:
			return m.handleSetupKey(typed), nil
		case ScreenTaskForm:
			return m.handleTaskFormKey(typed), nil
		case ScreenProfileForm:
			return m.handleProfileFormKey(typed), nil
		}

		// a pending delete prompt owns the keyboard until answered
		if m.ConfirmDeleteID != "" {
			return m.handleDashboardKey(typed), nil
		}

		keyStr := typed.String()
		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleDashboardKey(typed), nil

	case SwitchFilterMsg:
		if typed.Filter.IsValid() {
			m.Filter = typed.Filter
			m.Cursor = 0
			m.refreshVisible()
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil

	case RolloverMsg:
		m = m.applyRolloverEvent(typed.Event)
		if m.Events != nil {
			return m, waitForRolloverCmd(m.Events.C())
		}
		return m, nil
	}

	return m, nil
}

// applyRolloverEvent handles the midnight boundary and per-task due alerts.
// A new day refreshes TodayDate, lets the streak engine decide whether the
// chain survived, and re-arms the next midnight event.
func (m Model) applyRolloverEvent(ev rollover.Event) Model {
	switch ev.Kind {
	case rollover.KindNewDay:
		m.TodayDate = model.DateOf(ev.At)
		if m.Streak != nil {
			reset, err := m.Streak.StartOfDay(m.TodayDate)
			if err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else if reset {
				m.notify("Streak", "your study streak has reset", "info")
			}
		}
		m.refreshVisible()
		if m.Events != nil {
			if err := m.Events.ScheduleNewDay(ev.At); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
		}
	case rollover.KindTaskDue:
		m.notify("Due Today", ev.Title, "info")
		m.Status = StatusBar{Text: fmt.Sprintf("due today: %s", ev.Title), IsError: false}
	}
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.Screen {
	case ScreenSetup:
		leftPane = m.renderSetupForm()
		rightPane = m.renderHelpIfVisible()
	case ScreenProfileForm:
		leftPane = m.renderProfileForm()
		rightPane = m.renderSidePanels()
	case ScreenTaskForm:
		leftPane = m.renderTaskForm()
		rightPane = m.renderSidePanels()
	default:
		leftPane = m.renderTaskListView()
		rightPane = m.renderSidePanels()
	}
	if m.Palette.Active {
		rightPane = m.renderCommandPalette() + "\n" + rightPane
	}
	if m.HelpVisible && m.Screen != ScreenSetup {
		rightPane = rightPane + "\n" + m.renderHelpView()
	}

	notification := ""
	if len(m.Notifications) > 0 {
		last := m.Notifications[len(m.Notifications)-1]
		notification = fmt.Sprintf("%s: %s @ %s", last.Title, last.Body, last.At.Format("15:04:05"))
	}

	owner := ""
	if m.Profiles != nil {
		if p, ok := m.Profiles.Get(); ok {
			owner = p.Name
		}
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("studyping | %s | %s", m.TodayDate, owner),
		LeftPane:     strings.TrimSpace(leftPane),
		RightPane:    strings.TrimSpace(rightPane),
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s/%s/%s/%s filters | %s add | %s profile | / cmd | %s help | %s quit",
			m.Keys.All, m.Keys.Priority, m.Keys.Today, m.Keys.Exams,
			m.Keys.Add, m.Keys.Profile, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderTaskListView() string {
	items := make([]views.TaskItemData, 0, len(m.Visible))
	for i, t := range m.Visible {
		items = append(items, views.TaskItemData{
			ID:        t.ID,
			Title:     t.Title,
			Subject:   t.Subject,
			Due:       t.Due.String(),
			Type:      string(t.Type),
			Priority:  string(t.Priority),
			Completed: t.Completed,
			Selected:  i == m.Cursor,
		})
	}
	out := views.RenderTaskList(views.TaskListData{
		Heading: m.Filter.Heading(),
		Items:   items,
	})
	if m.ConfirmDeleteID != "" {
		out += "\n\ndelete selected task? [y/n]"
	}
	return out
}

func (m Model) renderSidePanels() string {
	panels := []string{m.renderStreakPanel()}
	if m.Profiles == nil {
		return strings.Join(panels, "\n\n")
	}
	if p, ok := m.Profiles.Get(); ok {
		panels = append(panels, views.RenderProfilePanel(views.ProfilePanelData{
			Name:     p.Name,
			Class:    p.Class,
			Stream:   string(p.Stream),
			Subjects: m.Profiles.Subjects(),
		}))
	}
	return strings.Join(panels, "\n\n")
}

func (m Model) renderStreakPanel() string {
	if m.Streak == nil {
		return ""
	}
	st := m.Streak.State()
	return views.RenderStreakPanel(views.StreakPanelData{
		Count:         st.Count,
		LastActive:    st.LastActive.String(),
		NextMilestone: m.Streak.NextMilestone(),
		ProgressView:  m.streakProgress.ViewAs(m.Streak.Progress()),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderPalettePanel(views.PalettePanelData{
		InputView: m.commandInput.View(),
	})
}
