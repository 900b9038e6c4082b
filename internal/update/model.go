package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/rollover"
	"github.com/sandeepkv93/studyping/internal/store"
	"github.com/sandeepkv93/studyping/internal/streak"
	"github.com/sandeepkv93/studyping/internal/view"
)

type Screen string

const (
	ScreenSetup       Screen = "Setup"
	ScreenDashboard   Screen = "Dashboard"
	ScreenTaskForm    Screen = "TaskForm"
	ScreenProfileForm Screen = "ProfileForm"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	All      string
	Priority string
	Today    string
	Exams    string
	Add      string
	Profile  string
	Help     string
	Quit     string
}

// taskFormState drives both the add form and the edit form; EditingID is
// empty when adding.
type taskFormState struct {
	EditingID  string
	FieldIndex int
	SubjectIdx int
	TypeIdx    int
	PriIdx     int
	Err        string
}

type profileFormState struct {
	FieldIndex int
	StreamIdx  int
	Err        string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

type Model struct {
	Screen          Screen
	Filter          view.Filter
	Visible         []model.Task
	Cursor          int
	TodayDate       model.Date
	ConfirmDeleteID string

	Tasks    *store.TaskStore
	Profiles *store.ProfileStore
	Streak   *streak.Engine
	Events   *rollover.Engine

	Form        taskFormState
	ProfileForm profileFormState
	Palette     CommandPaletteState
	HelpVisible bool

	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	theme          string

	titleInput     textinput.Model
	dateInput      textinput.Model
	nameInput      textinput.Model
	classInput     textinput.Model
	commandInput   textinput.Model
	streakProgress progress.Model
	helpModel      help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SwitchFilterMsg struct {
	Filter view.Filter
}

type RolloverMsg struct {
	Event rollover.Event
}

// Deps carries everything the TUI needs; the model never constructs its
// own stores or samples the clock outside TodayDate refreshes.
type Deps struct {
	Tasks          *store.TaskStore
	Profiles       *store.ProfileStore
	Streak         *streak.Engine
	Events         *rollover.Engine
	Notifier       DesktopNotifier
	DesktopEnabled bool
	Theme          string
	Today          model.Date
	StreakReset    bool
}

func NewModel(deps Deps) Model {
	today := deps.Today
	if today.IsZero() {
		today = model.Today(time.Local)
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NoopDesktopNotifier{}
	}

	m := Model{
		Screen:         ScreenDashboard,
		Filter:         view.FilterAll,
		TodayDate:      today,
		Tasks:          deps.Tasks,
		Profiles:       deps.Profiles,
		Streak:         deps.Streak,
		Events:         deps.Events,
		DesktopEnabled: deps.DesktopEnabled,
		notifier:       notifier,
		theme:          deps.Theme,
		Keys: GlobalKeyMap{
			All:      "1",
			Priority: "2",
			Today:    "3",
			Exams:    "4",
			Add:      "a",
			Profile:  "P",
			Help:     "?",
			Quit:     "q",
		},
	}
	if deps.Profiles != nil {
		if _, ok := deps.Profiles.Get(); !ok {
			m.Screen = ScreenSetup
		}
	}
	m.initInputs()
	m.refreshVisible()
	if deps.StreakReset {
		m.Status = StatusBar{Text: "your study streak has reset", IsError: false}
		m.notify("Streak", "your study streak has reset", "info")
	}
	return m
}

func (m *Model) initInputs() {
	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "task title"
	m.titleInput.CharLimit = 120

	m.dateInput = textinput.New()
	m.dateInput.Placeholder = "YYYY-MM-DD"
	m.dateInput.CharLimit = 10

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "your name"
	m.nameInput.CharLimit = 60

	m.classInput = textinput.New()
	m.classInput.Placeholder = "class (1-12)"
	m.classInput.CharLimit = 2

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add maths worksheet due:2024-05-01"
	m.commandInput.CharLimit = 200

	m.streakProgress = progress.New(progress.WithDefaultGradient())
	m.helpModel = help.New()

	if m.Screen == ScreenSetup {
		m.nameInput.Focus()
	}
}

// refreshVisible recomputes the filtered list after any mutation or date
// change; the cursor is clamped, never reset, so toggling a task keeps the
// selection nearby.
func (m *Model) refreshVisible() {
	if m.Tasks == nil {
		m.Visible = nil
		return
	}
	m.Visible = view.Apply(m.Tasks.List(), m.Filter, m.TodayDate)
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	if len(m.Visible) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return model.Task{}, false
	}
	return m.Visible[m.Cursor], true
}

func (m *Model) notify(title, body, level string) {
	n := Notification{Title: title, Body: body, Level: level, At: time.Now()}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 10 {
		m.Notifications = m.Notifications[len(m.Notifications)-10:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
