package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/storage"
	"github.com/sandeepkv93/studyping/internal/store"
	"github.com/sandeepkv93/studyping/internal/views"
)

const (
	taskFieldTitle = iota
	taskFieldSubject
	taskFieldType
	taskFieldDue
	taskFieldPriority
	taskFieldCount
)

func (m Model) openTaskForm(editID string) Model {
	m.Screen = ScreenTaskForm
	m.Form = taskFormState{EditingID: editID}
	m.titleInput.SetValue("")
	m.dateInput.SetValue("")

	if editID != "" {
		t, err := m.Tasks.Get(editID)
		if err != nil {
			m.Screen = ScreenDashboard
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.titleInput.SetValue(t.Title)
		m.dateInput.SetValue(t.Due.String())
		m.Form.SubjectIdx = indexOfString(m.formSubjects(), t.Subject)
		m.Form.TypeIdx = indexOfType(model.TaskTypes(), t.Type)
		m.Form.PriIdx = indexOfPriority(model.Priorities(), t.Priority)
	} else {
		m.Form.PriIdx = indexOfPriority(model.Priorities(), model.PriorityMedium)
	}
	m.titleInput.Focus()
	m.dateInput.Blur()
	return m
}

// formSubjects is the profile subject table plus a free slot so tasks are
// never forced into a subject the owner does not study.
func (m Model) formSubjects() []string {
	if m.Profiles == nil {
		return []string{model.DefaultSubject}
	}
	return append(m.Profiles.Subjects(), model.DefaultSubject)
}

func (m Model) handleTaskFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Screen = ScreenDashboard
		m.Status = StatusBar{Text: "form cancelled", IsError: false}
		return m
	case "enter":
		return m.submitTaskForm()
	case "tab", "down":
		m = m.focusTaskField((m.Form.FieldIndex + 1) % taskFieldCount)
		return m
	case "shift+tab", "up":
		m = m.focusTaskField((m.Form.FieldIndex + taskFieldCount - 1) % taskFieldCount)
		return m
	}

	switch m.Form.FieldIndex {
	case taskFieldTitle:
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		_ = cmd
	case taskFieldDue:
		var cmd tea.Cmd
		m.dateInput, cmd = m.dateInput.Update(msg)
		_ = cmd
	case taskFieldSubject:
		m.Form.SubjectIdx = cycleIndex(m.Form.SubjectIdx, len(m.formSubjects()), msg.String())
	case taskFieldType:
		m.Form.TypeIdx = cycleIndex(m.Form.TypeIdx, len(model.TaskTypes()), msg.String())
	case taskFieldPriority:
		m.Form.PriIdx = cycleIndex(m.Form.PriIdx, len(model.Priorities()), msg.String())
	}
	return m
}

func (m Model) focusTaskField(idx int) Model {
	m.Form.FieldIndex = idx
	m.titleInput.Blur()
	m.dateInput.Blur()
	switch idx {
	case taskFieldTitle:
		m.titleInput.Focus()
	case taskFieldDue:
		m.dateInput.Focus()
	}
	return m
}

func (m Model) submitTaskForm() Model {
	due, err := model.ParseDate(m.dateInput.Value())
	if err != nil {
		m.Form.Err = "due date must be YYYY-MM-DD"
		return m
	}
	subjects := m.formSubjects()
	subject := subjects[clampIndex(m.Form.SubjectIdx, len(subjects))]
	taskType := model.TaskTypes()[clampIndex(m.Form.TypeIdx, len(model.TaskTypes()))]
	priority := model.Priorities()[clampIndex(m.Form.PriIdx, len(model.Priorities()))]
	title := m.titleInput.Value()

	if m.Form.EditingID != "" {
		_, err = m.Tasks.Update(m.Form.EditingID, store.TaskPatch{
			Title:    &title,
			Subject:  &subject,
			Type:     &taskType,
			Due:      &due,
			Priority: &priority,
		})
	} else {
		_, err = m.Tasks.Create(store.CreateTaskInput{
			Title:    title,
			Subject:  subject,
			Type:     taskType,
			Due:      due,
			Priority: priority,
		})
	}
	if err != nil {
		var storageErr *storage.StorageError
		if errors.As(err, &storageErr) {
			m.Screen = ScreenDashboard
			m.refreshVisible()
			m.Status = StatusBar{Text: fmt.Sprintf("saved in memory only: %s", err), IsError: true}
			return m
		}
		m.Form.Err = err.Error()
		return m
	}

	m.Screen = ScreenDashboard
	m.refreshVisible()
	if m.Form.EditingID != "" {
		m.Status = StatusBar{Text: fmt.Sprintf("updated: %s", title), IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", title), IsError: false}
	}
	return m
}

func (m Model) renderTaskForm() string {
	subjects := m.formSubjects()
	title := "Add Task"
	if m.Form.EditingID != "" {
		title = "Edit Task"
	}
	return views.RenderFormPanel(views.FormPanelData{
		Title: title,
		Fields: []views.FormFieldData{
			{Label: "title", Value: m.titleInput.View(), Focused: m.Form.FieldIndex == taskFieldTitle},
			{Label: "subject", Value: subjects[clampIndex(m.Form.SubjectIdx, len(subjects))], Focused: m.Form.FieldIndex == taskFieldSubject},
			{Label: "type", Value: string(model.TaskTypes()[clampIndex(m.Form.TypeIdx, len(model.TaskTypes()))]), Focused: m.Form.FieldIndex == taskFieldType},
			{Label: "due", Value: m.dateInput.View(), Focused: m.Form.FieldIndex == taskFieldDue},
			{Label: "priority", Value: string(model.Priorities()[clampIndex(m.Form.PriIdx, len(model.Priorities()))]), Focused: m.Form.FieldIndex == taskFieldPriority},
		},
		ErrText: m.Form.Err,
		Hint:    "tab/shift+tab move | h/l cycle | enter save | esc cancel",
	})
}

func cycleIndex(idx, size int, keyStr string) int {
	if size == 0 {
		return 0
	}
	switch keyStr {
	case "l", "right":
		return (idx + 1) % size
	case "h", "left":
		return (idx + size - 1) % size
	}
	return idx
}

func clampIndex(idx, size int) int {
	if size == 0 || idx < 0 || idx >= size {
		return 0
	}
	return idx
}

func indexOfString(list []string, want string) int {
	for i, v := range list {
		if v == want {
			return i
		}
	}
	return 0
}

func indexOfType(list []model.TaskType, want model.TaskType) int {
	for i, v := range list {
		if v == want {
			return i
		}
	}
	return 0
}

func indexOfPriority(list []model.Priority, want model.Priority) int {
	for i, v := range list {
		if v == want {
			return i
		}
	}
	return 0
}
