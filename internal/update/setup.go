package update

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/storage"
	"github.com/sandeepkv93/studyping/internal/store"
	"github.com/sandeepkv93/studyping/internal/views"
)

const (
	profileFieldName = iota
	profileFieldClass
	profileFieldStream
	profileFieldCount
)

func (m Model) openProfileForm() Model {
	m.Screen = ScreenProfileForm
	m.ProfileForm = profileFormState{}
	m.nameInput.SetValue("")
	m.classInput.SetValue("")
	if p, ok := m.Profiles.Get(); ok {
		m.nameInput.SetValue(p.Name)
		m.classInput.SetValue(strconv.Itoa(p.Class))
		m.ProfileForm.StreamIdx = indexOfStream(model.Streams(), p.Stream)
	}
	m.nameInput.Focus()
	m.classInput.Blur()
	return m
}

func (m Model) handleSetupKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		return m.submitProfile(true)
	}
	return m.editProfileField(msg)
}

func (m Model) handleProfileFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Screen = ScreenDashboard
		m.Status = StatusBar{Text: "profile form cancelled", IsError: false}
		return m
	case "enter":
		return m.submitProfile(false)
	}
	return m.editProfileField(msg)
}

func (m Model) editProfileField(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "tab", "down":
		return m.focusProfileField((m.ProfileForm.FieldIndex + 1) % profileFieldCount)
	case "shift+tab", "up":
		return m.focusProfileField((m.ProfileForm.FieldIndex + profileFieldCount - 1) % profileFieldCount)
	}

	switch m.ProfileForm.FieldIndex {
	case profileFieldName:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		_ = cmd
	case profileFieldClass:
		var cmd tea.Cmd
		m.classInput, cmd = m.classInput.Update(msg)
		_ = cmd
	case profileFieldStream:
		m.ProfileForm.StreamIdx = cycleIndex(m.ProfileForm.StreamIdx, len(model.Streams()), msg.String())
	}
	return m
}

func (m Model) focusProfileField(idx int) Model {
	m.ProfileForm.FieldIndex = idx
	m.nameInput.Blur()
	m.classInput.Blur()
	switch idx {
	case profileFieldName:
		m.nameInput.Focus()
	case profileFieldClass:
		m.classInput.Focus()
	}
	return m
}

func (m Model) submitProfile(firstRun bool) Model {
	class, err := strconv.Atoi(m.classInput.Value())
	if err != nil {
		m.ProfileForm.Err = "class must be a number between 1 and 12"
		return m
	}
	stream := model.Streams()[clampIndex(m.ProfileForm.StreamIdx, len(model.Streams()))]
	if class < 11 {
		stream = model.StreamGeneral
	}
	name := m.nameInput.Value()

	if firstRun {
		_, err = m.Profiles.Create(name, class, stream)
	} else if _, ok := m.Profiles.Get(); ok {
		_, err = m.Profiles.Update(store.ProfilePatch{
			Name:   &name,
			Class:  &class,
			Stream: &stream,
		})
	} else {
		_, err = m.Profiles.Create(name, class, stream)
	}
	if err != nil {
		var storageErr *storage.StorageError
		if !errors.As(err, &storageErr) {
			m.ProfileForm.Err = err.Error()
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("saved in memory only: %s", err), IsError: true}
	} else if firstRun {
		m.Status = StatusBar{Text: fmt.Sprintf("welcome, %s!", name), IsError: false}
	} else {
		m.Status = StatusBar{Text: "profile updated", IsError: false}
	}
	m.Screen = ScreenDashboard
	m.refreshVisible()
	return m
}

func (m Model) renderSetupForm() string {
	return m.renderProfilePanelForm("Welcome to studyping", "enter save | tab move | h/l stream")
}

func (m Model) renderProfileForm() string {
	return m.renderProfilePanelForm("Edit Profile", "enter save | esc cancel | tab move | h/l stream")
}

func (m Model) renderProfilePanelForm(title, hint string) string {
	stream := model.Streams()[clampIndex(m.ProfileForm.StreamIdx, len(model.Streams()))]
	return views.RenderFormPanel(views.FormPanelData{
		Title: title,
		Fields: []views.FormFieldData{
			{Label: "name", Value: m.nameInput.View(), Focused: m.ProfileForm.FieldIndex == profileFieldName},
			{Label: "class", Value: m.classInput.View(), Focused: m.ProfileForm.FieldIndex == profileFieldClass},
			{Label: "stream", Value: string(stream), Focused: m.ProfileForm.FieldIndex == profileFieldStream},
		},
		ErrText: m.ProfileForm.Err,
		Hint:    hint,
	})
}

func indexOfStream(list []model.Stream, want model.Stream) int {
	for i, v := range list {
		if v == want {
			return i
		}
	}
	return 0
}
