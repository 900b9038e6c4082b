package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyping/internal/commands"
	"github.com/sandeepkv93/studyping/internal/store"
	"github.com/sandeepkv93/studyping/internal/view"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			t, err := m.Tasks.Create(store.CreateTaskInput{
				Title:    a.Title,
				Subject:  a.Subject,
				Type:     a.Type,
				Due:      a.Due,
				Priority: a.Priority,
			})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added: %s (due %s)", t.Title, t.Due)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			t, err := m.Tasks.FindByIDPrefix(d.IDPrefix)
			if err != nil {
				return commands.Result{}, err
			}
			updated, advanced, err := m.Tasks.SetCompleted(t.ID, true, m.TodayDate)
			if err != nil {
				return commands.Result{}, err
			}
			msg := fmt.Sprintf("completed: %s", updated.Title)
			if advanced {
				msg = fmt.Sprintf("completed: %s, streak extended", updated.Title)
			}
			return commands.Result{Message: msg}, nil
		},
		Remove: func(r commands.RemoveArgs) (commands.Result, error) {
			t, err := m.Tasks.FindByIDPrefix(r.IDPrefix)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Tasks.Delete(t.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("removed: %s", t.Title)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			f := view.Filter(s.Filter)
			if !f.IsValid() {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("unknown filter: %s", s.Filter),
				}
			}
			m.Filter = f
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("showing: %s", f.Heading())}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}
	m.refreshVisible()

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}
