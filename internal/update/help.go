package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/studyping/internal/views"
)

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		Markdown: m.helpMarkdown(),
		Style:    m.theme,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) helpBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "move")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys(m.Keys.Add), key.WithHelp(m.Keys.Add, "add task")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		key.NewBinding(key.WithKeys(m.Keys.Quit), key.WithHelp(m.Keys.Quit, "quit")),
	}
}

func (m Model) helpMarkdown() string {
	lines := []string{
		"# studyping",
		"",
		"Track homework, exams and projects, and keep your study streak alive",
		"by finishing at least one task on or before its due date every day.",
		"",
		"## Filters",
		"",
		"- `" + m.Keys.All + "` Upcoming Tasks",
		"- `" + m.Keys.Priority + "` Priority Tasks",
		"- `" + m.Keys.Today + "` Due Today",
		"- `" + m.Keys.Exams + "` Exams Corner",
		"",
		"## Commands",
		"",
		"- `add <title> due:YYYY-MM-DD [sub:..] [type:..] [pri:..]`",
		"- `done <id-prefix>` / `remove <id-prefix>`",
		"- `show all|priority|today|exams`",
	}
	return strings.Join(lines, "\n")
}
