package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID        string
	Title     string
	Subject   string
	Due       string
	Type      string
	Priority  string
	Completed bool
	Selected  bool
}

type TaskListData struct {
	Heading string
	Items   []TaskItemData
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(data.Heading + "\n")
	b.WriteString("actions: [j/k]move [x]toggle [d]delete [a]add [1-4]filters\n")
	if len(data.Items) == 0 {
		b.WriteString("\nNo tasks found.")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		b.WriteString(renderTaskLine(item) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderTaskLine(item TaskItemData) string {
	marker := "[ ]"
	if item.Completed {
		marker = "[x]"
	}
	cursor := "  "
	if item.Selected {
		cursor = "> "
	}
	title := item.Title
	if item.Completed {
		title = doneStyle.Render(title)
	} else if item.Selected {
		title = selectedStyle.Render(title)
	}
	line := fmt.Sprintf("%s%s %s  %s · %s · due %s", cursor, marker, title, item.Subject, item.Type, item.Due)
	if item.Priority == "High" && !item.Completed {
		line += " " + priorityStyle.Render("!high")
	}
	if item.Selected {
		line += fmt.Sprintf("\n      id: %s", shortID(item.ID))
	}
	return line
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type StreakPanelData struct {
	Count         int
	LastActive    string
	NextMilestone int
	ProgressView  string
}

func RenderStreakPanel(data StreakPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("streak: %d day(s)\n", data.Count))
	if data.LastActive != "" {
		b.WriteString("last active: " + data.LastActive + "\n")
	}
	b.WriteString(fmt.Sprintf("next milestone: %d\n", data.NextMilestone))
	b.WriteString(data.ProgressView)
	return strings.TrimSpace(b.String())
}

type ProfilePanelData struct {
	Name     string
	Class    int
	Stream   string
	Subjects []string
}

func RenderProfilePanel(data ProfilePanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hi %s!\n", data.Name))
	b.WriteString(fmt.Sprintf("class %d · %s\n", data.Class, data.Stream))
	if len(data.Subjects) > 0 {
		b.WriteString("subjects: " + strings.Join(data.Subjects, ", "))
	}
	return strings.TrimSpace(b.String())
}

type FormFieldData struct {
	Label   string
	Value   string
	Focused bool
}

type FormPanelData struct {
	Title   string
	Fields  []FormFieldData
	ErrText string
	Hint    string
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	for _, field := range data.Fields {
		cursor := "  "
		if field.Focused {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s: %s\n", cursor, field.Label, field.Value))
	}
	if data.ErrText != "" {
		b.WriteString(errorStyle.Render("error: "+data.ErrText) + "\n")
	}
	if data.Hint != "" {
		b.WriteString(footerStyle.Render(data.Hint))
	}
	return strings.TrimSpace(b.String())
}

type PalettePanelData struct {
	InputView string
}

func RenderPalettePanel(data PalettePanelData) string {
	var b strings.Builder
	b.WriteString("command:\n")
	b.WriteString(data.InputView + "\n")
	b.WriteString("add <title> due:YYYY-MM-DD | done <id> | remove <id> | show <filter>")
	return strings.TrimSpace(b.String())
}

type HelpPanelData struct {
	Markdown string
	Style    string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(RenderMarkdown(data.Markdown, data.Style) + "\n")
	b.WriteString(data.HelpView)
	return strings.TrimSpace(b.String())
}
