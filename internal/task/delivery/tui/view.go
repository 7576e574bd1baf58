package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"realtime-task-manager/internal/model"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Faint(true)
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"}).Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedStyle = cardStyle.BorderForeground(lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"})
	titleStyle    = lipgloss.NewStyle().Bold(true)
	imageStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	sections := []string{
		headerStyle.Render("Task Manager CRUD"),
		m.viewForm(),
		m.viewList(),
		footerStyle.Render(m.help()),
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) viewForm() string {
	submit := "[ctrl+s] Add Task"
	if m.submitting {
		submit = "Adding..."
	}
	return strings.Join([]string{
		m.label("Title", focusTitle),
		m.title.View(),
		m.label("Description", focusDescription),
		m.desc.View(),
		m.label("Image", focusImage),
		m.imagePath.View(),
		labelStyle.Render(submit),
	}, "\n")
}

func (m Model) label(name string, f focus) string {
	if m.focus == f && m.editing == 0 {
		return focusedStyle.Render("> " + name)
	}
	return labelStyle.Render("  " + name)
}

func (m Model) viewList() string {
	header := m.label(fmt.Sprintf("Tasks (%d)", len(m.tasks)), focusList)
	if len(m.tasks) == 0 {
		return header + "\n" + labelStyle.Render("  No tasks yet.")
	}

	cards := make([]string, 0, len(m.tasks))
	for i, t := range m.tasks {
		style := cardStyle
		if i == m.cursor && m.focus == focusList {
			style = selectedStyle
		}
		cards = append(cards, style.Render(m.viewTask(t)))
	}
	return header + "\n" + lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) viewTask(t model.Task) string {
	lines := []string{titleStyle.Render(t.Title)}
	if t.Description != "" {
		lines = append(lines, t.Description)
	}
	if t.HasImage() {
		lines = append(lines, imageStyle.Render("image: "+t.ImageURL))
	}
	if m.editing == t.ID {
		lines = append(lines, m.editor.View(), labelStyle.Render("ctrl+s: save  esc: cancel"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) help() string {
	switch {
	case m.editing != 0:
		return "ctrl+s: save description  esc: cancel  ctrl+c: quit"
	case m.focus == focusList:
		return "j/k: move  e: edit  d: delete  r: refresh  tab: form  q: quit"
	default:
		return "tab: next field  ctrl+s: add task  esc: list  ctrl+c: quit"
	}
}
