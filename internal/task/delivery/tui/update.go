package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksChangedMsg:
		m.reload()
		return m, waitForChange(m.changes)

	case submittedMsg:
		m.submitting = false
		if msg.err != nil {
			m.l.Debugf(m.ctx, "tui.submit: form kept: %v", msg.err)
			return m, nil
		}
		m.resetForm()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.l.Debugf(m.ctx, "tui.save: task %d: %v", msg.id, msg.err)
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.l.Debugf(m.ctx, "tui.delete: task %d: %v", msg.id, msg.err)
		}
		return m, nil

	case refreshedMsg:
		if msg.err != nil {
			m.l.Debugf(m.ctx, "tui.refresh: %v", msg.err)
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.editing != 0 {
			return m.updateEditor(msg)
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateForm(msg)
	}

	return m.forward(msg)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		cmd := m.setFocus((m.focus + 1) % (focusList + 1))
		return m, cmd
	case "shift+tab":
		cmd := m.setFocus((m.focus + focusList) % (focusList + 1))
		return m, cmd
	case "esc":
		cmd := m.setFocus(focusList)
		return m, cmd
	case "ctrl+s":
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		form := task.Form{
			Title:       m.title.Value(),
			Description: m.desc.Value(),
		}
		return m, m.submitCmd(form, strings.TrimSpace(m.imagePath.Value()))
	}
	return m.forward(msg)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		cmd := m.setFocus(focusTitle)
		return m, cmd
	case "shift+tab":
		cmd := m.setFocus(focusImage)
		return m, cmd
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "r":
		return m, m.refreshCmd()
	case "e":
		if t, ok := m.selected(); ok {
			m.editing = t.ID
			m.editor.SetValue(t.Description)
			cmd := m.editor.Focus()
			return m, cmd
		}
	case "d":
		if t, ok := m.selected(); ok {
			return m, m.deleteCmd(t.ID)
		}
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeEditor()
		return m, nil
	case "ctrl+s":
		id, description := m.editing, m.editor.Value()
		m.closeEditor()
		return m, m.saveCmd(id, description)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// forward hands the message to whichever input has focus.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.editing != 0:
		m.editor, cmd = m.editor.Update(msg)
	case m.focus == focusTitle:
		m.title, cmd = m.title.Update(msg)
	case m.focus == focusDescription:
		m.desc, cmd = m.desc.Update(msg)
	case m.focus == focusImage:
		m.imagePath, cmd = m.imagePath.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.desc.Blur()
	m.imagePath.Blur()

	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusDescription:
		return m.desc.Focus()
	case focusImage:
		return m.imagePath.Focus()
	}
	return nil
}

// reload copies the mirrored list and keeps the cursor on the same task
// when it still exists.
func (m *Model) reload() {
	var current int64
	if t, ok := m.selected(); ok {
		current = t.ID
	}

	m.tasks = m.uc.Tasks()
	m.cursor = 0
	for i, t := range m.tasks {
		if t.ID == current {
			m.cursor = i
			break
		}
	}

	if m.editing != 0 && !m.contains(m.editing) {
		m.closeEditor()
	}
}

func (m Model) selected() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m Model) contains(id int64) bool {
	for _, t := range m.tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (m *Model) closeEditor() {
	m.editing = 0
	m.editor.Reset()
	m.editor.Blur()
}

func (m *Model) resetForm() {
	m.title.Reset()
	m.desc.Reset()
	m.imagePath.Reset()
}
