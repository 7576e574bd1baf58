package tui

import (
	"mime"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"realtime-task-manager/internal/task"
)

type tasksChangedMsg struct{}

type submittedMsg struct{ err error }

type savedMsg struct {
	id  int64
	err error
}

type deletedMsg struct {
	id  int64
	err error
}

type refreshedMsg struct{ err error }

// waitForChange turns one store notification into a message. It returns
// nil once the watch is cancelled.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return tasksChangedMsg{}
	}
}

func (m Model) submitCmd(form task.Form, imagePath string) tea.Cmd {
	return func() tea.Msg {
		if imagePath != "" {
			f, err := os.Open(imagePath)
			if err != nil {
				m.l.Warnf(m.ctx, "tui.submit: image %q skipped: %v", imagePath, err)
			} else {
				defer f.Close()
				form.Image = &task.UploadImageInput{
					FileName:    filepath.Base(imagePath),
					ContentType: contentType(imagePath),
					Body:        f,
				}
			}
		}

		_, err := m.uc.Submit(m.ctx, m.scope, &form)
		return submittedMsg{err: err}
	}
}

func (m Model) saveCmd(id int64, description string) tea.Cmd {
	return func() tea.Msg {
		err := m.uc.UpdateTask(m.ctx, task.UpdateTaskInput{ID: id, Description: description})
		return savedMsg{id: id, err: err}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: m.uc.DeleteTask(m.ctx, id)}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.uc.FetchTasks(m.ctx)
		return refreshedMsg{err: err}
	}
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
