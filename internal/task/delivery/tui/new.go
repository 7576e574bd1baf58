package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"realtime-task-manager/internal/model"
	"realtime-task-manager/internal/task"
	pkgLog "realtime-task-manager/pkg/log"
)

type focus int

const (
	focusTitle focus = iota
	focusDescription
	focusImage
	focusList
)

// Model is the task manager screen: a create form above the mirrored list.
type Model struct {
	ctx   context.Context
	l     pkgLog.Logger
	uc    task.UseCase
	scope model.Scope

	changes <-chan struct{}
	cancel  func()

	width  int
	height int

	focus      focus
	title      textinput.Model
	desc       textarea.Model
	imagePath  textinput.Model
	submitting bool

	tasks   []model.Task
	cursor  int
	editing int64 // ID of the task whose description is open, 0 when none
	editor  textarea.Model
}

// New builds the screen. The use case must already be mounted.
func New(ctx context.Context, l pkgLog.Logger, uc task.UseCase, sc model.Scope) Model {
	changes, cancel := uc.Watch()

	m := Model{
		ctx:     ctx,
		l:       l,
		uc:      uc,
		scope:   sc,
		changes: changes,
		cancel:  cancel,
		tasks:   uc.Tasks(),
	}

	m.title = textinput.New()
	m.title.Placeholder = "Task title"
	m.title.Width = 48

	m.desc = textarea.New()
	m.desc.Placeholder = "Task description"
	m.desc.CharLimit = 0
	m.desc.ShowLineNumbers = false
	m.desc.SetWidth(60)
	m.desc.SetHeight(3)

	m.imagePath = textinput.New()
	m.imagePath.Placeholder = "Image file (optional)"
	m.imagePath.Width = 48

	m.editor = textarea.New()
	m.editor.Placeholder = "New description"
	m.editor.CharLimit = 0
	m.editor.ShowLineNumbers = false
	m.editor.SetWidth(60)
	m.editor.SetHeight(3)

	m.setFocus(focusTitle)
	return m
}

// Run blocks until the user quits.
func Run(ctx context.Context, l pkgLog.Logger, uc task.UseCase, sc model.Scope) error {
	m := New(ctx, l, uc, sc)
	defer m.cancel()

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}
