package status

import (
	"errors"
	"io"

	"github.com/bnema/modelwatch/internal/application"
	"github.com/bnema/modelwatch/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	build  func(styles) string
	styles styles
	output string
}

func newModel(build func(styles) string) model {
	return model{
		build:  build,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.build(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// RenderModels renders the current snapshot for the terminal.
func RenderModels(models []domain.ModelDescriptor) (string, error) {
	return run(func(s styles) string {
		return renderModelsView(models, s)
	})
}

// RenderHistory renders the session history for the terminal, newest first.
func RenderHistory(sessions []application.SessionView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderHistoryView(sessions, opts, s)
	})
}

func run(build func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(build),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	final, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return final.output, nil
}
