// Package spinner provides a terminal ProgressIndicator built on bubbletea.
package spinner

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/ochairo/unipkg/internal/domain/interfaces"
)

var (
	colorAccent  = lipgloss.Color("#7D56F4")
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8A8A8"))
)

// model renders one spinner frame followed by the message
type model struct {
	spinner spinner.Model
	message string
}

func newModel(message string) model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(colorAccent)),
	)
	return model{spinner: s, message: message}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	return m.spinner.View() + " " + messageStyle.Render(m.message)
}

// Spinner draws an animated indicator while a blocking step runs.
// At most one animation runs at a time; Stop blocks until it has exited.
type Spinner struct {
	out     io.Writer
	enabled bool
	logger  interfaces.Logger

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// New creates a spinner drawing to out. It stays silent when disabled.
func New(out io.Writer, enabled bool, logger interfaces.Logger) *Spinner {
	if out == nil {
		out = os.Stderr
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Spinner{out: out, enabled: enabled, logger: logger}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start begins the animation in the background
func (s *Spinner) Start(message string) {
	if !s.enabled {
		s.logger.Info(message)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program != nil {
		return
	}

	p := tea.NewProgram(newModel(message),
		tea.WithOutput(s.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	done := make(chan struct{})
	s.program = p
	s.done = done

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				s.logger.Warn("spinner stopped unexpectedly", interfaces.F("panic", r))
			}
		}()
		if _, err := p.Run(); err != nil {
			s.logger.Debug("spinner exited", interfaces.Err(err))
		}
	}()
}

// Stop ends the animation and waits for the drawing goroutine to exit
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program, s.done = nil, nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	p.Quit()
	<-done
}
