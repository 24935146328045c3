// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/router"
	"github.com/abhisek/finfluency/internal/screen"
	"github.com/abhisek/finfluency/internal/screens/dashboard"
	"github.com/abhisek/finfluency/internal/screens/welcome"
	"github.com/abhisek/finfluency/internal/ui/layout"
)

// Options holds everything the TUI needs.
type Options struct {
	dashboard.Deps
	Logger *zap.Logger
	// SkipWelcome opens straight onto the dashboard.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	header func() layout.HeaderInfo
	width  int
	height int
}

// newAppModel creates the model with the welcome splash on top of the
// dashboard, or the dashboard alone.
func newAppModel(opts Options) AppModel {
	dash := func() screen.Screen { return dashboard.New(opts.Deps) }

	var first screen.Screen
	if opts.SkipWelcome {
		first = dash()
	} else {
		first = welcome.New(dash, greeting(opts.Tracker.Snapshot()))
	}
	return AppModel{
		router: router.New(first),
		header: headerFunc(opts.Tracker),
	}
}

func headerFunc(t *progress.Tracker) func() layout.HeaderInfo {
	return func() layout.HeaderInfo {
		d := t.Snapshot()
		return layout.HeaderInfo{
			Name:      d.User.Name,
			Completed: d.Progress.CompletedCount(),
			Total:     progress.ModuleCount,
		}
	}
}

func greeting(d *progress.Data) string {
	if d.User.Name == progress.DefaultUserName {
		return ""
	}
	return fmt.Sprintf("Welcome back, %s", d.User.Name)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if screen.Capturing(m.router.Active()) {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if hints := screen.Hints(m.router.Active()); len(hints) > 0 {
		return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	chrome := layout.Chrome{
		Title: m.router.Active().Title(),
		Info:  m.header(),
		Hints: m.footerHints(),
	}
	v.SetContent(chrome.Render(m.width, m.height, m.router.View))
	return v
}

// Run starts the Bubble Tea program and records the time spent when it
// exits.
func Run(ctx context.Context, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	start := time.Now()
	log.Info("session started", zap.String("session", opts.Tracker.SessionID()))

	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, runErr := p.Run()

	elapsed := time.Since(start)
	if err := opts.Tracker.RecordSession(context.WithoutCancel(ctx), elapsed); err != nil {
		log.Warn("record session", zap.Error(err))
	}
	log.Info("session ended", zap.Duration("elapsed", elapsed), zap.Error(runErr))

	if runErr != nil {
		return fmt.Errorf("run program: %w", runErr)
	}
	return nil
}
