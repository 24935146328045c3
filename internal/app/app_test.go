package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/finfluency/internal/content"
	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/router"
	"github.com/abhisek/finfluency/internal/screen"
	"github.com/abhisek/finfluency/internal/screens/dashboard"
	"github.com/abhisek/finfluency/internal/screens/welcome"
)

type editorScreen struct {
	editing bool
	escs    int
}

func (s *editorScreen) Init() tea.Cmd { return nil }
func (s *editorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		s.escs++
		s.editing = false
	}
	return s, nil
}
func (s *editorScreen) View(int, int) string { return "editor" }
func (s *editorScreen) Title() string        { return "Editor" }
func (s *editorScreen) CapturingInput() bool { return s.editing }

func testOptions(t *testing.T, skipWelcome bool) Options {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)
	tr, err := progress.NewTracker(context.Background(), progress.NewMemoryPersistence(), c)
	require.NoError(t, err)
	return Options{
		Deps:        dashboard.Deps{Catalog: c, Tracker: tr, AppVersion: "1.0.0", ExportDir: t.TempDir()},
		SkipWelcome: skipWelcome,
	}
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestStartsOnWelcome(t *testing.T) {
	m := newAppModel(testOptions(t, false))
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok, "first screen should be the welcome splash")

	m = newAppModel(testOptions(t, true))
	_, ok = m.router.Active().(*dashboard.Screen)
	assert.True(t, ok, "SkipWelcome should open the dashboard")
}

func TestEscAtRootDoesNothing(t *testing.T) {
	m := newAppModel(testOptions(t, true))
	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscRespectsInputCapture(t *testing.T) {
	m := newAppModel(testOptions(t, true))
	ed := &editorScreen{editing: true}
	m, _ = update(m, router.PushScreenMsg{Screen: ed})
	require.Equal(t, 2, m.router.Depth())

	// While editing, Esc belongs to the screen.
	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, ed.escs)
	assert.Equal(t, 2, m.router.Depth())

	// Afterwards it navigates back.
	m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, isPop := cmd().(router.PopScreenMsg)
	assert.True(t, isPop)
	assert.Equal(t, 1, ed.escs)
}

func TestHeaderTracksProgress(t *testing.T) {
	opts := testOptions(t, true)
	m := newAppModel(opts)
	require.NoError(t, opts.Tracker.Rename(context.Background(), "Ada"))

	info := m.header()
	assert.Equal(t, "Ada", info.Name)
	assert.Equal(t, 0, info.Completed)
	assert.Equal(t, progress.ModuleCount, info.Total)
}

func TestGreeting(t *testing.T) {
	d := progress.NewData(fixedTime())
	assert.Empty(t, greeting(d))
	d.User.Name = "Grace"
	assert.Equal(t, "Welcome back, Grace", greeting(d))
}

func TestFooterUsesScreenHints(t *testing.T) {
	m := newAppModel(testOptions(t, true))
	hints := m.footerHints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "Ctrl+C", hints[len(hints)-1].Key)

	m, _ = update(m, router.PushScreenMsg{Screen: &editorScreen{}})
	hints = m.footerHints()
	assert.Equal(t, "Esc", hints[0].Key)
}

func fixedTime() time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}
