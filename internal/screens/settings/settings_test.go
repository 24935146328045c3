package settings

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/finfluency/internal/content"
	"github.com/abhisek/finfluency/internal/progress"
)

var (
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyRight = tea.KeyPressMsg{Code: tea.KeyRight}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newSettings(t *testing.T) (*Screen, *progress.Tracker, string) {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)
	tr, err := progress.NewTracker(context.Background(), progress.NewMemoryPersistence(), c)
	require.NoError(t, err)
	dir := t.TempDir()
	s := New(tr, "1.2.0", dir)
	s.now = func() time.Time { return fixedNow }
	return s, tr, dir
}

// press sends msg and feeds any resulting command back, as the runtime would.
func press(s *Screen, msg tea.Msg) {
	_, cmd := s.Update(msg)
	if cmd != nil {
		if out := cmd(); out != nil {
			s.Update(out)
		}
	}
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		press(s, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func clearInput(s *Screen) {
	for range 40 {
		press(s, tea.KeyPressMsg{Code: tea.KeyBackspace})
	}
}

func TestRename(t *testing.T) {
	s, tr, _ := newSettings(t)

	press(s, keyEnter)
	require.True(t, s.CapturingInput())
	assert.Equal(t, progress.DefaultUserName, s.input.Value())

	clearInput(s)
	typeText(s, "Ada")
	press(s, keyEnter)

	assert.False(t, s.CapturingInput())
	assert.Equal(t, "Ada", tr.Snapshot().User.Name)
	assert.Contains(t, s.notice, "Ada")
}

func TestRenameRejectsBlank(t *testing.T) {
	s, tr, _ := newSettings(t)
	press(s, keyEnter)
	clearInput(s)
	typeText(s, "   ")
	press(s, keyEnter)

	assert.True(t, s.CapturingInput(), "blank name keeps the editor open")
	assert.Contains(t, s.notice, "must not be empty")
	assert.Equal(t, progress.DefaultUserName, tr.Snapshot().User.Name)

	press(s, keyEsc)
	assert.False(t, s.CapturingInput())
}

func TestExportThenImport(t *testing.T) {
	s, tr, dir := newSettings(t)
	require.NoError(t, tr.Rename(context.Background(), "Grace"))

	press(s, keyDown)
	press(s, keyEnter)
	path := filepath.Join(dir, "finance_fluency_progress_2025-06-15.json")
	require.Contains(t, s.notice, path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Grace"`)

	require.NoError(t, tr.Rename(context.Background(), "Someone Else"))

	press(s, keyDown)
	press(s, keyEnter)
	require.True(t, s.CapturingInput())
	typeText(s, filepath.Base(path))
	press(s, keyEnter)

	assert.Contains(t, s.notice, "imported")
	assert.Equal(t, "Grace", tr.Snapshot().User.Name)
}

func TestImportErrors(t *testing.T) {
	s, _, dir := newSettings(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"nope": true}`), 0o644))

	press(s, keyDown)
	press(s, keyDown)
	press(s, keyEnter)
	typeText(s, "missing.json")
	press(s, keyEnter)
	assert.Contains(t, s.notice, "Import failed")
	assert.True(t, s.CapturingInput())

	clearInput(s)
	typeText(s, "bad.json")
	press(s, keyEnter)
	assert.Contains(t, s.notice, "Import failed")
}

func TestResetNeedsConfirmation(t *testing.T) {
	s, tr, _ := newSettings(t)
	require.NoError(t, tr.Rename(context.Background(), "Ada"))

	for range 3 {
		press(s, keyDown)
	}
	press(s, keyEnter)
	require.Equal(t, modeConfirmReset, s.mode)
	assert.True(t, strings.Contains(s.View(100, 30), "Reset all progress?"))

	// Cancel is focused first.
	press(s, keyEnter)
	assert.Equal(t, modeMenu, s.mode)
	assert.Equal(t, "Ada", tr.Snapshot().User.Name)

	press(s, keyEnter)
	press(s, keyRight)
	press(s, keyEnter)
	assert.Equal(t, modeMenu, s.mode)
	assert.Equal(t, progress.DefaultUserName, tr.Snapshot().User.Name)
	assert.Contains(t, s.notice, "reset")
}
