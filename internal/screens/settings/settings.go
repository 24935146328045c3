// Package settings lets the learner rename themselves, export or import
// progress and reset everything.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/screen"
	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

type mode int

const (
	modeMenu mode = iota
	modeRename
	modeImport
	modeConfirmReset
)

// Screen is the settings screen.
type Screen struct {
	tracker    *progress.Tracker
	appVersion string
	exportDir  string
	now        func() time.Time

	mode    mode
	menu    components.Menu
	input   components.TextInput
	confirm components.ButtonRow

	notice     string
	noticeGood bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

// doneMsg ends a sub-mode.
type doneMsg struct{ action string }

// New creates the settings screen. Exports are written to exportDir.
func New(tracker *progress.Tracker, appVersion, exportDir string) *Screen {
	s := &Screen{
		tracker:    tracker,
		appVersion: appVersion,
		exportDir:  exportDir,
		now:        time.Now,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Change name", Action: s.action("rename")},
		{Label: "Export progress", Action: s.action("export")},
		{Label: "Import progress", Action: s.action("import")},
		{Label: "Reset all progress", Action: s.action("reset")},
	})
	return s
}

func (s *Screen) action(name string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return doneMsg{action: name} }
	}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Settings" }

// CapturingInput keeps Esc inside the screen while a sub-mode is open.
func (s *Screen) CapturingInput() bool {
	return s.mode != modeMenu
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeRename, modeImport:
		return []layout.KeyHint{{Key: "Enter", Description: "Save"}, {Key: "Esc", Description: "Cancel"}}
	case modeConfirmReset:
		return []layout.KeyHint{{Key: "←→", Description: "Choose"}, {Key: "Enter", Description: "Confirm"}, {Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, {Key: "Esc", Description: "Back"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(doneMsg); ok {
		s.start(m.action)
		return s, nil
	}

	kmsg, isKey := msg.(tea.KeyMsg)
	if isKey && kmsg.String() == "esc" && s.mode != modeMenu {
		s.mode = modeMenu
		return s, nil
	}

	var cmd tea.Cmd
	switch s.mode {
	case modeMenu:
		if isKey {
			s.notice = ""
		}
		s.menu, cmd = s.menu.Update(msg)
	case modeRename, modeImport:
		if isKey && kmsg.String() == "enter" {
			s.submit()
			return s, nil
		}
		s.input, cmd = s.input.Update(msg)
	case modeConfirmReset:
		s.confirm, cmd = s.confirm.Update(msg)
	}
	return s, cmd
}

func (s *Screen) start(action string) {
	s.notice = ""
	switch action {
	case "rename":
		s.mode = modeRename
		s.input = components.NewTextInput("your name", false, 40)
		s.input.Label = "Name"
		s.input.SetValue(s.tracker.Snapshot().User.Name)
	case "import":
		s.mode = modeImport
		s.input = components.NewTextInput(progress.ExportFileName(s.now()), false, 200)
		s.input.Label = "File"
	case "export":
		s.export()
	case "reset":
		s.mode = modeConfirmReset
		s.confirm = components.NewButtonRow(
			components.NewButton("Cancel", true, s.action("cancel-reset")),
			components.NewButton("Reset everything", false, s.action("confirm-reset")),
		)
	case "cancel-reset":
		s.mode = modeMenu
	case "confirm-reset":
		s.mode = modeMenu
		if err := s.tracker.Reset(context.Background()); err != nil {
			s.setNotice("Reset failed: "+err.Error(), false)
			return
		}
		s.setNotice("All progress has been reset.", true)
	}
}

func (s *Screen) submit() {
	value := strings.TrimSpace(s.input.Value())
	switch s.mode {
	case modeRename:
		err := s.tracker.Rename(context.Background(), value)
		switch {
		case errors.Is(err, progress.ErrEmptyName):
			s.setNotice("Name must not be empty.", false)
			return
		case err != nil:
			s.setNotice("Could not save name: "+err.Error(), false)
		default:
			s.setNotice("Name changed to "+value+".", true)
		}
	case modeImport:
		if err := s.importFile(value); err != nil {
			s.setNotice("Import failed: "+err.Error(), false)
			return
		}
		s.setNotice("Progress imported.", true)
	}
	s.mode = modeMenu
}

func (s *Screen) export() {
	now := s.now()
	raw, err := progress.Export(s.tracker.Snapshot(), s.appVersion, now)
	if err != nil {
		s.setNotice("Export failed: "+err.Error(), false)
		return
	}
	path := filepath.Join(s.exportDir, progress.ExportFileName(now))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		s.setNotice("Export failed: "+err.Error(), false)
		return
	}
	s.setNotice("Progress exported to "+path, true)
}

func (s *Screen) importFile(path string) error {
	if path == "" {
		return errors.New("enter a file path")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.exportDir, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	d, err := progress.Import(raw, s.appVersion)
	if err != nil {
		return err
	}
	return s.tracker.Replace(context.Background(), d)
}

func (s *Screen) setNotice(text string, good bool) {
	s.notice = text
	s.noticeGood = good
}

func (s *Screen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	d := s.tracker.Snapshot()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Learner: %s   ·   started %s   ·   %s total",
		d.User.Name,
		time.UnixMilli(d.User.StartedAt).Format("Jan 2, 2006"),
		(time.Duration(d.Stats.TotalTimeSpent)*time.Millisecond).Round(time.Minute))))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	b.WriteString("\n")

	switch s.mode {
	case modeRename, modeImport:
		b.WriteString(components.Panel("", s.input.View(), cw))
	case modeConfirmReset:
		warn := theme.Incorrect.Render("This deletes your name, every module's progress and your history.")
		b.WriteString(components.Panel("Reset all progress?", warn+"\n\n"+s.confirm.View(), cw))
	}
	if s.notice != "" {
		b.WriteString("\n" + components.Notice(s.notice, s.noticeGood))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
