package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/router"
	"github.com/abhisek/finfluency/internal/screen"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

// Limit is how many activity entries the screen loads.
const Limit = 200

// Source lists recorded activity, newest first.
type Source interface {
	History(ctx context.Context, limit int) ([]progress.Activity, error)
}

type historyLoadedMsg struct {
	Sessions []session
	Err      error
}

// session groups the activity of one app run.
type session struct {
	ID      string
	Start   time.Time
	End     time.Time
	Entries []progress.Activity
}

// HistoryScreen displays past sessions and what happened in them.
type HistoryScreen struct {
	source   Source
	sessions []session
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source Source) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.source.History(context.Background(), Limit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: groupSessions(entries)}
	}
}

// groupSessions splits newest-first activity into sessions, keeping the
// newest session first.
func groupSessions(entries []progress.Activity) []session {
	var out []session
	index := make(map[string]int)
	for _, a := range entries {
		i, ok := index[a.SessionID]
		if !ok {
			i = len(out)
			index[a.SessionID] = i
			out = append(out, session{ID: a.SessionID, Start: a.Timestamp, End: a.Timestamp})
		}
		sess := &out[i]
		sess.Entries = append(sess.Entries, a)
		if a.Timestamp.Before(sess.Start) {
			sess.Start = a.Timestamp
		}
		if a.Timestamp.After(sess.End) {
			sess.End = a.Timestamp
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing here yet. Open a module and start learning!")
	}

	cw := layout.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s  %s  %d activities%s",
			prefix, sess.Start.Local().Format("Jan 02, 2006 15:04"), formatSpan(sess.End.Sub(sess.Start)),
			len(sess.Entries), completedSuffix(sess.Entries))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Width(cw).Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, a := range sess.Entries {
				entry := fmt.Sprintf("    %s  %s", a.Timestamp.Local().Format("15:04:05"), Describe(a))
				b.WriteString(lipgloss.NewStyle().Foreground(kindColor(a.Kind)).Width(cw).Render(entry))
				b.WriteString("\n")
			}
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func formatSpan(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func completedSuffix(entries []progress.Activity) string {
	n := 0
	for _, a := range entries {
		if a.Kind == progress.ActivityModuleCompleted {
			n++
		}
	}
	switch n {
	case 0:
		return ""
	case 1:
		return "  1 module completed"
	default:
		return fmt.Sprintf("  %d modules completed", n)
	}
}

// Describe renders one activity entry as a short sentence.
func Describe(a progress.Activity) string {
	mod := fmt.Sprintf("Module %d", a.ModuleID)
	switch a.Kind {
	case progress.ActivityConceptRead:
		return fmt.Sprintf("%s: read %s", mod, a.Detail)
	case progress.ActivityConceptUnread:
		return fmt.Sprintf("%s: unmarked %s", mod, a.Detail)
	case progress.ActivityExerciseCompleted:
		return mod + ": exercise completed"
	case progress.ActivityQuizCompleted:
		return fmt.Sprintf("%s: quiz scored %s", mod, a.Detail)
	case progress.ActivityModuleCompleted:
		return mod + " completed"
	case progress.ActivityRenamed:
		return "Renamed to " + a.Detail
	case progress.ActivityImported:
		return "Imported progress (" + a.Detail + ")"
	case progress.ActivityReset:
		return "Progress reset"
	default:
		return string(a.Kind)
	}
}

func kindColor(k progress.ActivityKind) color.Color {
	switch k {
	case progress.ActivityModuleCompleted:
		return theme.Accent
	case progress.ActivityQuizCompleted, progress.ActivityExerciseCompleted:
		return theme.Primary
	case progress.ActivityReset, progress.ActivityConceptUnread:
		return theme.Error
	default:
		return theme.Text
	}
}
