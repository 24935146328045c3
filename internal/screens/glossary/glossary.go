// Package glossary is the searchable list of accounting terms.
package glossary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/content"
	"github.com/abhisek/finfluency/internal/screen"
	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

// Screen lists glossary terms filtered by a search box.
type Screen struct {
	catalog *content.Catalog
	search  components.TextInput
	results []content.Term
	offset  int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the glossary screen.
func New(catalog *content.Catalog) *Screen {
	in := components.NewTextInput("type to search", false, 40)
	in.Label = "Search"
	return &Screen{
		catalog: catalog,
		search:  in,
		results: catalog.Glossary(),
	}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Glossary" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up":
			if s.offset > 0 {
				s.offset--
			}
			return s, nil
		case "down":
			if s.offset < len(s.results)-1 {
				s.offset++
			}
			return s, nil
		}
	}

	before := s.search.Value()
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if s.search.Value() != before {
		s.results = s.catalog.SearchGlossary(s.search.Value())
		s.offset = 0
	}
	return s, cmd
}

// Results returns the terms matching the current query.
func (s *Screen) Results() []content.Term {
	return s.results
}

func (s *Screen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n" + s.search.View() + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d of %d terms", len(s.results), len(s.catalog.Glossary()))))
	b.WriteString("\n\n")

	if len(s.results) == 0 {
		b.WriteString(theme.Hint.Render("No terms match your search."))
	}

	used := lipgloss.Height(b.String())
	for _, t := range s.results[s.offset:] {
		entry := theme.Money.Render(t.Term) + theme.Subtitle.Render(fmt.Sprintf("  (Module %d)", t.Module)) +
			"\n" + components.Wrap(t.Definition, cw-2) + "\n"
		if used+lipgloss.Height(entry) > height {
			break
		}
		b.WriteString(entry + "\n")
		used += lipgloss.Height(entry) + 1
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
