package screen

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/finfluency/internal/ui/layout"
)

type plain struct{}

func (plain) Init() tea.Cmd                      { return nil }
func (p plain) Update(tea.Msg) (Screen, tea.Cmd) { return p, nil }
func (plain) View(int, int) string               { return "" }
func (plain) Title() string                      { return "Plain" }

type editor struct {
	plain
	editing bool
}

func (e editor) CapturingInput() bool { return e.editing }
func (editor) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Save"}}
}

func TestHints(t *testing.T) {
	assert.Nil(t, Hints(plain{}))
	assert.Equal(t, []layout.KeyHint{{Key: "Enter", Description: "Save"}}, Hints(editor{}))
}

func TestCapturing(t *testing.T) {
	assert.False(t, Capturing(plain{}))
	assert.False(t, Capturing(editor{}))
	assert.True(t, Capturing(editor{editing: true}))
}
