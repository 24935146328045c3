package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/finfluency/internal/screen"
)

// page counts Init calls and remembers the last message it saw.
type page struct {
	name  string
	inits int
	last  tea.Msg
}

func (p *page) Init() tea.Cmd                               { p.inits++; return nil }
func (p *page) Update(msg tea.Msg) (screen.Screen, tea.Cmd) { p.last = msg; return p, nil }
func (p *page) View(int, int) string                        { return p.name }
func (p *page) Title() string                               { return p.name }

func TestNavigation(t *testing.T) {
	dash, module, quiz := &page{name: "dashboard"}, &page{name: "module"}, &page{name: "certificate"}
	r := New(dash)

	r.Update(PushScreenMsg{Screen: module})
	require.Equal(t, 2, r.Depth())
	assert.Same(t, module, r.Active())
	assert.Equal(t, 1, module.inits)

	r.Update(ReplaceScreenMsg{Screen: quiz})
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "certificate", r.View(80, 24))
	assert.Equal(t, 1, quiz.inits)

	r.Update(PopScreenMsg{})
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, dash, r.Active())
	assert.Equal(t, 1, dash.inits, "revealed screen re-initialises")
}

func TestPopKeepsRoot(t *testing.T) {
	root := &page{name: "dashboard"}
	r := New(root)

	assert.Nil(t, r.Pop())
	assert.Equal(t, 1, r.Depth())
	assert.Zero(t, root.inits)
}

func TestReplaceRoot(t *testing.T) {
	r := New(&page{name: "welcome"})
	dash := &page{name: "dashboard"}

	r.Replace(dash)
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, dash, r.Active())
}

func TestOtherMessagesReachActiveScreen(t *testing.T) {
	root, top := &page{name: "root"}, &page{name: "top"}
	r := New(root)
	r.Push(top)

	key := tea.KeyPressMsg{Code: 'x', Text: "x"}
	r.Update(key)
	assert.Equal(t, key, top.last)
	assert.Nil(t, root.last)
}

func TestCommands(t *testing.T) {
	s := &page{name: "glossary"}
	msg, ok := Push(s)().(PushScreenMsg)
	require.True(t, ok)
	assert.Same(t, s, msg.Screen)

	_, ok = Back()().(PopScreenMsg)
	assert.True(t, ok)
}
