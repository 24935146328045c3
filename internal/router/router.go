// Package router keeps the stack of screens the app navigates through.
// Screens never touch the stack directly; they return the commands below
// and the app feeds the resulting messages back into Update.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/finfluency/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen, keeping depth.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Push returns a command that opens s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Back returns a command that closes the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Router holds the open screens, bottom first. The bottom screen is never
// removed.
type Router struct {
	screens []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{screens: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.screens) - 1 }

// Active is the screen receiving input.
func (r *Router) Active() screen.Screen {
	return r.screens[r.top()]
}

func (r *Router) Depth() int { return len(r.screens) }

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.screens = append(r.screens, s)
	return s.Init()
}

// Pop closes the active screen unless it is the root. The screen revealed
// underneath runs Init again so progress made above it shows up.
func (r *Router) Pop() tea.Cmd {
	if r.top() == 0 {
		return nil
	}
	r.screens[r.top()] = nil
	r.screens = r.screens[:r.top()]
	return r.Active().Init()
}

// Replace swaps the active screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.screens[r.top()] = s
	return s.Init()
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}
	next, cmd := r.Active().Update(msg)
	r.screens[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
