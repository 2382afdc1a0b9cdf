// Package router keeps the stack of screens the TUI navigates through.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/screen"
)

// PushScreenMsg opens Screen above the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the previous screen. The root is never popped.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen for Screen, so Esc from Screen
// goes where Esc from the replaced screen would have gone.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Depth() int { return len(r.stack) }

// Active is the screen on top, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if n := len(r.stack); n > 0 {
		return r.stack[n-1]
	}
	return nil
}

// Update applies navigation messages and hands anything else to the
// active screen. Screens entering the stack get their Init command run.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	top := len(r.stack) - 1
	switch msg := msg.(type) {
	case PushScreenMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case ReplaceScreenMsg:
		if top < 0 {
			r.stack = append(r.stack, msg.Screen)
		} else {
			r.stack[top] = msg.Screen
		}
		return msg.Screen.Init()
	case PopScreenMsg:
		if top > 0 {
			r.stack[top] = nil
			r.stack = r.stack[:top]
		}
		return nil
	}

	if top < 0 {
		return nil
	}
	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
