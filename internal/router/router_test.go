package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certquest/internal/screen"
)

type stubScreen struct {
	name     string
	lastMsg  tea.Msg
	initRuns int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRuns++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.lastMsg = msg
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) Title() string                 { return s.name }

func TestRouterStack(t *testing.T) {
	a := &stubScreen{name: "a"}
	b := &stubScreen{name: "b"}

	r := New(a)
	if r.Depth() != 1 || r.Active() != a {
		t.Fatalf("initial stack: depth %d active %v", r.Depth(), r.Active())
	}

	r.Push(b)
	if r.Depth() != 2 || r.Active() != b {
		t.Errorf("after push: depth %d active %v", r.Depth(), r.Active())
	}
	if b.initRuns != 1 {
		t.Errorf("pushed screen Init runs = %d, want 1", b.initRuns)
	}

	r.Pop()
	if r.Depth() != 1 || r.Active() != a {
		t.Errorf("after pop: depth %d active %v", r.Depth(), r.Active())
	}

	// The last screen never pops.
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("popped below depth 1: %d", r.Depth())
	}
}

func TestRouterReplace(t *testing.T) {
	a := &stubScreen{name: "a"}
	b := &stubScreen{name: "b"}
	c := &stubScreen{name: "c"}

	r := New(a)
	r.Push(b)
	r.Replace(c)

	if r.Depth() != 2 || r.Active() != c {
		t.Errorf("after replace: depth %d active %v", r.Depth(), r.Active())
	}
	if c.initRuns != 1 {
		t.Errorf("replacement Init runs = %d, want 1", c.initRuns)
	}

	r.Pop()
	if r.Active() != a {
		t.Errorf("replace disturbed the screen below: active %v", r.Active())
	}
}

func TestRouterUpdateNavigation(t *testing.T) {
	a := &stubScreen{name: "a"}
	b := &stubScreen{name: "b"}

	r := New(a)
	r.Update(PushScreenMsg{Screen: b})
	if r.Active() != b {
		t.Fatalf("PushScreenMsg ignored: active %v", r.Active())
	}

	// Other messages flow to the active screen only.
	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if b.lastMsg == nil {
		t.Error("active screen never saw the message")
	}
	if a.lastMsg != nil {
		t.Error("inactive screen saw the message")
	}

	r.Update(PopScreenMsg{})
	if r.Active() != a {
		t.Errorf("PopScreenMsg ignored: active %v", r.Active())
	}

	r.Update(ReplaceScreenMsg{Screen: b})
	if r.Active() != b || r.Depth() != 1 {
		t.Errorf("ReplaceScreenMsg: depth %d active %v", r.Depth(), r.Active())
	}
}

func TestRouterView(t *testing.T) {
	r := New(&stubScreen{name: "a"})
	if got := r.View(80, 24); got != "a" {
		t.Errorf("View = %q, want a", got)
	}
}
