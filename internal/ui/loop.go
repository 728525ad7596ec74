package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// postedMsg carries a function posted from a timer goroutine into Update.
type postedMsg struct {
	fn func()
}

// Loop hands functions from timer goroutines to the Bubble Tea event loop.
// It implements schedule.Poster. Each posted function runs inside Update,
// one at a time, so it may touch the model freely.
type Loop struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

// NewLoop creates a Loop buffering up to size posts.
func NewLoop(size int) *Loop {
	if size < 1 {
		size = 1
	}
	return &Loop{
		ch:   make(chan func(), size),
		done: make(chan struct{}),
	}
}

// Post queues fn for the event loop. It waits while the buffer is full and
// drops fn once the loop is closed.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}

	select {
	case l.ch <- fn:
	case <-l.done:
	}
}

// Wait returns a command that delivers the next posted function. Update
// must issue it again after handling each postedMsg.
func (l *Loop) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-l.ch:
			return postedMsg{fn: fn}
		case <-l.done:
			return nil
		}
	}
}

// Close stops delivery. Safe to call more than once.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}
