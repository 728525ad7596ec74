package debounce

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/progressview/internal/logging"
	"github.com/muurk/progressview/internal/schedule"
	"github.com/muurk/progressview/internal/stepper"
)

// DefaultDelay is the quiet period before an edit is committed.
const DefaultDelay = 500 * time.Millisecond

// Target is what a committed edit is applied to. *stepper.Controller
// satisfies it.
type Target interface {
	Maximum() (int, bool)
	SetFromText(v int) error
}

// FailureFunc is called on the owner goroutine when committed text is not
// a number.
type FailureFunc func(text string, err error)

// Parser debounces edits to the numeric field and applies the result.
//
// TextChanged, Programmatic, Flush and Close must be called on the owner
// goroutine. The debounce timer fires elsewhere and posts the commit back.
type Parser struct {
	target Target
	delay  time.Duration
	sched  schedule.Scheduler
	poster schedule.Poster

	onFailure FailureFunc

	lastText     string
	programmatic int

	timer       schedule.Timer
	gen         uint64
	pending     bool
	pendingText string
	closed      bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(p *Parser) {
		if d > 0 {
			p.delay = d
		}
	}
}

// WithFailureHandler sets the callback for unparseable text.
func WithFailureHandler(fn FailureFunc) Option {
	return func(p *Parser) {
		p.onFailure = fn
	}
}

// New creates a parser applying edits to target.
func New(target Target, sched schedule.Scheduler, poster schedule.Poster, opts ...Option) *Parser {
	p := &Parser{
		target: target,
		delay:  DefaultDelay,
		sched:  sched,
		poster: poster,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Programmatic runs fn with change tracking suspended. Text reported
// through TextChanged inside fn is taken as already applied. The scope ends
// when fn returns or panics.
func (p *Parser) Programmatic(fn func()) {
	p.programmatic++
	defer func() { p.programmatic-- }()
	fn()
}

// TextChanged reports the field's new content.
func (p *Parser) TextChanged(text string) {
	text = strings.TrimSpace(text)

	if p.programmatic > 0 {
		p.lastText = text
		if p.pending && text != p.pendingText {
			// a step wrote the field after the edit, the edit is stale
			p.drop()
		}
		return
	}
	if p.closed || text == p.lastText {
		return
	}
	p.lastText = text

	p.stopTimer()
	p.gen++
	p.pending = true
	p.pendingText = text

	gen := p.gen
	p.timer = p.sched.AfterFunc(p.delay, func() {
		p.poster.Post(func() { p.commit(gen) })
	})
}

// Pending reports whether an edit is waiting for its quiet period.
func (p *Parser) Pending() bool {
	return p.pending
}

// Flush commits a pending edit now.
func (p *Parser) Flush() {
	if !p.pending {
		return
	}
	p.stopTimer()
	p.commit(p.gen)
}

// Close drops any pending edit and ignores later changes.
func (p *Parser) Close() {
	p.drop()
	p.closed = true
}

// drop discards the pending edit. A commit already posted is dropped by
// its generation.
func (p *Parser) drop() {
	p.stopTimer()
	p.pending = false
	p.gen++
}

func (p *Parser) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// commit runs on the owner goroutine. The maximum is read here rather than
// when the timer was set, since it may have changed during the quiet period.
func (p *Parser) commit(gen uint64) {
	if gen != p.gen || !p.pending {
		return
	}
	p.pending = false
	p.timer = nil
	text := p.pendingText

	max, hasMax := p.target.Maximum()
	v, err := Parse(text, max, hasMax)
	if err != nil {
		logging.Warn("Ignoring field text", zap.String("text", text), zap.Error(err))
		logging.LogParse(text, v, "parse_failure")
		if p.onFailure != nil {
			p.onFailure(text, err)
		}
		return
	}

	if err := p.target.SetFromText(v); err != nil {
		logging.LogParse(text, v, "rejected")
		return
	}
	logging.LogParse(text, v, "applied")
}

// Parse reads field text as a progress value. Empty text is zero, negative
// numbers become zero and numbers above max become max when hasMax is set.
// Anything else that is not a base-10 integer fails with
// stepper.ErrParseFailure.
func Parse(text string, max int, hasMax bool) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parse field: %w", &stepper.ParseError{Text: text, Err: err})
	}

	if v < 0 {
		v = 0
	}
	if hasMax && v > max {
		v = max
	}
	return v, nil
}
