package debounce

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/progressview/internal/schedule"
	"github.com/muurk/progressview/internal/stepper"
)

// fieldView stands in for the text field: every write the controller makes
// is reported back to the parser as a change, like a real input would.
type fieldView struct {
	parser *Parser
	text   string
}

func (v *fieldView) ShowValue(text string) {
	v.parser.Programmatic(func() {
		v.text = text
		v.parser.TextChanged(text)
	})
}
func (v *fieldView) ShowMaximum(string)       {}
func (v *fieldView) SetMaximumVisible(bool)   {}
func (v *fieldView) SetDecrementEnabled(bool) {}
func (v *fieldView) SetIncrementEnabled(bool) {}

// typeText simulates the user replacing the field content
func (v *fieldView) typeText(text string) {
	v.text = text
	v.parser.TextChanged(text)
}

type fixture struct {
	ctrl     *stepper.Controller
	view     *fieldView
	parser   *Parser
	sched    *schedule.Fake
	changes  []int
	failures []string
}

func newFixture(t *testing.T, opts ...stepper.Option) *fixture {
	t.Helper()
	f := &fixture{view: &fieldView{}, sched: schedule.NewFake()}

	// the parser needs the controller and the controller's view needs the
	// parser, so wire through a late-bound target
	late := &lateTarget{}
	f.parser = New(late, f.sched, schedule.Inline, WithFailureHandler(func(text string, err error) {
		f.failures = append(f.failures, text)
		f.view.ShowValue(strconv.Itoa(f.ctrl.Value()))
	}))
	f.view.parser = f.parser

	ctrl, err := stepper.New(f.view, opts...)
	require.NoError(t, err)
	ctrl.SetListener(func(p int) { f.changes = append(f.changes, p) })
	late.Target = ctrl
	f.ctrl = ctrl
	return f
}

type lateTarget struct {
	Target
}

func TestTypedValueAppliedAfterQuietPeriod(t *testing.T) {
	f := newFixture(t)

	f.view.typeText("7")
	assert.True(t, f.parser.Pending())

	f.sched.Advance(499 * time.Millisecond)
	assert.Equal(t, 0, f.ctrl.Value())

	f.sched.Advance(time.Millisecond)
	assert.Equal(t, 7, f.ctrl.Value())
	assert.Equal(t, []int{7}, f.changes)
	assert.False(t, f.parser.Pending())
}

func TestRepeatedIdenticalTextFiresOnce(t *testing.T) {
	f := newFixture(t)

	f.view.typeText("7")
	f.sched.Advance(200 * time.Millisecond)
	f.view.typeText("7")
	f.sched.Advance(time.Second)

	assert.Equal(t, []int{7}, f.changes)
}

func TestEditRestartsTimer(t *testing.T) {
	f := newFixture(t)

	f.view.typeText("1")
	f.sched.Advance(400 * time.Millisecond)
	f.view.typeText("12")
	f.sched.Advance(400 * time.Millisecond)
	assert.Empty(t, f.changes, "second edit pushed the deadline back")
	assert.Equal(t, 1, f.sched.Pending(), "at most one pending timer")

	f.sched.Advance(100 * time.Millisecond)
	assert.Equal(t, []int{12}, f.changes)
}

func TestValueAboveMaximumClamped(t *testing.T) {
	f := newFixture(t, stepper.WithMaximum(3))

	f.view.typeText("9")
	f.sched.Advance(500 * time.Millisecond)

	assert.Equal(t, 3, f.ctrl.Value())
	assert.Equal(t, "3", f.view.text)
}

func TestMaximumReadAtCommitTime(t *testing.T) {
	f := newFixture(t, stepper.WithMaximum(50))

	f.view.typeText("40")
	require.NoError(t, f.ctrl.SetMaximum(20))
	f.sched.Advance(500 * time.Millisecond)

	assert.Equal(t, 20, f.ctrl.Value())
}

func TestEmptyTextIsZero(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SetValue(5))
	f.changes = nil

	f.view.typeText("")
	f.sched.Advance(500 * time.Millisecond)

	assert.Equal(t, 0, f.ctrl.Value())
	assert.Equal(t, "0", f.view.text)
	assert.Equal(t, []int{0}, f.changes)
}

func TestNegativeTextIsZero(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SetValue(5))

	f.view.typeText("-4")
	f.sched.Advance(500 * time.Millisecond)

	assert.Equal(t, 0, f.ctrl.Value())
}

func TestGarbageTextIgnored(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SetValue(5))
	f.changes = nil

	f.view.typeText("abc")
	f.sched.Advance(500 * time.Millisecond)

	assert.Equal(t, 5, f.ctrl.Value())
	assert.Empty(t, f.changes)
	assert.Equal(t, []string{"abc"}, f.failures)
	assert.Equal(t, "5", f.view.text, "field is put back to the current value")
	assert.Equal(t, 0, f.sched.Pending(), "restoring the field must not schedule a commit")
}

func TestProgrammaticWritesIgnored(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.SetValue(8))
	require.True(t, f.ctrl.Increment())

	assert.False(t, f.parser.Pending())
	assert.Equal(t, 0, f.sched.Pending())
	assert.Equal(t, []int{8, 9}, f.changes)
}

func TestProgrammaticScopeReleasedOnPanic(t *testing.T) {
	f := newFixture(t)

	assert.Panics(t, func() {
		f.parser.Programmatic(func() { panic("boom") })
	})

	f.view.typeText("4")
	assert.True(t, f.parser.Pending(), "user edits are tracked again after the panic")
}

func TestTypingBackProgrammaticTextIsNoop(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SetValue(6))
	f.changes = nil

	f.view.typeText("6")
	assert.False(t, f.parser.Pending())
}

func TestStaleCommitDropped(t *testing.T) {
	var queued []func()
	poster := schedule.PosterFunc(func(fn func()) { queued = append(queued, fn) })
	sched := schedule.NewFake()

	ctrl, err := stepper.New(nil)
	require.NoError(t, err)
	p := New(ctrl, sched, poster)

	p.TextChanged("3")
	sched.Advance(500 * time.Millisecond)
	require.Len(t, queued, 1)

	p.TextChanged("4")
	queued[0]()
	assert.Equal(t, 0, ctrl.Value(), "commit for superseded text is dropped")

	sched.Advance(500 * time.Millisecond)
	require.Len(t, queued, 2)
	queued[1]()
	assert.Equal(t, 4, ctrl.Value())
}

func TestFlush(t *testing.T) {
	f := newFixture(t)

	f.view.typeText("15")
	f.parser.Flush()

	assert.Equal(t, 15, f.ctrl.Value())
	assert.Equal(t, 0, f.sched.Pending())

	f.parser.Flush()
	assert.Equal(t, []int{15}, f.changes)
}

func TestClose(t *testing.T) {
	f := newFixture(t)

	f.view.typeText("15")
	f.parser.Close()
	f.sched.Advance(time.Second)
	f.view.typeText("16")

	assert.Equal(t, 0, f.ctrl.Value())
	assert.Equal(t, 0, f.sched.Pending())
}

func TestWithDelay(t *testing.T) {
	ctrl, err := stepper.New(nil)
	require.NoError(t, err)
	sched := schedule.NewFake()
	p := New(ctrl, sched, schedule.Inline, WithDelay(50*time.Millisecond))

	p.TextChanged("2")
	sched.Advance(50 * time.Millisecond)
	assert.Equal(t, 2, ctrl.Value())
}

func TestParse(t *testing.T) {
	tests := []struct {
		text   string
		max    int
		hasMax bool
		want   int
		fails  bool
	}{
		{text: "", want: 0},
		{text: "  ", want: 0},
		{text: "7", want: 7},
		{text: " 12 ", want: 12},
		{text: "+3", want: 3},
		{text: "-5", want: 0},
		{text: "9", max: 3, hasMax: true, want: 3},
		{text: "3", max: 3, hasMax: true, want: 3},
		{text: "abc", fails: true},
		{text: "1.5", fails: true},
		{text: "99999999999999999999999", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text, tt.max, tt.hasMax)
			if tt.fails {
				assert.ErrorIs(t, err, stepper.ErrParseFailure)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStepDuringPendingEditWins(t *testing.T) {
	f := newFixture(t)

	f.view.typeText("9")
	require.True(t, f.parser.Pending())

	require.True(t, f.ctrl.Increment())
	assert.False(t, f.parser.Pending(), "the step supersedes the typed text")
	assert.Equal(t, 0, f.sched.Pending())

	f.sched.Advance(time.Second)
	assert.Equal(t, 1, f.ctrl.Value())
	assert.Equal(t, "1", f.view.text)
	assert.Equal(t, []int{1}, f.changes)
}

func TestStepDuringPostedCommitWins(t *testing.T) {
	var queued []func()
	poster := schedule.PosterFunc(func(fn func()) { queued = append(queued, fn) })
	sched := schedule.NewFake()
	view := &fieldView{}

	late := &lateTarget{}
	p := New(late, sched, poster)
	view.parser = p
	ctrl, err := stepper.New(view)
	require.NoError(t, err)
	late.Target = ctrl

	view.typeText("9")
	sched.Advance(500 * time.Millisecond)
	require.Len(t, queued, 1)

	require.True(t, ctrl.Increment())
	queued[0]()
	assert.Equal(t, 1, ctrl.Value(), "commit posted before the step is dropped")
}
