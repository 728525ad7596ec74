package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/progressview/internal/config"
	"github.com/muurk/progressview/internal/debounce"
	"github.com/muurk/progressview/internal/logging"
	"github.com/muurk/progressview/internal/repeat"
	"github.com/muurk/progressview/internal/schedule"
	"github.com/muurk/progressview/internal/stepper"
)

// rowLine is the line of the stepper row in View, counted from zero.
const rowLine = 2

// zone identifies a clickable part of the stepper row
type zone int

const (
	zoneNone zone = iota
	zoneDecrement
	zoneField
	zoneMaximum
	zoneIncrement
)

// Options configures a stepper Model.
type Options struct {
	// Settings supplies the initial maximum, label visibility and timing.
	// Nil means config.NewSettings().
	Settings *config.Settings
	// Scheduler runs the repeat and debounce timers. Nil means schedule.Real.
	Scheduler schedule.Scheduler
	// Poster hands timer callbacks to Update. Nil means a Loop owned by
	// the model, which is the only choice that works under tea.Program.
	Poster schedule.Poster
	// Restore, when set, is applied after construction.
	Restore *stepper.SavedState
	// OnChange is called on every committed progress change.
	OnChange stepper.Listener
	// Width is the initial terminal width.
	Width int
}

// Model is the Bubble Tea model of the stepper: decrement button, numeric
// field, optional "/ max" label and increment button.
//
// Model is the controller's View. It is used through a pointer so the
// controller, repeat handlers and parser all see the same field and flags.
type Model struct {
	ctrl   *stepper.Controller
	inc    *repeat.Handler
	dec    *repeat.Handler
	parser *debounce.Parser
	loop   *Loop

	input textinput.Model
	meter Meter
	keys  keyMap
	help  help.Model

	maxText    string
	maxVisible bool
	incEnabled bool
	decEnabled bool
	held       *repeat.Handler // handler of the button under a mouse press

	onChange stepper.Listener
	status   string
	failed   bool
	width    int
	quitting bool
}

// NewModel builds the stepper and its controller.
func NewModel(opts Options) (*Model, error) {
	settings := opts.Settings
	if settings == nil {
		settings = config.NewSettings()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = schedule.Real{}
	}
	width := opts.Width
	if width <= 0 {
		width = MinTerminalWidth
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "0"
	input.CharLimit = FieldWidth
	input.Width = FieldWidth
	input.Focus()

	h := help.New()
	h.Width = width

	m := &Model{
		input:    input,
		meter:    NewMeter(width),
		keys:     defaultKeyMap(),
		help:     h,
		width:    width,
		onChange: opts.OnChange,
	}

	poster := opts.Poster
	if poster == nil {
		m.loop = NewLoop(16)
		poster = m.loop
	}

	var ctrlOpts []stepper.Option
	if max, ok := settings.InitialMax(); ok {
		ctrlOpts = append(ctrlOpts, stepper.WithMaximum(max))
	}
	ctrlOpts = append(ctrlOpts, stepper.WithShowMaximum(settings.ShowMax()))

	ctrl, err := stepper.New(m, ctrlOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create stepper: %w", err)
	}
	m.ctrl = ctrl

	m.parser = debounce.New(ctrl, sched, poster,
		debounce.WithDelay(settings.DebounceDelay()),
		debounce.WithFailureHandler(m.onParseFailure),
	)
	// the field already shows the initial value
	m.parser.Programmatic(func() { m.parser.TextChanged(m.input.Value()) })

	cfg := settings.RepeatConfig()
	m.inc = repeat.New(repeat.Up, ctrl, cfg, sched, poster)
	m.dec = repeat.New(repeat.Down, ctrl, cfg, sched, poster)

	ctrl.SetListener(m.changed)

	if opts.Restore != nil {
		if err := ctrl.Restore(*opts.Restore); err != nil {
			logging.Warn("Ignoring saved state", zap.Error(err))
			m.setStatus("saved state ignored: "+err.Error(), true)
		} else {
			logging.Info("Restored progress",
				zap.Int("progress", opts.Restore.Progress),
				zap.Int("max", opts.Restore.Max),
			)
		}
	}

	return m, nil
}

// Controller returns the stepper controller behind the model.
func (m *Model) Controller() *stepper.Controller {
	return m.ctrl
}

// Close stops every timer. The model ignores input afterwards.
func (m *Model) Close() {
	m.inc.Close()
	m.dec.Close()
	m.parser.Close()
	if m.loop != nil {
		m.loop.Close()
	}
}

// ShowValue implements stepper.View
func (m *Model) ShowValue(text string) {
	if m.parser == nil {
		m.setField(text)
		return
	}
	m.parser.Programmatic(func() { m.setField(text) })
}

// ShowMaximum implements stepper.View
func (m *Model) ShowMaximum(text string) {
	m.maxText = text
}

// SetMaximumVisible implements stepper.View
func (m *Model) SetMaximumVisible(visible bool) {
	m.maxVisible = visible
}

// SetDecrementEnabled implements stepper.View
func (m *Model) SetDecrementEnabled(enabled bool) {
	m.decEnabled = enabled
	if !enabled && m.dec != nil {
		m.cancel(m.dec)
	}
}

// SetIncrementEnabled implements stepper.View
func (m *Model) SetIncrementEnabled(enabled bool) {
	m.incEnabled = enabled
	if !enabled && m.inc != nil {
		m.cancel(m.inc)
	}
}

// setField writes the field and reports the change like a keystroke would.
func (m *Model) setField(text string) {
	before := m.input.Value()
	m.input.SetValue(text)
	m.input.CursorEnd()
	if m.parser != nil && text != before {
		m.parser.TextChanged(text)
	}
}

func (m *Model) changed(progress int) {
	m.setStatus("progress "+strconv.Itoa(progress), false)
	if m.onChange != nil {
		m.onChange(progress)
	}
}

func (m *Model) onParseFailure(text string, err error) {
	msg := err.Error()
	var perr *stepper.ParseError
	if errors.As(err, &perr) {
		msg = fmt.Sprintf("%q is not a number", perr.Text)
	}
	m.setStatus(msg, true)
	m.ShowValue(strconv.Itoa(m.ctrl.Value()))
}

func (m *Model) setStatus(text string, failed bool) {
	m.status = text
	m.failed = failed
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.loop != nil {
		cmds = append(cmds, m.loop.Wait())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postedMsg:
		msg.fn()
		if m.loop != nil {
			return m, m.loop.Wait()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.meter.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.parser.Flush()
		m.Close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Increment):
		m.ctrl.Increment()
		return m, nil

	case key.Matches(msg, m.keys.Decrement):
		m.ctrl.Decrement()
		return m, nil

	case key.Matches(msg, m.keys.JumpUp):
		m.ctrl.StepBy(10)
		return m, nil

	case key.Matches(msg, m.keys.JumpDown):
		m.ctrl.StepBy(-10)
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		m.parser.Flush()
		return m, nil

	case key.Matches(msg, m.keys.ToggleMax):
		m.ctrl.SetShowMaximum(!m.ctrl.ShowMaximum())
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.parser.TextChanged(after)
	}
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	target := m.zoneAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.releaseHeld()
			switch target {
			case zoneDecrement:
				m.press(m.dec)
			case zoneIncrement:
				m.press(m.inc)
			}
		case tea.MouseButtonWheelUp:
			if target != zoneNone {
				m.ctrl.Increment()
			}
		case tea.MouseButtonWheelDown:
			if target != zoneNone {
				m.ctrl.Decrement()
			}
		}

	case tea.MouseActionRelease:
		m.releaseHeld()

	case tea.MouseActionMotion:
		// dragging off the held button cancels the press
		if m.held != nil && target != zoneOf(m.held.Direction()) {
			m.cancel(m.held)
		}
	}
}

// press starts h and remembers it as held unless the press ended at once
// on a boundary.
func (m *Model) press(h *repeat.Handler) {
	if h.Press() && h.State() != repeat.Idle {
		m.held = h
	}
}

func (m *Model) releaseHeld() {
	if m.held != nil {
		m.held.Release()
		m.held = nil
	}
}

func (m *Model) cancel(h *repeat.Handler) {
	h.Cancel()
	if m.held == h {
		m.held = nil
	}
}

func zoneOf(dir repeat.Direction) zone {
	if dir == repeat.Down {
		return zoneDecrement
	}
	return zoneIncrement
}

func (m *Model) handler(dir repeat.Direction) *repeat.Handler {
	if dir == repeat.Down {
		return m.dec
	}
	return m.inc
}

// rowParts returns the rendered row segments with their zones, left to right.
func (m *Model) rowParts() ([]string, []zone) {
	parts := []string{m.renderButton(repeat.Down), FieldStyle.Render(m.input.View())}
	zones := []zone{zoneDecrement, zoneField}

	if m.maxVisible && m.maxText != "" {
		parts = append(parts, MaxLabelStyle.Render(m.maxText))
		zones = append(zones, zoneMaximum)
	}

	parts = append(parts, m.renderButton(repeat.Up))
	zones = append(zones, zoneIncrement)
	return parts, zones
}

// zoneAt maps a mouse position to the part of the row under it.
func (m *Model) zoneAt(x, y int) zone {
	if y != rowLine || x < 0 {
		return zoneNone
	}

	parts, zones := m.rowParts()
	start := 0
	for i, part := range parts {
		end := start + lipgloss.Width(part)
		if x >= start && x < end {
			return zones[i]
		}
		start = end + lipgloss.Width(buttonSeparator)
	}
	return zoneNone
}

func (m *Model) renderButton(dir repeat.Direction) string {
	glyph, enabled := IncrementGlyph, m.incEnabled
	if dir == repeat.Down {
		glyph, enabled = DecrementGlyph, m.decEnabled
	}

	switch {
	case !enabled:
		return ButtonDisabledStyle.Render(glyph)
	case m.handler(dir).State() != repeat.Idle:
		return ButtonPressedStyle.Render(glyph)
	default:
		return ButtonStyle.Render(glyph)
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("Progress"))
	b.WriteString("\n\n")

	parts, _ := m.rowParts()
	b.WriteString(strings.Join(parts, buttonSeparator))
	b.WriteString("\n\n")

	if max, ok := m.ctrl.Maximum(); ok {
		b.WriteString(m.meter.View(m.ctrl.Value(), max))
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.failed {
			b.WriteString(ErrorMessageStyle.Render(m.status))
		} else {
			b.WriteString(StatusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
