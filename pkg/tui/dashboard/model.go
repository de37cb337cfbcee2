// Package dashboard is the interactive terminal view of tonight: reminder
// status, the cycle planner, last night and the week.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/planner"
	"tableflip.dev/bedtime/pkg/session"
	"tableflip.dev/bedtime/pkg/store"
	"tableflip.dev/bedtime/pkg/timeutil"
	"tableflip.dev/bedtime/pkg/tui/theme"
)

const (
	refreshEvery = time.Minute
	targetStep   = 15
)

// Model contains dashboard state.
type Model struct {
	svc   *app.Service
	ctx   context.Context
	keys  keyMap
	help  help.Model
	theme theme.Theme

	width  int
	height int

	loaded bool
	status app.StatusResult
	report app.ReportResult

	mode        planner.Mode
	target      int
	targetSet   bool
	suggestions []planner.Suggestion

	tip          string
	awaitingMood bool
	message      string
	err          error

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New creates a dashboard backed by svc.
func New(ctx context.Context, svc *app.Service) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Model{
		svc:   svc,
		ctx:   ctx,
		keys:  defaultKeys(),
		help:  help.New(),
		theme: theme.Default(),
		mode:  planner.ModeWake,
	}
}

type snapshotMsg struct {
	status app.StatusResult
	report app.ReportResult
	err    error
}

type tickMsg time.Time

type actionMsg struct {
	note string
	err  error
}

type tipMsg struct {
	tip string
	err error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Init loads the first snapshot, starts the minute tick and watches the store.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), tick(), startWatchCmd(m.ctx, m.svc))
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) load() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		status, err := svc.Status(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		report, err := svc.Report(ctx, timeutil.DefaultWindow)
		return snapshotMsg{status: status, report: report, err: err}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loaded = true
		m.status, m.report = msg.status, msg.report
		if !m.targetSet {
			m.resetTarget()
		}
		m.plan()
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.load(), tick())

	case actionMsg:
		m.err = msg.err
		if msg.err == nil {
			m.message = msg.note
		}
		return m, m.load()

	case tipMsg:
		m.err = msg.err
		if msg.err == nil {
			m.tip = msg.tip
		}
		return m, nil

	case watchStartedMsg:
		if msg.err != nil {
			m.message = "not watching for changes: " + msg.err.Error()
			return m, nil
		}
		m.stopWatch()
		m.watchCh, m.watchCancel = msg.ch, msg.cancel
		return m, m.waitForWatch()

	case watchEventMsg:
		return m, tea.Batch(m.load(), m.waitForWatch())

	case watchStoppedMsg:
		m.stopWatch()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.awaitingMood {
		k := msg.String()
		switch {
		case k == "enter":
			m.awaitingMood = false
			return m.wake(nil)
		case k == "esc":
			m.awaitingMood = false
			m.message = ""
			return nil
		case moodKeys[k] != "":
			m.awaitingMood = false
			mood, err := session.ParseMood(moodKeys[k])
			if err != nil {
				m.err = err
				return nil
			}
			return m.wake(mood)
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopWatch()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Sleep):
		return m.do(func(ctx context.Context) (string, error) {
			at, err := m.svc.Sleep(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Good night. Asleep from %s.", at.Format("15:04")), nil
		})
	case key.Matches(msg, m.keys.Wake):
		if !m.status.Sleeping {
			m.message = "No sleep session is open."
			return nil
		}
		m.awaitingMood = true
		m.message = "How do you feel? 1 refreshed  2 okay  3 tired  enter skip"
	case key.Matches(msg, m.keys.Skip):
		return m.do(func(ctx context.Context) (string, error) {
			st, err := m.svc.Skip(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Reminder skipped until %s.", st.SkipUntil.Format("15:04")), nil
		})
	case key.Matches(msg, m.keys.Reminders):
		enable := !m.status.Reminders
		return m.do(func(ctx context.Context) (string, error) {
			if _, err := m.svc.SetReminders(ctx, enable); err != nil {
				return "", err
			}
			if enable {
				return "Reminders on.", nil
			}
			return "Reminders off.", nil
		})
	case key.Matches(msg, m.keys.Mode):
		if m.mode == planner.ModeWake {
			m.mode = planner.ModeSleep
		} else {
			m.mode = planner.ModeWake
		}
		m.resetTarget()
		m.plan()
	case key.Matches(msg, m.keys.Earlier):
		m.target = timeutil.Normalize(m.target - targetStep)
		m.plan()
	case key.Matches(msg, m.keys.Later):
		m.target = timeutil.Normalize(m.target + targetStep)
		m.plan()
	case key.Matches(msg, m.keys.Tip):
		svc, ctx := m.svc, m.ctx
		return func() tea.Msg {
			tip, ok, err := svc.Tip(ctx)
			if err == nil && !ok {
				tip = svc.Tips().Any()
			}
			return tipMsg{tip: tip, err: err}
		}
	}
	return nil
}

func (m *Model) wake(mood *session.Mood) tea.Cmd {
	return m.do(func(ctx context.Context) (string, error) {
		sum, err := m.svc.Wake(ctx, mood)
		if err != nil {
			return "", err
		}
		if sum == nil {
			return "No sleep session is open.", nil
		}
		return fmt.Sprintf("Good morning. You slept %s.", sum.Duration), nil
	})
}

func (m *Model) do(fn func(ctx context.Context) (string, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		note, err := fn(ctx)
		return actionMsg{note: note, err: err}
	}
}

// resetTarget points the planner at the scheduled wake time or bedtime.
func (m *Model) resetTarget() {
	if !m.loaded {
		return
	}
	hhmm := m.status.Schedule.WakeTime
	if m.mode == planner.ModeSleep {
		hhmm = m.status.Schedule.Bedtime
	}
	if mins, err := timeutil.ToMinutes(hhmm); err == nil {
		m.target = mins
		m.targetSet = true
	}
}

func (m *Model) plan() {
	if !m.targetSet {
		return
	}
	s, err := planner.Suggest(m.mode, timeutil.ToClockString(m.target), m.status.Schedule.SleepLatencyMinutes)
	if err != nil {
		m.err = err
		return
	}
	m.suggestions = s
}

// Run launches the dashboard and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service) error {
	m := New(ctx, svc)
	defer m.stopWatch()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
