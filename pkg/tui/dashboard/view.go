package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/bedtime/pkg/glyph"
	"tableflip.dev/bedtime/pkg/planner"
	"tableflip.dev/bedtime/pkg/timeutil"
)

const (
	barWidth   = 20
	barMaxHour = 10.0
	minWidth   = 40
)

// View renders the dashboard.
func (m *Model) View() string {
	if !m.loaded {
		if m.err != nil {
			return m.theme.Footer.Error.Render("error: "+m.err.Error()) + "\n"
		}
		return "Loading…\n"
	}

	width := m.width
	if width < minWidth {
		width = 72
	}
	inner := width - 4

	sections := []string{
		m.renderHeader(),
		m.panel("Tonight", m.renderStatus(), inner),
		m.panel(m.plannerTitle(), m.renderPlanner(), inner),
		m.panel("Last night", m.renderLast(inner-2), inner),
		m.panel("This week", m.renderWeek(), inner),
	}
	if m.tip != "" {
		sections = append(sections, m.panel("Tip", wordwrap.String(m.tip, inner-2), inner))
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) panel(title, body string, width int) string {
	content := m.theme.Panel.Title.Render(title) + "\n" + m.theme.Panel.Body.Render(body)
	return m.theme.Panel.Frame.Width(width).Render(content)
}

func (m *Model) renderHeader() string {
	return m.theme.Header.Render(fmt.Sprintf("%s bedtime", glyph.Asleep)) + "  " +
		m.theme.Chart.Muted.Render(m.status.Now.Format("Mon Jan 2 15:04"))
}

func (m *Model) renderStatus() string {
	s := m.status
	var lines []string
	lines = append(lines, fmt.Sprintf("Bedtime %s  Wake %s  Latency %d min",
		s.Schedule.Bedtime, s.Schedule.WakeTime, s.Schedule.SleepLatencyMinutes))

	switch {
	case s.Sleeping && s.SleepingSince != nil:
		lines = append(lines, m.theme.Status.Asleep.Render(
			fmt.Sprintf("%s Asleep since %s", glyph.Asleep, s.SleepingSince.Format("15:04"))))
	case s.SkipUntil != nil:
		lines = append(lines, m.theme.Status.Calm.Render(
			fmt.Sprintf("%s Skipped until %s", glyph.Skipped, s.SkipUntil.Format("15:04"))))
	case s.Reminder.IsDue:
		lines = append(lines, m.theme.Status.Due.Render(
			fmt.Sprintf("%s Time for bed %s", glyph.Reminder, s.Reminder.BadgeText)))
	case !s.Reminders:
		lines = append(lines, m.theme.Status.Calm.Render("Reminders are off."))
	case s.NextReminder != nil:
		lines = append(lines, m.theme.Status.Calm.Render(
			fmt.Sprintf("%s Next reminder %s", glyph.Reminder, s.NextReminder.Format("Mon 15:04"))))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) plannerTitle() string {
	target := timeutil.ToClockString(m.target)
	if m.mode == planner.ModeSleep {
		return "Going to sleep at " + target
	}
	return "Waking up at " + target
}

func (m *Model) renderPlanner() string {
	if len(m.suggestions) == 0 {
		return m.theme.Chart.Muted.Render("No suggestions.")
	}
	label := "Go to bed at"
	if m.mode == planner.ModeSleep {
		label = "Wake up at"
	}
	lines := []string{m.theme.Chart.Muted.Render(label)}
	for _, s := range m.suggestions {
		row := fmt.Sprintf("  %s  %d cycles  %s", s.Time, s.Cycles, s.Duration)
		if s.Cycles == 5 || s.Cycles == 6 {
			row = m.theme.Chart.Best.Render(row + "  ★")
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderLast(width int) string {
	last := m.status.Last
	if last == nil {
		return m.theme.Chart.Muted.Render("Nothing logged yet.")
	}
	line := fmt.Sprintf("%s %s → %s %s  %s  %s cycles",
		glyph.Asleep, last.SleepAt, glyph.Awake, last.WakeAt, last.Duration, last.Cycles)
	if last.Mood != nil {
		if mark, ok := glyph.ForMood(string(*last.Mood)); ok {
			line += "  " + mark.String()
		}
	}
	if msg := last.Insight.Message(); msg != "" {
		line += "\n" + m.theme.Chart.Insight.Render(wordwrap.String(msg, width))
	}
	return line
}

func (m *Model) renderWeek() string {
	days := m.report.Week
	if len(days) == 0 {
		return m.theme.Chart.Muted.Render("No nights this week.")
	}
	lines := make([]string, 0, len(days)+1)
	for _, d := range days {
		if !d.Logged() {
			lines = append(lines, fmt.Sprintf("%-3s %s", d.Label,
				m.theme.Chart.Missing.Render(glyph.Missing.String())))
			continue
		}
		n := int(math.Round(d.Hours / barMaxHour * barWidth))
		if n < 1 {
			n = 1
		}
		if n > barWidth {
			n = barWidth
		}
		bar := m.theme.Chart.Bar.Render(strings.Repeat(glyph.Logged.String(), n))
		lines = append(lines, fmt.Sprintf("%-3s %s %.1fh", d.Label, bar, d.Hours))
	}
	if m.report.AverageHours > 0 {
		lines = append(lines, m.theme.Chart.Muted.Render(fmt.Sprintf("Average %.1fh", m.report.AverageHours)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(m.theme.Footer.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.message != "":
		b.WriteString(m.theme.Footer.Status.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Footer.Help.Render(m.help.View(m.keys)))
	return b.String()
}
