package printers

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/glyph"
	"tableflip.dev/bedtime/pkg/planner"
	"tableflip.dev/bedtime/pkg/schedule"
	"tableflip.dev/bedtime/pkg/session"
	"tableflip.dev/bedtime/pkg/summary"
)

type PrettyPrint struct {
	Out io.Writer
}

const tipWidth = 60

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Suggestions prints the planner's ranked times, best first.
func (pp *PrettyPrint) Suggestions(mode planner.Mode, target string, s []planner.Suggestion) {
	switch mode {
	case planner.ModeSleep:
		pp.Title(fmt.Sprintf("Falling asleep at %s? Wake up at", target))
	default:
		pp.Title(fmt.Sprintf("To wake up at %s, go to bed at", target))
	}
	if len(s) == 0 {
		pp.none()
		return
	}
	best := color.New(color.Bold, color.FgCyan)
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for i, v := range s {
		t := v.Time
		if i == 0 {
			t = best.Sprint(t)
		}
		tbl.AddRow(faint.Sprintf("%d.", i+1), t, fmt.Sprintf("%d cycles", v.Cycles), faint.Sprint(v.Duration))
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// PlanUsed confirms a suggestion was saved as the schedule.
func (pp *PrettyPrint) PlanUsed(s schedule.Schedule) {
	_, _ = fmt.Fprintf(pp.out(), "%s Bedtime set to %s, wake at %s. Reminders on.\n", glyph.Reminder, s.Bedtime, s.WakeTime)
	pp.NewLine()
}

// Summary prints one night with its insight.
func (pp *PrettyPrint) Summary(s *summary.Summary) {
	if s == nil {
		pp.Title("Last night")
		pp.none()
		return
	}
	pp.Title(fmt.Sprintf("Night of %s", s.Date))
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Asleep.String(), s.SleepAt, glyph.Awake.String(), s.WakeAt)
	tbl.AddRow("", faint.Sprint("slept"), "", s.Duration)
	tbl.AddRow("", faint.Sprint("cycles"), "", s.Cycles)
	if s.Mood != nil {
		if m, ok := glyph.ForMood(string(*s.Mood)); ok {
			tbl.AddRow("", faint.Sprint("mood"), "", fmt.Sprintf("%s %s", m, *s.Mood))
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	if msg := s.Insight.Message(); msg != "" {
		i := color.New(color.Italic, color.FgHiYellow)
		_, _ = i.Fprintln(pp.out(), indent.String(wordwrap.String(msg, tipWidth), 2))
	}
	pp.NewLine()
}

// Week prints the seven-day chart, one bar per day, one block per hour.
func (pp *PrettyPrint) Week(days []session.Day, average float64) {
	pp.Title("Last 7 days")
	bar := color.New(color.FgCyan)
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = " "
	for _, d := range days {
		if !d.Logged() {
			tbl.AddRow(d.Label, faint.Sprint(glyph.Missing.String()), "")
			continue
		}
		blocks := int(math.Round(d.Hours))
		if blocks < 1 {
			blocks = 1
		}
		tbl.AddRow(d.Label, bar.Sprint(strings.Repeat(glyph.Logged.String(), blocks)), faint.Sprintf("%.1fh", d.Hours))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	if average > 0 {
		_, _ = faint.Fprintf(pp.out(), "average %.1fh\n", average)
	}
	pp.NewLine()
}

// Nights prints logged nights as a table, oldest first.
func (pp *PrettyPrint) Nights(nights []summary.Summary) {
	pp.Title(fmt.Sprintf("Sleep log - %d nights", len(nights)))
	if len(nights) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint(glyph.Asleep.String()), bold.Sprint(glyph.Awake.String()), bold.Sprint("Slept"), bold.Sprint("Cycles"), bold.Sprint("Mood"))
	for _, n := range nights {
		mood := ""
		if n.Mood != nil {
			if m, ok := glyph.ForMood(string(*n.Mood)); ok {
				mood = m.String()
			}
		}
		tbl.AddRow(n.Date, n.SleepAt, n.WakeAt, n.Duration, n.Cycles, mood)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Schedule prints the recurring schedule, any override and what applies today.
func (pp *PrettyPrint) Schedule(v app.ScheduleView) {
	pp.Title("Schedule")
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(faint.Sprint("bedtime"), v.Effective.Bedtime, usually(v.Effective.Bedtime, v.Default.Bedtime))
	tbl.AddRow(faint.Sprint("wake"), v.Effective.WakeTime, usually(v.Effective.WakeTime, v.Default.WakeTime))
	tbl.AddRow(faint.Sprint("latency"), fmt.Sprintf("%d min", v.Effective.SleepLatencyMinutes), "")
	tbl.AddRow(faint.Sprint("grace"), fmt.Sprintf("%d min", v.Effective.GraceMinutes), "")
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	if v.Override != nil && !v.Override.Empty() {
		o := v.Override.Apply(v.Default)
		_, _ = faint.Fprintf(pp.out(), "override for %s: bedtime %s, wake %s\n", v.Override.Date, o.Bedtime, o.WakeTime)
	}
	pp.reminders(v.Reminders, v.NextReminder, nil)
	pp.NewLine()
}

func usually(effective, def string) string {
	if effective == def {
		return ""
	}
	return color.New(color.Faint).Sprintf("(today only, usually %s)", def)
}

func (pp *PrettyPrint) reminders(enabled bool, next, skipUntil *time.Time) {
	faint := color.New(color.Faint)
	switch {
	case !enabled:
		_, _ = faint.Fprintln(pp.out(), "reminders off")
	case skipUntil != nil:
		_, _ = fmt.Fprintf(pp.out(), "%s skipped until %s\n", glyph.Skipped, skipUntil.Format("15:04"))
	case next != nil:
		_, _ = fmt.Fprintf(pp.out(), "%s next reminder %s\n", glyph.Reminder, next.Format("Mon 15:04"))
	}
}

// Status prints where the user stands right now.
func (pp *PrettyPrint) Status(s app.StatusResult) {
	pp.Title(fmt.Sprintf("%s  bedtime %s  wake %s", s.Now.Format("Mon 15:04"), s.Schedule.Bedtime, s.Schedule.WakeTime))
	switch {
	case s.Sleeping && s.SleepingSince != nil:
		asleep := int(s.Now.Sub(*s.SleepingSince) / time.Minute)
		_, _ = fmt.Fprintf(pp.out(), "%s asleep since %s (%dh %dm)\n", glyph.Asleep, s.SleepingSince.Format("15:04"), asleep/60, asleep%60)
	case s.Reminder.IsDue:
		due := color.New(color.Bold, color.FgHiCyan)
		_, _ = due.Fprintf(pp.out(), "%s past bedtime by %d min\n", s.Reminder.BadgeText, s.Reminder.MinutesPast)
	}
	if !s.Sleeping {
		pp.reminders(s.Reminders, s.NextReminder, s.SkipUntil)
	}
	pp.NewLine()
	if s.Last != nil {
		pp.Summary(s.Last)
	}
}

// Updated confirms a schedule change.
func (pp *PrettyPrint) Updated(s schedule.Schedule, scope schedule.Scope) {
	when := "from now on"
	if scope == schedule.ScopeTomorrow {
		when = "tomorrow only"
	}
	_, _ = fmt.Fprintf(pp.out(), "bedtime %s, wake %s %s\n", s.Bedtime, s.WakeTime, color.New(color.Faint).Sprint(when))
}

// Tip prints a tip wrapped to a comfortable width.
func (pp *PrettyPrint) Tip(tip string) {
	if tip == "" {
		return
	}
	c := color.New(color.Italic)
	_, _ = c.Fprintln(pp.out(), indent.String(wordwrap.String(tip, tipWidth), 2))
	pp.NewLine()
}
