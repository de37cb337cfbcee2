package options

import (
	"testing"

	"github.com/spf13/cobra"

	"tableflip.dev/bedtime/pkg/planner"
)

func TestPlanOptionsGetMode(t *testing.T) {
	tests := []struct {
		name    string
		opts    PlanOptions
		args    []string
		mode    planner.Mode
		target  string
		wantErr bool
	}{
		{name: "wake", opts: PlanOptions{Wake: "07:00"}, mode: planner.ModeWake, target: "07:00"},
		{name: "sleep", opts: PlanOptions{Sleep: "23:00"}, mode: planner.ModeSleep, target: "23:00"},
		{name: "positional", args: []string{"06:30"}, mode: planner.ModeWake, target: "06:30"},
		{name: "both", opts: PlanOptions{Wake: "07:00", Sleep: "23:00"}, wantErr: true},
		{name: "none", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, target, err := tt.opts.GetMode(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mode != tt.mode || target != tt.target {
				t.Fatalf("got %s %s, want %s %s", mode, target, tt.mode, tt.target)
			}
		})
	}
}

func TestPlanOptionsLatencyOnlyWhenSet(t *testing.T) {
	po := &PlanOptions{}
	cmd := &cobra.Command{Use: "plan"}
	AddPlanArgs(cmd, po)
	if got := po.GetLatency(cmd); got != nil {
		t.Fatalf("latency = %d, want nil", *got)
	}
	if err := cmd.Flags().Set("latency", "0"); err != nil {
		t.Fatal(err)
	}
	if got := po.GetLatency(cmd); got == nil || *got != 0 {
		t.Fatalf("latency = %v, want 0", got)
	}
}

func TestSchedulePatchFromChangedFlags(t *testing.T) {
	so := &ScheduleOptions{}
	cmd := &cobra.Command{Use: "set"}
	AddScheduleArgs(cmd, so)
	if !so.GetPatch(cmd).Empty() {
		t.Fatalf("expected empty patch")
	}
	_ = cmd.Flags().Set("wake", "06:15")
	_ = cmd.Flags().Set("grace", "5")
	p := so.GetPatch(cmd)
	if p.Bedtime != nil || p.SleepLatencyMinutes != nil {
		t.Fatalf("unexpected fields in %+v", p)
	}
	if p.WakeTime == nil || *p.WakeTime != "06:15" || p.GraceMinutes == nil || *p.GraceMinutes != 5 {
		t.Fatalf("patch = %+v", p)
	}
}

func TestLogWindow(t *testing.T) {
	lo := &LogOptions{Window: "3d"}
	d, err := lo.GetWindow()
	if err != nil {
		t.Fatal(err)
	}
	if d.Days() != 3 {
		t.Fatalf("window = %s", d)
	}
	lo.Window = "soon"
	if _, err := lo.GetWindow(); err == nil {
		t.Fatalf("expected error")
	}
}
