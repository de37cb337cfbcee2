package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BEDTIME_CONFIG_PATH", dir)
	t.Setenv("BEDTIME_PATH", filepath.Join(dir, "db"))

	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	root := New()
	want := []string{"plan", "sleep", "wake", "cancel", "status", "schedule", "remind", "log", "tip", "key", "reset", "daemon", "ui", "version"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("missing command %q", name)
		}
	}
	for _, sub := range []string{"show", "set"} {
		if cmd, _, err := root.Find([]string{"schedule", sub}); err != nil || cmd.Name() != sub {
			t.Errorf("missing schedule %s", sub)
		}
	}
}

func TestPlanJSON(t *testing.T) {
	out, err := execute(t, "plan", "--wake", "07:00", "--latency", "0", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Mode        string `json:"mode"`
		Suggestions []struct {
			Time   string `json:"time"`
			Cycles int    `json:"cycles"`
		} `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Mode != "wake" || len(got.Suggestions) != 3 || got.Suggestions[0].Time != "22:00" {
		t.Fatalf("plan = %+v", got)
	}
}

func TestPlanRejectsBothModes(t *testing.T) {
	if _, err := execute(t, "plan", "--wake", "07:00", "--sleep", "23:00"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestScheduleSetThenShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BEDTIME_CONFIG_PATH", dir)
	t.Setenv("BEDTIME_PATH", filepath.Join(dir, "db"))

	run := func(args ...string) string {
		root := New()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	run("schedule", "set", "--bedtime", "23:15", "--json")
	out := run("schedule", "show", "--json")
	var view struct {
		Effective struct {
			Bedtime  string `json:"bedtime"`
			WakeTime string `json:"wakeTime"`
		} `json:"effective"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if view.Effective.Bedtime != "23:15" || view.Effective.WakeTime != "07:00" {
		t.Fatalf("effective = %+v", view.Effective)
	}
}

func TestJSONErrorsAreRendered(t *testing.T) {
	// Reminders start off, so skip fails; --json prints the error instead.
	out, err := execute(t, "remind", "skip", "--json")
	if err != nil {
		t.Fatalf("expected the error to be rendered, got %v", err)
	}
	var got struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Code != "reminders_off" || !strings.Contains(got.Error, "reminders are off") {
		t.Fatalf("error output = %+v", got)
	}
}

func TestRemindRejectsUnknownAction(t *testing.T) {
	_, err := execute(t, "remind", "later")
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Fatalf("err = %v", err)
	}
}

func TestPlanUseSavesSchedule(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BEDTIME_CONFIG_PATH", dir)
	t.Setenv("BEDTIME_PATH", filepath.Join(dir, "db"))

	run := func(args ...string) (string, error) {
		root := New()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		err := root.Execute()
		return out.String(), err
	}

	if _, err := run("plan", "--wake", "07:00", "--use", "9"); err == nil {
		t.Fatalf("expected an out of range error")
	}

	out, err := run("plan", "--wake", "07:00", "--use", "2", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var plan struct {
		Schedule *struct {
			Bedtime string `json:"bedtime"`
		} `json:"schedule"`
	}
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if plan.Schedule == nil || plan.Schedule.Bedtime != "23:15" {
		t.Fatalf("plan schedule = %+v", plan.Schedule)
	}

	out, err = run("schedule", "show", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var view struct {
		Effective struct {
			Bedtime      string `json:"bedtime"`
			WakeTime     string `json:"wakeTime"`
			GraceMinutes int    `json:"graceMinutes"`
		} `json:"effective"`
		Reminders bool `json:"reminders"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if view.Effective.Bedtime != "23:15" || view.Effective.WakeTime != "07:00" || view.Effective.GraceMinutes != 15 {
		t.Fatalf("effective = %+v", view.Effective)
	}
	if !view.Reminders {
		t.Fatalf("expected reminders on")
	}
}
