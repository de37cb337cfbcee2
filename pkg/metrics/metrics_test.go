package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func TestObserveCountsEvents(t *testing.T) {
	m := New(nil)
	m.Observe("armed")
	m.Observe("armed")
	m.Observe("fired")
	if got := counterValue(t, m.ReminderEvents.WithLabelValues("armed")); got != 2 {
		t.Fatalf("armed = %v", got)
	}
	m.StoreChanged("")
	if got := counterValue(t, m.StoreChanges.WithLabelValues("all")); got != 1 {
		t.Fatalf("store changes = %v", got)
	}
}

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var out dto.Metric
	if err := c.Write(&out); err != nil {
		t.Fatal(err)
	}
	return out.GetCounter().GetValue()
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.Observe("armed")
	m.AlarmFired("bedtimeReminder")
	m.StoreChanged("schedule")
	m.SetMinutesPast(3)
}

func TestHandler(t *testing.T) {
	m := New(nil)
	m.AlarmFired("bedtimeReminder")
	m.SetMinutesPast(12)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`bedtime_alarms_fired_total{alarm="bedtimeReminder"} 1`,
		"bedtime_minutes_past_bedtime 12",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
}
