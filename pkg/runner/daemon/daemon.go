// Package daemon runs the bedtime reminder in the foreground: it keeps the
// daily alarm armed, shows notifications and refreshes the badge once a
// minute until interrupted.
package daemon

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tableflip.dev/bedtime/pkg/alarm"
	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/logging"
	"tableflip.dev/bedtime/pkg/metrics"
	"tableflip.dev/bedtime/pkg/reminder"
	"tableflip.dev/bedtime/pkg/terminal"
)

// BadgeSpec is how often the badge is re-evaluated.
const BadgeSpec = "@every 1m"

type Daemon struct {
	Service     *app.Service
	Logger      *zap.Logger
	MetricsAddr string

	// Clock is created when nil. Do closes it on return.
	Clock *alarm.Clock
	// AssumeActive treats the user as present even without a TTY.
	AssumeActive bool

	In  io.Reader
	Out io.Writer
}

func (d *Daemon) Do(ctx context.Context) error {
	if d.Service == nil || d.Service.Store == nil {
		return errors.New("daemon: no service")
	}
	log := logging.OrNop(d.Logger)
	now := d.Service.Now
	if now == nil {
		now = time.Now
	}
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	in := d.In
	if in == nil {
		in = os.Stdin
	}

	m := metrics.New(prometheus.NewRegistry())
	clock := d.Clock
	if clock == nil {
		clock = alarm.New(alarm.WithLogger(log.Named("alarm")), alarm.WithNow(d.Service.Now))
	}
	defer clock.Close()

	activity := terminal.Activity{Fd: os.Stdin.Fd(), AssumeActive: d.AssumeActive}
	notifier := &terminal.Notifier{
		Out:         out,
		In:          in,
		Interactive: activity.Active(ctx),
		Now:         d.Service.Now,
	}
	sched := &reminder.Scheduler{
		Store:    d.Service.Store,
		Sessions: d.Service.Sessions(),
		Alarms:   clock,
		Notifier: notifier,
		Badge:    terminal.NewBadge(out),
		Activity: activity,
		Observer: m,
		Logger:   log.Named("scheduler"),
		Now:      d.Service.Now,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes, err := d.Service.Watch(ctx)
	if err != nil {
		return err
	}

	ticks := make(chan struct{}, 1)
	c := cron.New()
	if _, err := c.AddFunc(BadgeSpec, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	if d.MetricsAddr != "" {
		srv := serveMetrics(d.MetricsAddr, m, log)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := sched.Resync(ctx); err != nil {
		log.Error("initial schedule", zap.Error(err))
	}
	if err := sched.HandleAlarm(ctx, reminder.AlarmBadge); err != nil {
		log.Error("initial badge", zap.Error(err))
	}
	log.Info("bedtime daemon started")

	for {
		select {
		case <-ctx.Done():
			log.Info("bedtime daemon stopped")
			return nil

		case name := <-clock.Fired():
			m.AlarmFired(name)
			if err := sched.HandleAlarm(ctx, name); err != nil {
				log.Error("alarm", zap.String("name", name), zap.Error(err))
			}

		case <-ticks:
			tick(ctx, clock, sched, m, log, now())

		case ev, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("daemon: store watch stopped")
			}
			m.StoreChanged(ev.Group())
			log.Debug("store changed", zap.String("key", ev.Key))
			if err := sched.Resync(ctx); err != nil {
				log.Error("resync", zap.Error(err))
			}

		case idx := <-notifier.Actions():
			if err := sched.HandleAction(ctx, idx); err != nil {
				log.Error("action", zap.Int("index", idx), zap.Error(err))
			}
		}
	}
}

// tick runs once a minute. It first handles triggers the wall clock has
// already passed, then refreshes the badge.
func tick(ctx context.Context, clock *alarm.Clock, sched *reminder.Scheduler, m *metrics.Metrics, log *zap.Logger, now time.Time) {
	for _, name := range clock.FireDue(now) {
		log.Info("alarm overdue", zap.String("name", name))
		m.AlarmFired(name)
		if err := sched.HandleAlarm(ctx, name); err != nil {
			log.Error("alarm", zap.String("name", name), zap.Error(err))
		}
	}
	if err := sched.HandleAlarm(ctx, reminder.AlarmBadge); err != nil {
		log.Error("badge", zap.Error(err))
	}
	if st, err := sched.Status(ctx); err == nil {
		m.SetMinutesPast(st.MinutesPast)
	}
}

func serveMetrics(addr string, m *metrics.Metrics, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", zap.Error(err))
		}
	}()
	return srv
}
