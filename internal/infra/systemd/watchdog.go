// Package systemd reports service state to systemd when running under a
// Type=notify unit. Outside systemd every call is a no-op.
package systemd

import (
	"homework_status_bot/internal/app"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/sirupsen/logrus"
)

type Watchdog struct {
	logger logrus.FieldLogger
	notify func(state string) (bool, error)
}

func NewWatchdog(logger logrus.FieldLogger) *Watchdog {
	return &Watchdog{
		logger: logger,
		notify: func(state string) (bool, error) { return daemon.SdNotify(false, state) },
	}
}

func (w *Watchdog) Ready()    { w.send(daemon.SdNotifyReady) }
func (w *Watchdog) Stopping() { w.send(daemon.SdNotifyStopping) }

// CycleFinished pings the watchdog after every cycle, failed or not:
// a failed cycle still proves the loop is alive.
func (w *Watchdog) CycleFinished(app.CycleResult) {
	w.send(daemon.SdNotifyWatchdog)
}

func (w *Watchdog) send(state string) {
	sent, err := w.notify(state)
	if err != nil {
		w.logger.WithError(err).Warnf("sd_notify %q failed", state)
		return
	}
	if sent {
		w.logger.Debugf("sd_notify %q sent", state)
	}
}
