package systemd

import (
	"errors"
	"testing"

	"homework_status_bot/internal/app"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchdog_States(t *testing.T) {
	log, _ := test.NewNullLogger()
	w := NewWatchdog(log)
	var states []string
	w.notify = func(state string) (bool, error) {
		states = append(states, state)
		return true, nil
	}

	w.Ready()
	w.CycleFinished(app.CycleResult{Err: errors.New("boom")})
	w.Stopping()

	assert.Equal(t, []string{daemon.SdNotifyReady, daemon.SdNotifyWatchdog, daemon.SdNotifyStopping}, states)
}

func TestWatchdog_ErrorIsLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	w := NewWatchdog(log)
	w.notify = func(string) (bool, error) { return false, errors.New("socket gone") }

	w.Ready()

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestWatchdog_NoSocketIsNoop(t *testing.T) {
	t.Setenv("NOTIFY_SOCKET", "")
	log, hook := test.NewNullLogger()

	NewWatchdog(log).Ready()

	assert.Empty(t, hook.AllEntries())
}
