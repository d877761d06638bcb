package logger

import (
	"bytes"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit_LevelAndFormatter(t *testing.T) {
	Init(&config.AppConfig{LogLevel: "debug", Environment: "production"})
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)

	Init(&config.AppConfig{LogLevel: "nonsense", Environment: "development"})
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
}

func TestNamed_CarriesLoggerField(t *testing.T) {
	Init(&config.AppConfig{LogLevel: "info", Environment: "development"})
	var buf bytes.Buffer
	Log.SetOutput(&buf)

	Named("fetcher").Error("boom")

	out := buf.String()
	assert.Contains(t, out, "logger=fetcher")
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, "msg=boom")
}
