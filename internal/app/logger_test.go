//go:build !integration

package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logPretty string
		wantLevel zerolog.Level
	}{
		{name: "defaults to info", wantLevel: zerolog.InfoLevel},
		{name: "debug from env", logLevel: "debug", wantLevel: zerolog.DebugLevel},
		{name: "warn with pretty output", logLevel: "warn", logPretty: "true", wantLevel: zerolog.WarnLevel},
		{name: "error with pretty disabled", logLevel: "error", logPretty: "false", wantLevel: zerolog.ErrorLevel},
		{name: "garbage level falls back to info", logLevel: "shout", wantLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			if tt.logPretty != "" {
				t.Setenv("LOG_PRETTY", tt.logPretty)
			}

			InitializeLogger()

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}
