//go:build !integration

package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		pretty    bool
		wantLevel zerolog.Level
	}{
		{name: "debug level", level: "debug", wantLevel: zerolog.DebugLevel},
		{name: "info level", level: "info", wantLevel: zerolog.InfoLevel},
		{name: "warn level", level: "warn", wantLevel: zerolog.WarnLevel},
		{name: "error level", level: "error", wantLevel: zerolog.ErrorLevel},
		{name: "unknown level defaults to info", level: "loud", wantLevel: zerolog.InfoLevel},
		{name: "empty level defaults to info", level: "", wantLevel: zerolog.InfoLevel},
		{name: "pretty output keeps the level", level: "debug", pretty: true, wantLevel: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.level, tt.pretty)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
			assert.NotNil(t, Logger())
		})
	}
}

func TestLogger_ReflectsGlobal(t *testing.T) {
	Init("warn", false)

	logger := Logger()
	logger.Info().Msg("suppressed below the global level")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
