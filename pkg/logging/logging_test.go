package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}
		})
	}
}

func TestLogDuration(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	defer func() { log.Logger = prev }()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	LogDuration(time.Now().Add(-10*time.Millisecond), "evaluate")

	if !strings.Contains(buf.String(), `"operation":"evaluate"`) {
		t.Errorf("duration log missing operation field: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"duration"`) {
		t.Errorf("duration log missing duration field: %s", buf.String())
	}
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("test.component")
	// Must be usable without further setup.
	logger.Debug().Msg("component logger works")
}
