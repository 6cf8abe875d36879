package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewSetsGlobalLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			New(Config{Level: tt.level})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestNewReturnsChainableLogger(t *testing.T) {
	// Level methods have pointer receivers, so the logger must be held
	// in a variable before chaining events on it.
	l := New(Config{Level: "info"})
	l.Info().Str("k", "v").Msg("boot")

	child := l.With().Str("component", "test").Logger()
	child.Debug().Msg("suppressed at info level")
}
