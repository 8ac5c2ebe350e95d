package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Levels(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, Setup("DEBUG", "json").GetLevel())
	assert.Equal(t, zerolog.WarnLevel, Setup("warn", "console").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, Setup("", "").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, Setup("loud", "").GetLevel())
}

func TestSetup_ReplacesSharedLogger(t *testing.T) {
	Setup("error", "")
	assert.Equal(t, zerolog.ErrorLevel, Component("worker").GetLevel())
}
