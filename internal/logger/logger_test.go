package logger_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizflash/internal/logger"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.DEBUG), logger.WithColors(false)).
		WithPrefix("study").
		WithFields(map[string]any{"user_id": 3, "card_id": 9, "points": 18})

	log.Debug("review applied")

	out := buf.String()
	assert.Contains(t, out, "[study]")
	assert.Contains(t, out, "review applied card_id=9 points=18 user_id=3")
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = parent.WithField("request_id", "abc")

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel("ERROR"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestFromContext(t *testing.T) {
	l := logger.New(logger.WithPrefix("ctx"))
	ctx := logger.NewContext(context.Background(), l)

	assert.Same(t, l, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}

func TestLogger_RequestAndResponseFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithRequest("req-1", "POST", "/api/cards/7/review", "").
		WithResponse(201, 64, 1500*time.Millisecond)

	log.Info("request completed")

	out := buf.String()
	assert.Contains(t, out, "duration_ms=1500 method=POST path=/api/cards/7/review request_id=req-1 size=64 status=201")
	assert.NotContains(t, out, logger.FieldRemoteAddr)
}

func TestLogger_StudyFields(t *testing.T) {
	base := logger.New(logger.WithColors(false))

	log := base.WithUser(42).WithDeck(3).WithCard(0)

	userID, ok := log.Field(logger.FieldUserID)
	require.True(t, ok)
	assert.Equal(t, int64(42), userID)

	deckID, ok := log.Field(logger.FieldDeckID)
	require.True(t, ok)
	assert.Equal(t, int64(3), deckID)

	_, ok = log.Field(logger.FieldCardID)
	assert.False(t, ok, "zero card id is not attached")

	_, ok = base.Field(logger.FieldUserID)
	assert.False(t, ok, "parent logger is untouched")
}

func TestLogger_ColorizedLevel(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(true))
	log.Error("boom")

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "ERROR")
}
