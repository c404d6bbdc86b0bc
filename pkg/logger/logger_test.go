package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextAddsSession(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("storefront-test", &buf)
	t.Cleanup(func() { Logger = zerolog.Logger{} })

	ctx := ContextWithSession(context.Background(), "abc123")
	Info(ctx).Str("op", "add_item").Msg("cart updated")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "storefront-test", line["service"])
	assert.Equal(t, "abc123", line["session_id"])
	assert.Equal(t, "add_item", line["op"])
	assert.NotContains(t, line, "trace_id")
}

func TestSetLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
