package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)

	blob := []byte(`{"items":[]}`)
	require.NoError(t, m.Set(ctx, "cart", blob))
	blob[0] = 'X'

	got, err := m.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))

	got[0] = 'Y'
	again, err := m.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(again))
}

func TestTracingPassesThrough(t *testing.T) {
	ctx := context.Background()
	s := NewTracing(NewMemory(), "memory")

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestRecordTableName(t *testing.T) {
	assert.Equal(t, "storage_records", Record{}.TableName())
}
