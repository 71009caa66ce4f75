package state

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err, "NewSQLiteStore")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "balance", "100"))

	got, err := s.Get(ctx, "balance")
	require.NoError(t, err)
	assert.Equal(t, "100", got)
}

func TestPutOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "balance", "100"))
	require.NoError(t, s.Put(ctx, "balance", "250"))

	got, err := s.Get(ctx, "balance")
	require.NoError(t, err)
	assert.Equal(t, "250", got, "readers must observe the most recent write")
}

func TestGetUnknownKey(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSubmission(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateSubmission(ctx, `{"attestation":"0xabc"}`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "sub_"), "submission id %q should have sub_ prefix", id)

	stored, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, `{"attestation":"0xabc"}`, stored)
}

func TestCreateSubmissionUniqueIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, err := s.CreateSubmission(ctx, "data")
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate submission id %s", id)
		seen[id] = true
	}
}
