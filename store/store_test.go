package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sprig/command"
	"github.com/chazu/sprig/geom"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s, err := New(db, DriverSQLite)
	require.NoError(t, err)
	return s
}

func sampleRun(t *testing.T) *Run {
	t.Helper()
	cmds := []command.Command{
		command.StartMarker(geom.Origin),
		command.LineSegment(geom.Origin, geom.UnitY),
		command.InstancePlacement('P', geom.UnitY, geom.Euler{X: 1, Y: 2, Z: 3}),
	}
	stream, err := command.MarshalCBOR(cmds)
	require.NoError(t, err)
	return &Run{
		Preset:     "coral",
		PresetHash: [32]byte{1, 2, 3},
		Seed:       1 << 63,
		HasSeed:    true,
		Replay:     "cumulative",
		Commands:   len(cmds),
		Stream:     stream,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	run := sampleRun(t)
	require.NoError(t, s.Save(ctx, run))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := s.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Preset, got.Preset)
	assert.Equal(t, run.PresetHash, got.PresetHash)
	assert.Equal(t, run.Seed, got.Seed)
	assert.True(t, got.HasSeed)
	assert.Equal(t, run.Commands, got.Commands)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))

	cmds, err := got.Decode()
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, 'P', cmds[2].Sym())
}

func TestGetMissing(t *testing.T) {
	s := setupStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, name := range []string{"old", "mid", "new"} {
		r := sampleRun(t)
		r.Preset = name
		r.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.Save(ctx, r))
	}

	runs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].Preset)
	assert.Equal(t, "old", runs[2].Preset)
}

func TestDelete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	r := sampleRun(t)
	require.NoError(t, s.Save(ctx, r))
	require.NoError(t, s.Delete(ctx, r.ID))
	_, err := s.Get(ctx, r.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, s.Delete(ctx, r.ID), ErrRunNotFound)
}

func TestDuplicateIDRejected(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	r := sampleRun(t)
	r.ID = "fixed"
	require.NoError(t, s.Save(ctx, r))
	assert.Error(t, s.Save(ctx, sampleRunWithID(t, "fixed")))
}

func sampleRunWithID(t *testing.T, id string) *Run {
	r := sampleRun(t)
	r.ID = id
	return r
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	r := sampleRun(t)
	require.NoError(t, s.Save(context.Background(), r))
	require.NoError(t, s.Close())

	s, err = Open(DriverSQLite, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Stream, got.Stream)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("postgres", "")
	assert.Error(t, err)
}
