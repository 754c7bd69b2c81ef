package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Berikbol/ring-system/models"
	"github.com/Berikbol/ring-system/rings"
	"github.com/Berikbol/ring-system/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	_, err := env.dataset.ImportRoster(ctx, []CompetitorInput{rosterRow("First", 10)})
	require.NoError(t, err)
	afterImport := env.store.Snapshot()

	_, err = env.dataset.UpdateCompetitor(ctx, 1, UpdateCompetitorInput{Age: intPtr(12)})
	require.NoError(t, err)
	afterUpdate := env.store.Snapshot()
	require.Equal(t, 12, afterUpdate.Competitors[0].Age)

	// Undo возвращает состояние до последней мутации.
	require.True(t, env.history.Undo())
	assert.Equal(t, afterImport, env.store.Snapshot())

	// Redo возвращает состояние после неё.
	require.True(t, env.history.Redo())
	assert.Equal(t, afterUpdate, env.store.Snapshot())
}

func TestUndoOnEmptyStackIsNoop(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	assert.False(t, env.history.Undo())
	assert.False(t, env.history.Redo())
}

func TestNewMutationClearsRedoStack(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	_, err := env.dataset.ImportRoster(ctx, []CompetitorInput{rosterRow("First", 10)})
	require.NoError(t, err)
	require.True(t, env.history.Undo())

	_, redoDepth := env.history.Depths()
	require.Equal(t, 1, redoDepth)

	_, err = env.dataset.ImportRoster(ctx, []CompetitorInput{rosterRow("Second", 11)})
	require.NoError(t, err)

	_, redoDepth = env.history.Depths()
	assert.Zero(t, redoDepth)
	assert.False(t, env.history.Redo())
}

func TestFailedMutationLeavesNoHistoryEntry(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	_, err := env.dataset.UpdateCompetitor(ctx, 999, UpdateCompetitorInput{Age: intPtr(12)})
	require.ErrorIs(t, err, ErrCompetitorNotFound)

	undoDepth, _ := env.history.Depths()
	assert.Zero(t, undoDepth)
}

func TestHistoryDepthIsBounded(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := rings.NewHub()
	st := store.New(models.TournamentConfig{})
	history := NewHistoryService(st, 2, hub, logger)

	for i := 0; i < 5; i++ {
		history.Record(st.Snapshot())
	}
	undoDepth, _ := history.Depths()
	assert.Equal(t, 2, undoDepth)

	assert.True(t, history.Undo())
	assert.True(t, history.Undo())
	assert.False(t, history.Undo())
}

func TestUndoSnapshotsAreIndependent(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	_, err := env.dataset.ImportRoster(ctx, []CompetitorInput{rosterRow("First", 10)})
	require.NoError(t, err)
	_, err = env.dataset.UpdateCompetitor(ctx, 1, UpdateCompetitorInput{FirstName: strPtr("Renamed")})
	require.NoError(t, err)

	require.True(t, env.history.Undo())
	// Запись в живой набор после undo не портит redo-снимок.
	_, err = env.dataset.UpdateCompetitor(ctx, 1, UpdateCompetitorInput{Age: intPtr(15)})
	require.NoError(t, err)

	assert.Equal(t, "First", env.store.Snapshot().Competitors[0].FirstName)
}

func strPtr(s string) *string { return &s }
