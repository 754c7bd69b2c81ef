package services

import (
	"context"
	"testing"

	"github.com/Berikbol/ring-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointCreateDefaultsName(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	cp, err := env.checkpoint.Create(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, cp.ID)
	assert.Contains(t, cp.Name, "checkpoint-")

	named, err := env.checkpoint.Create(ctx, "before finals")
	require.NoError(t, err)
	assert.Equal(t, "before finals", named.Name)

	list := env.checkpoint.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, cp.ID, list[0].ID)
}

func TestCheckpointDiffTracksAddedRemovedModified(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	_, err := env.dataset.ImportRoster(ctx, []CompetitorInput{
		rosterRow("Keep", 10),
		rosterRow("Change", 11),
	})
	require.NoError(t, err)

	cp, err := env.checkpoint.Create(ctx, "baseline")
	require.NoError(t, err)

	_, err = env.dataset.UpdateCompetitor(ctx, 2, UpdateCompetitorInput{Age: intPtr(12)})
	require.NoError(t, err)
	_, err = env.dataset.ImportRoster(ctx, []CompetitorInput{rosterRow("New", 9)})
	require.NoError(t, err)

	diff, err := env.checkpoint.Diff(ctx, cp.ID)
	require.NoError(t, err)

	require.Len(t, diff.Added, 1)
	assert.Equal(t, 3, diff.Added[0].ID)
	assert.Empty(t, diff.Removed)

	require.Len(t, diff.Modified, 1)
	assert.Equal(t, 2, diff.Modified[0].CompetitorID)
	require.Len(t, diff.Modified[0].Changes, 1)
	assert.Equal(t, "age", diff.Modified[0].Changes[0].Field)
	assert.Equal(t, 11, diff.Modified[0].Changes[0].OldValue)
	assert.Equal(t, 12, diff.Modified[0].Changes[0].NewValue)
}

func TestCheckpointDiffReportsAffectedRings(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{RingsPerDivision: map[string]int{"Black Belt": 2}})
	ctx := context.Background()

	_, err := env.dataset.ImportRoster(ctx, []CompetitorInput{
		rosterRow("A", 9),
		rosterRow("B", 10),
	})
	require.NoError(t, err)
	_, err = env.dataset.CreateCategory(ctx, CreateCategoryInput{
		Name: "Youth", Division: "Black Belt", Event: models.EventForms, NumPools: 2,
	})
	require.NoError(t, err)
	_, err = env.assignment.AssignDivision(ctx, "Black Belt")
	require.NoError(t, err)

	cp, err := env.checkpoint.Create(ctx, "assigned")
	require.NoError(t, err)

	// Правка без влияния на ринги не трогает RingsAffected.
	_, err = env.dataset.UpdateCompetitor(ctx, 1, UpdateCompetitorInput{FirstName: strPtr("Renamed")})
	require.NoError(t, err)
	diff, err := env.checkpoint.Diff(ctx, cp.ID)
	require.NoError(t, err)
	assert.Empty(t, diff.RingsAffected)

	// Смена возраста помечает ринги участника в обоих снимках.
	_, err = env.dataset.UpdateCompetitor(ctx, 1, UpdateCompetitorInput{Age: intPtr(13)})
	require.NoError(t, err)
	diff, err = env.checkpoint.Diff(ctx, cp.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Youth_P1"}, diff.RingsAffected)
}

func TestCheckpointLoadReplacesDataset(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	_, err := env.dataset.ImportRoster(ctx, []CompetitorInput{rosterRow("Original", 10)})
	require.NoError(t, err)
	baseline := env.store.Snapshot()

	cp, err := env.checkpoint.Create(ctx, "baseline")
	require.NoError(t, err)

	_, err = env.dataset.UpdateCompetitor(ctx, 1, UpdateCompetitorInput{FirstName: strPtr("Mutated")})
	require.NoError(t, err)

	require.NoError(t, env.checkpoint.Load(ctx, cp.ID))
	assert.Equal(t, baseline, env.store.Snapshot())

	// Загрузка чекпоинта сама откатывается через undo.
	require.True(t, env.history.Undo())
	assert.Equal(t, "Mutated", env.store.Snapshot().Competitors[0].FirstName)
}

func TestCheckpointIsImmutableAfterCreate(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	_, err := env.dataset.ImportRoster(ctx, []CompetitorInput{rosterRow("Original", 10)})
	require.NoError(t, err)
	cp, err := env.checkpoint.Create(ctx, "frozen")
	require.NoError(t, err)

	_, err = env.dataset.UpdateCompetitor(ctx, 1, UpdateCompetitorInput{FirstName: strPtr("Mutated")})
	require.NoError(t, err)

	require.NoError(t, env.checkpoint.Load(ctx, cp.ID))
	assert.Equal(t, "Original", env.store.Snapshot().Competitors[0].FirstName)
}

func TestCheckpointRenameAndDelete(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	cp, err := env.checkpoint.Create(ctx, "old name")
	require.NoError(t, err)

	renamed, err := env.checkpoint.Rename(ctx, cp.ID, "new name")
	require.NoError(t, err)
	assert.Equal(t, "new name", renamed.Name)

	require.NoError(t, env.checkpoint.Delete(ctx, cp.ID))
	assert.Empty(t, env.checkpoint.List(ctx))
	assert.ErrorIs(t, env.checkpoint.Delete(ctx, cp.ID), ErrCheckpointNotFound)
}

func TestCheckpointUnknownID(t *testing.T) {
	env := newTestEnv(models.TournamentConfig{})
	ctx := context.Background()

	_, err := env.checkpoint.Diff(ctx, "missing")
	assert.ErrorIs(t, err, ErrCheckpointNotFound)
	assert.ErrorIs(t, env.checkpoint.Load(ctx, "missing"), ErrCheckpointNotFound)
	_, err = env.checkpoint.Rename(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrCheckpointNotFound)
}
