package services

import (
	"io"
	"log/slog"

	"github.com/Berikbol/ring-system/models"
	"github.com/Berikbol/ring-system/rings"
	"github.com/Berikbol/ring-system/store"
)

type testEnv struct {
	store      *store.Store
	history    HistoryService
	hub        *rings.Hub
	dataset    DatasetService
	assignment AssignmentService
	checkpoint CheckpointService
}

func newTestEnv(cfg models.TournamentConfig) *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := rings.NewHub()
	st := store.New(cfg)
	history := NewHistoryService(st, 50, hub, logger)
	return &testEnv{
		store:      st,
		history:    history,
		hub:        hub,
		dataset:    NewDatasetService(st, history, hub, nil, logger),
		assignment: NewAssignmentService(st, history, hub, logger),
		checkpoint: NewCheckpointService(st, history, hub, logger),
	}
}

func rosterRow(first string, age int) CompetitorInput {
	return CompetitorInput{
		FirstName:        first,
		LastName:         "Test",
		Age:              age,
		Gender:           "male",
		FormsDivision:    "Black Belt",
		SparringDivision: "same",
	}
}
