package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Berikbol/ring-system/models"
	"github.com/Berikbol/ring-system/rings"
	"github.com/Berikbol/ring-system/store"
)

// AssignOutcome — результат прогона распределения по категориям.
type AssignOutcome struct {
	Rings    []models.CompetitionRing `json:"rings"`
	Warnings rings.ValidationWarnings `json:"warnings"`
}

// SparringOutcome — результат проекции спарринга на ринги форм.
type SparringOutcome struct {
	Rings      []models.CompetitionRing `json:"rings"`
	Unassigned int                      `json:"unassigned"`
}

// AssignmentService оборачивает чистые алгоритмы пакета rings операциями
// над живым набором данных: снимок, прогон на копии, и только при успехе —
// запись в историю и коммит. Ошибка ёмкости оставляет набор данных
// нетронутым.
type AssignmentService interface {
	// AssignDivision re-runs forms pool assignment for every category of
	// one division. Destructive: prior pool labels are overwritten, so the
	// caller warns the operator before invoking.
	AssignDivision(ctx context.Context, division string) (*AssignOutcome, error)

	// AssignAll runs assignment across all divisions.
	AssignAll(ctx context.Context) (*AssignOutcome, error)

	// MapSparring projects sparring participants onto the physical rings
	// already chosen for their forms pools.
	MapSparring(ctx context.Context) (*SparringOutcome, error)

	// AutoAssignDivisionRings rebuilds the physical ring mappings of one
	// division; mappings of other divisions are preserved untouched.
	AutoAssignDivisionRings(ctx context.Context, division string) ([]models.PhysicalRingMapping, error)

	// OverrideRingMapping records a manual ring-name override typed in by
	// the operator. It persists until the next explicit auto-assign.
	OverrideRingMapping(ctx context.Context, mappingID int, ringName string) (*models.PhysicalRingMapping, error)
}

type assignmentService struct {
	store   *store.Store
	history HistoryService
	hub     *rings.Hub
	logger  *slog.Logger
}

func NewAssignmentService(st *store.Store, history HistoryService, hub *rings.Hub, logger *slog.Logger) AssignmentService {
	return &assignmentService{store: st, history: history, hub: hub, logger: logger}
}

func (s *assignmentService) AssignDivision(ctx context.Context, division string) (*AssignOutcome, error) {
	division = strings.TrimSpace(division)
	if division == "" {
		return nil, ErrDivisionRequired
	}
	return s.assign(ctx, division)
}

func (s *assignmentService) AssignAll(ctx context.Context) (*AssignOutcome, error) {
	return s.assign(ctx, "")
}

func (s *assignmentService) assign(_ context.Context, division string) (*AssignOutcome, error) {
	pre := s.store.Snapshot()

	// The engine runs on the snapshot clone; nothing touches the live
	// dataset until the whole fold has succeeded.
	work := pre.Clone()
	updated, assigned, err := rings.AssignAllCategories(work.Categories, work.Competitors, work.Config, division, models.EventForms)
	if err != nil {
		return nil, err
	}

	err = s.store.Mutate(func(d *models.Dataset) error {
		d.Competitors = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.history.Record(pre)

	s.logger.Info("pool assignment completed",
		slog.String("division", division),
		slog.Int("rings", len(assigned)))
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventRingsUpdated, Division: division})

	return &AssignOutcome{
		Rings:    assigned,
		Warnings: rings.ComputeWarnings(s.store.Snapshot()),
	}, nil
}

func (s *assignmentService) MapSparring(_ context.Context) (*SparringOutcome, error) {
	pre := s.store.Snapshot()
	work := pre.Clone()

	formsRings := rings.ComputeRings(work.Competitors, work.Categories, work.RingMappings)
	result := rings.MapSparringToForms(work.Categories, work.Competitors, formsRings)

	err := s.store.Mutate(func(d *models.Dataset) error {
		d.Competitors = result.Competitors
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.history.Record(pre)

	s.logger.Info("sparring mapped to forms rings",
		slog.Int("rings", len(result.Rings)),
		slog.Int("unassigned", result.Unassigned))
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventRingsUpdated})

	return &SparringOutcome{Rings: result.Rings, Unassigned: result.Unassigned}, nil
}

func (s *assignmentService) AutoAssignDivisionRings(_ context.Context, division string) ([]models.PhysicalRingMapping, error) {
	division = strings.TrimSpace(division)
	if division == "" {
		return nil, ErrDivisionRequired
	}

	pre := s.store.Snapshot()
	units := rings.BuildPoolUnits(pre.Categories, division)
	resourceCount := pre.Config.RingsPerDivision[division]

	mappings, err := rings.AutoAssignPhysicalRings(units, resourceCount)
	if err != nil {
		return nil, err
	}

	var replaced []models.PhysicalRingMapping
	err = s.store.Mutate(func(d *models.Dataset) error {
		kept := make([]models.PhysicalRingMapping, 0, len(d.RingMappings))
		for _, m := range d.RingMappings {
			if m.Division != division {
				kept = append(kept, m)
			}
		}
		nextID := 0
		for _, m := range kept {
			if m.ID > nextID {
				nextID = m.ID
			}
		}
		for i := range mappings {
			nextID++
			mappings[i].ID = nextID
		}
		d.RingMappings = append(kept, mappings...)
		replaced = mappings
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.history.Record(pre)

	s.logger.Info("physical rings auto-assigned",
		slog.String("division", division),
		slog.Int("mappings", len(replaced)))
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventRingsUpdated, Division: division})
	return replaced, nil
}

func (s *assignmentService) OverrideRingMapping(_ context.Context, mappingID int, ringName string) (*models.PhysicalRingMapping, error) {
	ringName = strings.TrimSpace(ringName)
	if ringName == "" {
		return nil, ErrRingNameRequired
	}

	var updated models.PhysicalRingMapping
	pre := s.store.Snapshot()
	err := s.store.Mutate(func(d *models.Dataset) error {
		for i := range d.RingMappings {
			if d.RingMappings[i].ID != mappingID {
				continue
			}
			d.RingMappings[i].RingName = ringName
			d.RingMappings[i].ManualOverride = true
			updated = d.RingMappings[i]
			return nil
		}
		return ErrMappingNotFound
	})
	if err != nil {
		return nil, err
	}
	s.history.Record(pre)
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventRingsUpdated, Division: updated.Division})
	return &updated, nil
}
