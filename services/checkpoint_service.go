package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Berikbol/ring-system/models"
	"github.com/Berikbol/ring-system/rings"
	"github.com/Berikbol/ring-system/store"
	"github.com/google/uuid"
)

// trackedField сравнивает одно отслеживаемое поле двух версий спортсмена.
// ringRelevant помечает поля, изменение которых влияет на состав рингов.
type trackedField struct {
	name         string
	ringRelevant bool
	value        func(c models.Competitor) any
}

var trackedFields = []trackedField{
	{"first_name", false, func(c models.Competitor) any { return c.FirstName }},
	{"last_name", false, func(c models.Competitor) any { return c.LastName }},
	{"age", true, func(c models.Competitor) any { return c.Age }},
	{"gender", true, func(c models.Competitor) any { return c.Gender }},
	{"forms_division", true, func(c models.Competitor) any { return c.Forms.Division }},
	{"forms_category", true, func(c models.Competitor) any { return optInt(c.Forms.CategoryID) }},
	{"forms_pool", true, func(c models.Competitor) any { return optString(c.Forms.Pool) }},
	{"forms_rank_order", false, func(c models.Competitor) any { return optInt(c.Forms.RankOrder) }},
	{"sparring_division", true, func(c models.Competitor) any { return c.Sparring.Division }},
	{"sparring_category", true, func(c models.Competitor) any { return optInt(c.Sparring.CategoryID) }},
	{"sparring_pool", true, func(c models.Competitor) any { return optString(c.Sparring.Pool) }},
	{"sparring_rank_order", false, func(c models.Competitor) any { return optInt(c.Sparring.RankOrder) }},
	{"sparring_alt_ring", true, func(c models.Competitor) any { return c.Sparring.AltRing }},
}

// CheckpointService — снимки всего набора данных: создание, сравнение с
// живым состоянием, загрузка (полная замена), переименование, удаление.
// Чекпоинты неизменяемы после создания; сравнение ничего не мутирует.
type CheckpointService interface {
	Create(ctx context.Context, name string) (*models.Checkpoint, error)
	List(ctx context.Context) []models.Checkpoint

	// Diff compares the live dataset against one checkpoint. Unknown ids
	// are a benign lookup condition, reported as ErrCheckpointNotFound.
	Diff(ctx context.Context, id string) (*models.Diff, error)

	// Load replaces the live dataset with the checkpoint's stored copy in
	// full. Destructive; the handler requires explicit confirmation.
	Load(ctx context.Context, id string) error

	Rename(ctx context.Context, id, name string) (*models.Checkpoint, error)
	Delete(ctx context.Context, id string) error
}

type checkpointService struct {
	mu          sync.Mutex
	checkpoints map[string]*models.Checkpoint
	order       []string

	store   *store.Store
	history HistoryService
	hub     *rings.Hub
	logger  *slog.Logger
}

func NewCheckpointService(st *store.Store, history HistoryService, hub *rings.Hub, logger *slog.Logger) CheckpointService {
	return &checkpointService{
		checkpoints: make(map[string]*models.Checkpoint),
		store:       st,
		history:     history,
		hub:         hub,
		logger:      logger,
	}
}

func (s *checkpointService) Create(_ context.Context, name string) (*models.Checkpoint, error) {
	now := time.Now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "checkpoint-" + now.Format("20060102-150405")
	}

	cp := &models.Checkpoint{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		Data:      s.store.Snapshot(),
	}

	s.mu.Lock()
	s.checkpoints[cp.ID] = cp
	s.order = append(s.order, cp.ID)
	s.mu.Unlock()

	s.logger.Info("checkpoint created", slog.String("checkpoint_id", cp.ID), slog.String("name", cp.Name))
	return &models.Checkpoint{ID: cp.ID, Name: cp.Name, CreatedAt: cp.CreatedAt}, nil
}

func (s *checkpointService) List(_ context.Context) []models.Checkpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Checkpoint, 0, len(s.order))
	for _, id := range s.order {
		cp := s.checkpoints[id]
		out = append(out, models.Checkpoint{ID: cp.ID, Name: cp.Name, CreatedAt: cp.CreatedAt})
	}
	return out
}

func (s *checkpointService) Diff(_ context.Context, id string) (*models.Diff, error) {
	s.mu.Lock()
	cp, ok := s.checkpoints[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrCheckpointNotFound
	}

	live := s.store.Snapshot()
	old := cp.Data

	oldByID := make(map[int]models.Competitor, len(old.Competitors))
	for _, c := range old.Competitors {
		oldByID[c.ID] = c
	}
	liveByID := make(map[int]models.Competitor, len(live.Competitors))
	for _, c := range live.Competitors {
		liveByID[c.ID] = c
	}

	diff := &models.Diff{
		CheckpointID:   cp.ID,
		CheckpointName: cp.Name,
		Added:          []models.Competitor{},
		Removed:        []models.Competitor{},
		Modified:       []models.CompetitorDiff{},
		RingsAffected:  []string{},
	}

	oldRings := ringNamesByCompetitor(old)
	liveRings := ringNamesByCompetitor(live)
	affected := make(map[string]bool)

	for _, c := range live.Competitors {
		if _, ok := oldByID[c.ID]; !ok {
			diff.Added = append(diff.Added, c)
			for _, name := range liveRings[c.ID] {
				affected[name] = true
			}
		}
	}
	for _, c := range old.Competitors {
		if _, ok := liveByID[c.ID]; !ok {
			diff.Removed = append(diff.Removed, c)
			for _, name := range oldRings[c.ID] {
				affected[name] = true
			}
		}
	}
	for _, c := range live.Competitors {
		before, ok := oldByID[c.ID]
		if !ok {
			continue
		}
		var changes []models.FieldChange
		ringRelevant := false
		for _, field := range trackedFields {
			oldVal, newVal := field.value(before), field.value(c)
			if oldVal == newVal {
				continue
			}
			changes = append(changes, models.FieldChange{Field: field.name, OldValue: oldVal, NewValue: newVal})
			if field.ringRelevant {
				ringRelevant = true
			}
		}
		if len(changes) == 0 {
			continue
		}
		diff.Modified = append(diff.Modified, models.CompetitorDiff{
			CompetitorID: c.ID,
			Name:         c.FullName(),
			Changes:      changes,
		})
		if ringRelevant {
			for _, name := range oldRings[c.ID] {
				affected[name] = true
			}
			for _, name := range liveRings[c.ID] {
				affected[name] = true
			}
		}
	}

	for name := range affected {
		diff.RingsAffected = append(diff.RingsAffected, name)
	}
	sort.Strings(diff.RingsAffected)
	return diff, nil
}

func (s *checkpointService) Load(_ context.Context, id string) error {
	s.mu.Lock()
	cp, ok := s.checkpoints[id]
	s.mu.Unlock()
	if !ok {
		return ErrCheckpointNotFound
	}

	pre := s.store.Snapshot()
	s.store.Replace(cp.Data)
	s.history.Record(pre)

	s.logger.Info("checkpoint loaded", slog.String("checkpoint_id", id), slog.String("name", cp.Name))
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventDatasetReplaced})
	return nil
}

func (s *checkpointService) Rename(_ context.Context, id, name string) (*models.Checkpoint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidationFailed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp, ok := s.checkpoints[id]
	if !ok {
		return nil, ErrCheckpointNotFound
	}
	cp.Name = name
	return &models.Checkpoint{ID: cp.ID, Name: cp.Name, CreatedAt: cp.CreatedAt}, nil
}

func (s *checkpointService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.checkpoints[id]; !ok {
		return ErrCheckpointNotFound
	}
	delete(s.checkpoints, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ringNamesByCompetitor раскладывает отображаемые имена рингов по
// спортсменам для одного снимка набора данных.
func ringNamesByCompetitor(d models.Dataset) map[int][]string {
	computed := rings.ComputeRings(d.Competitors, d.Categories, d.RingMappings)
	out := make(map[int][]string)
	for _, ring := range computed {
		for _, id := range ring.CompetitorIDs {
			out[id] = append(out[id], ring.Name)
		}
	}
	return out
}

func optInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func optString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
