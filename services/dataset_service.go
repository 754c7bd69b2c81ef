package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Berikbol/ring-system/models"
	"github.com/Berikbol/ring-system/rings"
	"github.com/Berikbol/ring-system/storage"
	"github.com/Berikbol/ring-system/store"
	"github.com/go-playground/validator/v10"
)

// datasetSnapshotKey — ключ, под которым persistence-адаптер хранит блоб
// всего набора данных.
const datasetSnapshotKey = "dataset/current.json"

// CompetitorInput — одна строка уже колонизированного ростера. Эвристики
// разбора таблиц остаются снаружи: сюда приходит валидированная форма.
type CompetitorInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Age       int    `json:"age" validate:"required,min=4,max=120"`
	Gender    string `json:"gender" validate:"required,oneof=male female"`
	HeightCM  int    `json:"height_cm,omitempty" validate:"omitempty,min=50,max=250"`
	WeightKG  int    `json:"weight_kg,omitempty" validate:"omitempty,min=10,max=250"`
	School    string `json:"school,omitempty"`

	FormsDivision    string `json:"forms_division,omitempty"`
	SparringDivision string `json:"sparring_division,omitempty"`
}

// UpdateCompetitorInput — ручная правка полей спортсмена, все поля опциональны.
type UpdateCompetitorInput struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Age       *int    `json:"age,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	School    *string `json:"school,omitempty"`

	FormsDivision     *string `json:"forms_division,omitempty"`
	FormsCompeting    *bool   `json:"forms_competing,omitempty"`
	FormsRankOrder    *int    `json:"forms_rank_order,omitempty"`
	SparringDivision  *string `json:"sparring_division,omitempty"`
	SparringCompeting *bool   `json:"sparring_competing,omitempty"`
	SparringRankOrder *int    `json:"sparring_rank_order,omitempty"`
	SparringAltRing   *string `json:"sparring_alt_ring,omitempty"`
}

// CreateCategoryInput — административное создание судейской категории.
// Если CompetitorIDs пуст, члены подбираются по демографическому фильтру.
type CreateCategoryInput struct {
	Name          string           `json:"name" validate:"required"`
	Division      string           `json:"division" validate:"required"`
	Event         models.EventType `json:"event" validate:"required,oneof=forms sparring"`
	Gender        string           `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	MinAge        int              `json:"min_age" validate:"min=0"`
	MaxAge        int              `json:"max_age" validate:"min=0"`
	NumPools      int              `json:"num_pools" validate:"required,min=1"`
	CompetitorIDs []int            `json:"competitor_ids,omitempty"`
}

type DatasetService interface {
	GetDataset(ctx context.Context) models.Dataset
	GetRings(ctx context.Context) []models.CompetitionRing
	GetWarnings(ctx context.Context) rings.ValidationWarnings

	ImportRoster(ctx context.Context, input []CompetitorInput) ([]models.Competitor, error)
	UpdateCompetitor(ctx context.Context, id int, input UpdateCompetitorInput) (*models.Competitor, error)

	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	ListCategories(ctx context.Context) []models.Category
	DeleteCategory(ctx context.Context, id int) error

	SaveDataset(ctx context.Context) error
	RestoreDataset(ctx context.Context) error
}

type datasetService struct {
	store    *store.Store
	history  HistoryService
	hub      *rings.Hub
	blobs    storage.SnapshotStore
	validate *validator.Validate
	logger   *slog.Logger
}

func NewDatasetService(st *store.Store, history HistoryService, hub *rings.Hub, blobs storage.SnapshotStore, logger *slog.Logger) DatasetService {
	return &datasetService{
		store:    st,
		history:  history,
		hub:      hub,
		blobs:    blobs,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *datasetService) GetDataset(_ context.Context) models.Dataset {
	return s.store.Snapshot()
}

func (s *datasetService) GetRings(_ context.Context) []models.CompetitionRing {
	d := s.store.Snapshot()
	return rings.ComputeRings(d.Competitors, d.Categories, d.RingMappings)
}

func (s *datasetService) GetWarnings(_ context.Context) rings.ValidationWarnings {
	return rings.ComputeWarnings(s.store.Snapshot())
}

// ImportRoster добавляет валидированные строки ростера, присваивая
// стабильные идентификаторы. Нормализация до ядра: возраст "18 и старше"
// приводится к 18, алиас дивизиона "same" у спарринга разворачивается в
// дивизион форм.
func (s *datasetService) ImportRoster(_ context.Context, input []CompetitorInput) ([]models.Competitor, error) {
	if len(input) == 0 {
		return nil, ErrEmptyRoster
	}
	for i, row := range input {
		if err := s.validate.Struct(row); err != nil {
			return nil, fmt.Errorf("%w: roster row %d: %s", ErrValidationFailed, i+1, validationDetail(err))
		}
	}

	var imported []models.Competitor
	pre := s.store.Snapshot()
	err := s.store.Mutate(func(d *models.Dataset) error {
		nextID := store.NextCompetitorID(d)
		for _, row := range input {
			c := models.Competitor{
				ID:        nextID,
				FirstName: strings.TrimSpace(row.FirstName),
				LastName:  strings.TrimSpace(row.LastName),
				Age:       normalizeAge(row.Age),
				Gender:    row.Gender,
				HeightCM:  row.HeightCM,
				WeightKG:  row.WeightKG,
				School:    strings.TrimSpace(row.School),
			}
			c.Forms = entryFromDivision(row.FormsDivision)
			c.Sparring = entryFromDivision(resolveDivisionAlias(row.SparringDivision, row.FormsDivision))
			d.Competitors = append(d.Competitors, c)
			imported = append(imported, c)
			nextID++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.history.Record(pre)

	s.logger.Info("roster imported", slog.Int("count", len(imported)))
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventDatasetReplaced})
	return imported, nil
}

func (s *datasetService) UpdateCompetitor(_ context.Context, id int, input UpdateCompetitorInput) (*models.Competitor, error) {
	if input.SparringAltRing != nil {
		tag := *input.SparringAltRing
		if tag != "" && tag != "a" && tag != "b" {
			return nil, ErrInvalidAltRing
		}
	}

	var updated models.Competitor
	pre := s.store.Snapshot()
	err := s.store.Mutate(func(d *models.Dataset) error {
		for i := range d.Competitors {
			if d.Competitors[i].ID != id {
				continue
			}
			c := &d.Competitors[i]
			if input.FirstName != nil {
				c.FirstName = strings.TrimSpace(*input.FirstName)
			}
			if input.LastName != nil {
				c.LastName = strings.TrimSpace(*input.LastName)
			}
			if input.Age != nil {
				c.Age = normalizeAge(*input.Age)
			}
			if input.Gender != nil {
				c.Gender = *input.Gender
			}
			if input.School != nil {
				c.School = strings.TrimSpace(*input.School)
			}
			if input.FormsDivision != nil {
				c.Forms.Division = *input.FormsDivision
				c.Forms.Competing = *input.FormsDivision != "" && *input.FormsDivision != models.DivisionNotCompeting
			}
			if input.FormsCompeting != nil {
				c.Forms.Competing = *input.FormsCompeting
			}
			if input.FormsRankOrder != nil {
				c.Forms.RankOrder = intPtr(*input.FormsRankOrder)
			}
			if input.SparringDivision != nil {
				division := resolveDivisionAlias(*input.SparringDivision, c.Forms.Division)
				c.Sparring.Division = division
				c.Sparring.Competing = division != "" && division != models.DivisionNotCompeting
			}
			if input.SparringCompeting != nil {
				c.Sparring.Competing = *input.SparringCompeting
			}
			if input.SparringRankOrder != nil {
				c.Sparring.RankOrder = intPtr(*input.SparringRankOrder)
			}
			if input.SparringAltRing != nil {
				c.Sparring.AltRing = *input.SparringAltRing
			}
			updated = *c
			return nil
		}
		return ErrCompetitorNotFound
	})
	if err != nil {
		return nil, err
	}
	s.history.Record(pre)
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventDatasetReplaced})
	return &updated, nil
}

func (s *datasetService) CreateCategory(_ context.Context, input CreateCategoryInput) (*models.Category, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, validationDetail(err))
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	var created models.Category
	pre := s.store.Snapshot()
	err := s.store.Mutate(func(d *models.Dataset) error {
		cat := models.Category{
			ID:       store.NextCategoryID(d),
			Division: input.Division,
			Event:    input.Event,
			Gender:   input.Gender,
			MinAge:   input.MinAge,
			MaxAge:   input.MaxAge,
			Name:     name,
			NumPools: input.NumPools,
		}
		members := input.CompetitorIDs
		if len(members) == 0 {
			members = resolveMembers(d.Competitors, cat)
		}
		cat.CompetitorIDs = members

		memberSet := make(map[int]bool, len(members))
		for _, id := range members {
			memberSet[id] = true
		}
		for i := range d.Competitors {
			if !memberSet[d.Competitors[i].ID] {
				continue
			}
			entry := d.Competitors[i].Entry(cat.Event)
			entry.CategoryID = intPtr(cat.ID)
		}

		d.Categories = append(d.Categories, cat)
		created = cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.history.Record(pre)
	s.logger.Info("category created",
		slog.Int("category_id", created.ID),
		slog.String("name", created.Name),
		slog.Int("members", len(created.CompetitorIDs)))
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventRingsUpdated, Division: created.Division})
	return &created, nil
}

func (s *datasetService) ListCategories(_ context.Context) []models.Category {
	return s.store.Snapshot().Categories
}

// DeleteCategory удаляет категорию и чистит её id у всех ссылающихся
// спортсменов; метки пулов при этом тоже теряют смысл и сбрасываются.
func (s *datasetService) DeleteCategory(_ context.Context, id int) error {
	var division string
	pre := s.store.Snapshot()
	err := s.store.Mutate(func(d *models.Dataset) error {
		idx := -1
		for i, cat := range d.Categories {
			if cat.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrCategoryNotFound
		}
		event := d.Categories[idx].Event
		division = d.Categories[idx].Division
		d.Categories = append(d.Categories[:idx], d.Categories[idx+1:]...)

		for i := range d.Competitors {
			entry := d.Competitors[i].Entry(event)
			if got, ok := derefInt(entry.CategoryID); ok && got == id {
				entry.CategoryID = nil
				entry.Pool = nil
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.history.Record(pre)
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventRingsUpdated, Division: division})
	return nil
}

// SaveDataset сериализует весь набор данных и отдаёт persistence-адаптеру
// как непрозрачный блоб.
func (s *datasetService) SaveDataset(ctx context.Context) error {
	if s.blobs == nil {
		return ErrSnapshotStoreNotConfigured
	}
	data, err := json.Marshal(s.store.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to serialize dataset: %w", err)
	}
	if err := s.blobs.Save(ctx, datasetSnapshotKey, data); err != nil {
		return fmt.Errorf("failed to persist dataset: %w", err)
	}
	s.logger.Info("dataset saved", slog.Int("bytes", len(data)))
	return nil
}

func (s *datasetService) RestoreDataset(ctx context.Context) error {
	if s.blobs == nil {
		return ErrSnapshotStoreNotConfigured
	}
	data, err := s.blobs.Load(ctx, datasetSnapshotKey)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return ErrNoSavedDataset
		}
		return fmt.Errorf("failed to load dataset blob: %w", err)
	}
	var d models.Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("failed to decode dataset blob: %w", err)
	}

	pre := s.store.Snapshot()
	s.store.Replace(d)
	s.history.Record(pre)
	s.logger.Info("dataset restored", slog.Int("competitors", len(d.Competitors)))
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventDatasetReplaced})
	return nil
}

// normalizeAge приводит зарезервированное значение "18 и старше" к 18.
func normalizeAge(age int) int {
	if age > models.AdultAge {
		return models.AdultAge
	}
	return age
}

// resolveDivisionAlias разворачивает алиас "same" / "same as forms",
// встречающийся в импортируемых ростерах, в настоящий дивизион форм.
func resolveDivisionAlias(division, formsDivision string) string {
	switch strings.ToLower(strings.TrimSpace(division)) {
	case "same", "same as forms":
		return formsDivision
	}
	return division
}

func entryFromDivision(division string) models.EventEntry {
	division = strings.TrimSpace(division)
	return models.EventEntry{
		Division:  division,
		Competing: division != "" && division != models.DivisionNotCompeting,
	}
}

func resolveMembers(competitors []models.Competitor, cat models.Category) []int {
	var ids []int
	for _, c := range competitors {
		entry := c.Entry(cat.Event)
		if entry == nil || !entry.IsCompeting() || entry.Division != cat.Division {
			continue
		}
		if cat.Matches(c) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return fmt.Sprintf("field %s failed on %q", first.Field(), first.Tag())
	}
	return err.Error()
}
