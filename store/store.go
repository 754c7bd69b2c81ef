// Package store holds the single mutable tournament dataset. It has no
// behavior beyond storage, deep-copy snapshots and change notification:
// all domain logic lives in the rings package and the services layer.
package store

import (
	"sync"

	"github.com/Berikbol/ring-system/models"
)

// Store защищает живой набор данных мьютексом: ядро синхронное, но HTTP
// слой над ним конкурентный. Каждая запись атомарна с точки зрения
// читателя — производные представления пересчитываются следующим чтением.
type Store struct {
	mu        sync.RWMutex
	data      models.Dataset
	version   uint64
	listeners []func()
}

func New(cfg models.TournamentConfig) *Store {
	if cfg.RingsPerDivision == nil {
		cfg.RingsPerDivision = make(map[string]int)
	}
	return &Store{
		data: models.Dataset{
			Competitors:  []models.Competitor{},
			Categories:   []models.Category{},
			RingMappings: []models.PhysicalRingMapping{},
			Config:       cfg,
		},
	}
}

// Snapshot returns a deep copy of the live dataset. The copy shares no
// mutable substructure with the store.
func (s *Store) Snapshot() models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Replace swaps the whole live dataset for a deep copy of d.
func (s *Store) Replace(d models.Dataset) {
	s.mu.Lock()
	s.data = d.Clone()
	s.version++
	s.mu.Unlock()
	s.notify()
}

// Mutate применяет fn к живому набору данных под блокировкой. Если fn
// возвращает ошибку, изменения откатываются и слушатели не уведомляются —
// вызывающий никогда не наблюдает частично применённую операцию.
func (s *Store) Mutate(fn func(d *models.Dataset) error) error {
	s.mu.Lock()
	backup := s.data.Clone()
	if err := fn(&s.data); err != nil {
		s.data = backup
		s.mu.Unlock()
		return err
	}
	s.version++
	s.mu.Unlock()
	s.notify()
	return nil
}

// Version increases on every committed mutation. The autosave loop uses it
// to skip writes when nothing changed.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers fn to run after every committed mutation. Must be
// called during setup, before concurrent use.
func (s *Store) Subscribe(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// NextCompetitorID returns the next free competitor id. Ids are derived
// from the current maximum because Replace (checkpoint load, undo) can
// move the dataset backwards in time.
func NextCompetitorID(d *models.Dataset) int {
	max := 0
	for _, c := range d.Competitors {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// NextCategoryID returns the next free category id.
func NextCategoryID(d *models.Dataset) int {
	max := 0
	for _, c := range d.Categories {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
