package services

import (
	"log/slog"
	"sync"

	"github.com/Berikbol/ring-system/models"
	"github.com/Berikbol/ring-system/rings"
	"github.com/Berikbol/ring-system/store"
)

// HistoryService ведёт ограниченную историю полных снимков набора данных
// для undo/redo. Снимки целиком, не дельты: проще рассуждать о корректности
// ценой памяти, глубина ограничена конфигом.
type HistoryService interface {
	// Record pushes the pre-mutation dataset snapshot onto the undo stack
	// and clears the redo stack. Mutating services capture the snapshot
	// before applying a change and record it only once the change has
	// committed, so a failed operation never leaves a history entry.
	Record(pre models.Dataset)

	// Undo restores the most recent recorded state. Returns false when the
	// undo stack is empty (no-op).
	Undo() bool

	// Redo reverses the most recent Undo. Returns false when the redo
	// stack is empty (no-op).
	Redo() bool

	// Depths returns the current undo and redo stack sizes.
	Depths() (undo, redo int)
}

type historyService struct {
	mu       sync.Mutex
	undo     []models.Dataset
	redo     []models.Dataset
	maxDepth int

	store  *store.Store
	hub    *rings.Hub
	logger *slog.Logger
}

func NewHistoryService(st *store.Store, maxDepth int, hub *rings.Hub, logger *slog.Logger) HistoryService {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &historyService{
		maxDepth: maxDepth,
		store:    st,
		hub:      hub,
		logger:   logger,
	}
}

func (s *historyService) Record(pre models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) >= s.maxDepth {
		// Evict the oldest entry to bound memory growth.
		copy(s.undo, s.undo[1:])
		s.undo = s.undo[:len(s.undo)-1]
	}
	s.undo = append(s.undo, pre)
	s.redo = nil
}

func (s *historyService) Undo() bool {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return false
	}
	current := s.store.Snapshot()
	s.redo = append(s.redo, current)
	restored := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.mu.Unlock()

	s.store.Replace(restored)
	s.logger.Info("undo applied", slog.Int("undo_depth", len(s.undo)), slog.Int("redo_depth", len(s.redo)))
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventHistoryApplied})
	return true
}

func (s *historyService) Redo() bool {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return false
	}
	current := s.store.Snapshot()
	s.undo = append(s.undo, current)
	restored := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.mu.Unlock()

	s.store.Replace(restored)
	s.logger.Info("redo applied", slog.Int("undo_depth", len(s.undo)), slog.Int("redo_depth", len(s.redo)))
	s.hub.BroadcastUpdate(rings.UpdateMessage{Type: rings.EventHistoryApplied})
	return true
}

func (s *historyService) Depths() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo), len(s.redo)
}
