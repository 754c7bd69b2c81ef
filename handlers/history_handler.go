package handlers

import (
	"net/http"

	"github.com/Berikbol/ring-system/services"
)

type HistoryHandler struct {
	service services.HistoryService
}

func NewHistoryHandler(service services.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// Undo откатывает последнюю мутацию. Пустой стек — не ошибка, просто
// applied=false: оператору удобнее идемпотентная кнопка.
func (h *HistoryHandler) Undo(w http.ResponseWriter, r *http.Request) {
	applied := h.service.Undo()
	undoDepth, redoDepth := h.service.Depths()
	response := jsonResponse{
		"applied":    applied,
		"undo_depth": undoDepth,
		"redo_depth": redoDepth,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HistoryHandler) Redo(w http.ResponseWriter, r *http.Request) {
	applied := h.service.Redo()
	undoDepth, redoDepth := h.service.Depths()
	response := jsonResponse{
		"applied":    applied,
		"undo_depth": undoDepth,
		"redo_depth": redoDepth,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
