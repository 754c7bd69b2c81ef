package handlers

import (
	"net/http"

	"github.com/Berikbol/ring-system/services"
	"github.com/go-chi/chi/v5"
)

type CheckpointHandler struct {
	service services.CheckpointService
}

func NewCheckpointHandler(service services.CheckpointService) *CheckpointHandler {
	return &CheckpointHandler{service: service}
}

type checkpointRequest struct {
	Name string `json:"name,omitempty"`
}

func (h *CheckpointHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input checkpointRequest
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	cp, err := h.service.Create(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"checkpoint": cp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CheckpointHandler) List(w http.ResponseWriter, r *http.Request) {
	checkpoints := h.service.List(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"checkpoints": checkpoints}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Diff сравнивает живой набор данных с чекпоинтом, ничего не меняя.
func (h *CheckpointHandler) Diff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "checkpointID")

	diff, err := h.service.Diff(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"diff": diff}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Load полностью заменяет живой набор данных содержимым чекпоинта.
func (h *CheckpointHandler) Load(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "checkpointID")

	if err := h.service.Load(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "loaded"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CheckpointHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "checkpointID")

	var input checkpointRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cp, err := h.service.Rename(r.Context(), id, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"checkpoint": cp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CheckpointHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "checkpointID")

	if err := h.service.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
