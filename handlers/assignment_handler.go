package handlers

import (
	"net/http"

	"github.com/Berikbol/ring-system/services"
	"github.com/go-chi/chi/v5"
)

type AssignmentHandler struct {
	service services.AssignmentService
}

func NewAssignmentHandler(service services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// AssignDivision перераспределяет пулы всех категорий одного дивизиона.
// Операция деструктивна: прежние метки пулов перезаписываются.
func (h *AssignmentHandler) AssignDivision(w http.ResponseWriter, r *http.Request) {
	division := chi.URLParam(r, "division")

	outcome, err := h.service.AssignDivision(r.Context(), division)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, outcome, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) AssignAll(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.AssignAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, outcome, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) MapSparring(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.MapSparring(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, outcome, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) AutoAssignRings(w http.ResponseWriter, r *http.Request) {
	division := chi.URLParam(r, "division")

	mappings, err := h.service.AutoAssignDivisionRings(r.Context(), division)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ring_mappings": mappings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type overrideRingRequest struct {
	RingName string `json:"ring_name"`
}

func (h *AssignmentHandler) OverrideRingMapping(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "mappingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input overrideRingRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	updated, err := h.service.OverrideRingMapping(r.Context(), id, input.RingName)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ring_mapping": updated}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
