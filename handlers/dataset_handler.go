package handlers

import (
	"net/http"

	"github.com/Berikbol/ring-system/services"
)

type DatasetHandler struct {
	service services.DatasetService
}

func NewDatasetHandler(service services.DatasetService) *DatasetHandler {
	return &DatasetHandler{service: service}
}

func (h *DatasetHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	d := h.service.GetDataset(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"dataset": d}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRings возвращает материализованное представление соревновательных
// рингов, пересчитанное из текущего набора данных.
func (h *DatasetHandler) GetRings(w http.ResponseWriter, r *http.Request) {
	computed := h.service.GetRings(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rings": computed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DatasetHandler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	warnings := h.service.GetWarnings(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"warnings": warnings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DatasetHandler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	var input []services.CompetitorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	imported, err := h.service.ImportRoster(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"competitors": imported}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DatasetHandler) UpdateCompetitor(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateCompetitorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	updated, err := h.service.UpdateCompetitor(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitor": updated}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DatasetHandler) SaveDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SaveDataset(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "saved"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DatasetHandler) RestoreDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RestoreDataset(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "restored"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
