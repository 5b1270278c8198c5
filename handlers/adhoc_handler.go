package handlers

import (
	"net/http"

	"github.com/streampair/bracket-system/models"
	"github.com/streampair/bracket-system/services"
)

type AdHocBracketHandler struct {
	adHocService services.AdHocBracketService
}

func NewAdHocBracketHandler(adHocService services.AdHocBracketService) *AdHocBracketHandler {
	return &AdHocBracketHandler{adHocService: adHocService}
}

// CreateHandler handles POST /brackets.
func (h *AdHocBracketHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateAdHocBracketInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.adHocService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /brackets/{bracketID}.
func (h *AdHocBracketHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.adHocService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /brackets.
func (h *AdHocBracketHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var platform *string
	if p := r.URL.Query().Get("platform"); p != "" {
		platform = &p
	}

	list, err := h.adHocService.List(r.Context(), platform)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"brackets": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddParticipantHandler handles POST /brackets/{bracketID}/participants.
func (h *AdHocBracketHandler) AddParticipantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var participant models.AdHocParticipant
	if err := readJSON(w, r, &participant); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.adHocService.AddParticipant(r.Context(), id, participant)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
