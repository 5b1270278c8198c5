package handlers

import (
	"errors"
	"net/http"

	"github.com/streampair/bracket-system/middleware"
	"github.com/streampair/bracket-system/services"
)

type MatchingHandler struct {
	matchingService services.MatchingService
}

func NewMatchingHandler(matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{matchingService: matchingService}
}

// queryName resolves the display name being asked about: an explicit ?name=
// wins, otherwise the authenticated account's display name.
func (h *MatchingHandler) queryName(r *http.Request) (string, error) {
	if name := r.URL.Query().Get("name"); name != "" {
		return name, nil
	}
	name, err := middleware.GetDisplayNameFromContext(r.Context())
	if err != nil || name == "" {
		return "", errors.New("name query parameter is required")
	}
	return name, nil
}

// BracketsCreatedByHandler handles GET /matching/brackets.
func (h *MatchingHandler) BracketsCreatedByHandler(w http.ResponseWriter, r *http.Request) {
	name, err := h.queryName(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	list, err := h.matchingService.BracketsCreatedBy(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"brackets": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SlotsInvolvingHandler handles GET /matching/slots.
func (h *MatchingHandler) SlotsInvolvingHandler(w http.ResponseWriter, r *http.Request) {
	name, err := h.queryName(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	slots, err := h.matchingService.SlotsInvolving(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"slots": slots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// HistoryHandler handles GET /matching/history.
func (h *MatchingHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	name, err := h.queryName(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	history, err := h.matchingService.History(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"history": history}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
