package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/streampair/bracket-system/middleware"
	"github.com/streampair/bracket-system/models"
	"github.com/streampair/bracket-system/repositories"
	"github.com/streampair/bracket-system/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

// getSlotIndexFromURL parses the zero-based slot index URL parameter.
func getSlotIndexFromURL(r *http.Request) (int, error) {
	indexStr := chi.URLParam(r, "slotIndex")
	index, err := strconv.Atoi(indexStr)
	if err != nil || index < 0 {
		return 0, errors.New("invalid slotIndex URL parameter")
	}
	return index, nil
}

// CreateHandler handles POST /fill-in-brackets.
func (h *BracketHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var creatorUserID *int
	// Guest creation paths carry no identity; that is stored as-is rather
	// than rejected.
	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		creatorUserID = &userID
	}

	var input services.CreateFillInBracketInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.CreateBracket(r.Context(), creatorUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /fill-in-brackets/{bracketID}.
func (h *BracketHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.GetBracket(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /fill-in-brackets.
func (h *BracketHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListFillInBracketsFilter
	query := r.URL.Query()

	if platform := query.Get("platform_name"); platform != "" {
		filter.PlatformName = &platform
	}
	if isPublicStr := query.Get("is_public"); isPublicStr != "" {
		isPublic, err := strconv.ParseBool(isPublicStr)
		if err != nil {
			badRequestResponse(w, r, errors.New("invalid is_public query parameter"))
			return
		}
		filter.IsPublic = &isPublic
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		} else {
			badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
	} else {
		filter.Limit = 20
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		} else {
			badRequestResponse(w, r, errors.New("invalid offset query parameter"))
			return
		}
	}

	list, err := h.bracketService.ListBrackets(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"brackets": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateDetailsHandler handles PUT /fill-in-brackets/{bracketID}.
func (h *BracketHandler) UpdateDetailsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateFillInBracketDetailsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.UpdateBracketDetails(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddSlotHandler handles POST /fill-in-brackets/{bracketID}/slots.
func (h *BracketHandler) AddSlotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SlotInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.AddSlot(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateSlotHandler handles PUT /fill-in-brackets/{bracketID}/slots/{slotIndex}.
func (h *BracketHandler) UpdateSlotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getSlotIndexFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SlotInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.UpdateSlot(r.Context(), id, index, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveSlotHandler handles DELETE /fill-in-brackets/{bracketID}/slots/{slotIndex}.
func (h *BracketHandler) RemoveSlotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getSlotIndexFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.RemoveSlot(r.Context(), id, index)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetSlotStatusHandler handles PUT /fill-in-brackets/{bracketID}/slots/{slotIndex}/status.
func (h *BracketHandler) SetSlotStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getSlotIndexFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.SetSlotStatus(r.Context(), id, index, models.SlotStatus(input.Status))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetConfirmationHandler handles PUT /fill-in-brackets/{bracketID}/slots/{slotIndex}/confirmation.
func (h *BracketHandler) SetConfirmationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getSlotIndexFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Side      int  `json:"side"`
		Confirmed bool `json:"confirmed"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.SetCreatorConfirmed(r.Context(), id, index, input.Side, input.Confirmed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportCSVHandler handles GET /fill-in-brackets/{bracketID}/csv.
func (h *BracketHandler) ExportCSVHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	csv, err := h.bracketService.ExportCSV(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="fill_in_bracket_%d.csv"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}

// ImportCSVHandler handles POST /fill-in-brackets/{bracketID}/csv. The body
// is the raw CSV text; decoded rows are appended to the bracket's slot list.
func (h *BracketHandler) ImportCSVHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1_048_576))
	if err != nil {
		badRequestResponse(w, r, errors.New("failed to read CSV body"))
		return
	}

	bracket, err := h.bracketService.ImportCSV(r.Context(), id, string(body))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ShareCSVHandler handles POST /fill-in-brackets/{bracketID}/csv/share:
// the export is uploaded to object storage and its public URL returned.
func (h *BracketHandler) ShareCSVHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bracketID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	url, err := h.bracketService.ExportCSVToStorage(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"url": url}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TemplateCSVHandler handles GET /fill-in-brackets/template.csv.
func (h *BracketHandler) TemplateCSVHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="fill_in_bracket_template.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.bracketService.TemplateCSV()))
}
