package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScreeningHandler struct {
	service usecase.ScreeningService
	log     *zap.Logger
}

func NewScreeningHandler(service usecase.ScreeningService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log.With(zap.String("handler", "screening")),
	}
}

// ListScreenings handles GET /api/screenings (public)
func (h *ScreeningHandler) ListScreenings(w http.ResponseWriter, r *http.Request) {
	page := paginationFromQuery(r)

	screenings, err := h.service.ListScreenings(r.Context(), page)
	if err != nil {
		writeServiceError(w, h.log, err, "list screenings")
		return
	}

	utils.ResponseSuccess(w, "success", screenings)
}

// GetScreening handles GET /api/screenings/{id} (public)
func (h *ScreeningHandler) GetScreening(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	screening, err := h.service.GetScreening(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get screening")
		return
	}

	utils.ResponseSuccess(w, "success", screening)
}

// SeatMap handles GET /api/screenings/{id}/seats (public)
func (h *ScreeningHandler) SeatMap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	seatMap, err := h.service.SeatMap(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seatMap)
}

// CreateScreening handles POST /api/admin/screenings (admin only)
func (h *ScreeningHandler) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	screening, err := h.service.CreateScreening(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create screening")
		return
	}

	utils.ResponseCreated(w, "success", screening)
}

// DeleteScreening handles DELETE /api/admin/screenings/{id} (admin only)
func (h *ScreeningHandler) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	if err := h.service.DeleteScreening(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete screening")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
