package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListMovies handles GET /api/movies (public)
func (h *CatalogHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	page := paginationFromQuery(r)

	movies, err := h.service.ListMovies(r.Context(), page)
	if err != nil {
		writeServiceError(w, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// ListTheaters handles GET /api/theaters (public)
func (h *CatalogHandler) ListTheaters(w http.ResponseWriter, r *http.Request) {
	page := paginationFromQuery(r)

	theaters, err := h.service.ListTheaters(r.Context(), page)
	if err != nil {
		writeServiceError(w, h.log, err, "list theaters")
		return
	}

	utils.ResponseSuccess(w, "success", theaters)
}

// CreateMovie handles POST /api/admin/movies (admin only)
func (h *CatalogHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "success", movie)
}

// CreateTheater handles POST /api/admin/theaters (admin only)
func (h *CatalogHandler) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTheaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	theater, err := h.service.CreateTheater(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create theater")
		return
	}

	utils.ResponseCreated(w, "success", theater)
}

// CreateHall handles POST /api/admin/halls (admin only)
func (h *CatalogHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hall, err := h.service.CreateHall(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "success", hall)
}

// paginationFromQuery parse page & per_page dari query string
func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
