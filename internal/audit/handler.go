package audit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kontobok/kontobok/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Timeline)
}

func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if companyID == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "company query parameter is required")
		return
	}
	entries, err := h.service.Timeline(r.Context(), companyID, limit)
	if err != nil {
		h.logger.Error("audit timeline", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	httpx.JSON(w, http.StatusOK, entries)
}
