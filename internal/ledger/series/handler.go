package series

import (
	"log/slog"
	"net/http"

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	out, err := h.service.ListByCompany(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list series", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if out == nil {
		out = []Series{}
	}
	httpx.JSON(w, http.StatusOK, out)
}
