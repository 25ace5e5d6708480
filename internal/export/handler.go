package export

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kontobok/kontobok/internal/platform/httpx"
)

type exportRequest struct {
	TargetPath string `json:"target_path" validate:"required"`
}

type exportResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/csv", h.CSV)
	r.Post("/sie", h.SIE)
}

func (h *Handler) CSV(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "export csv", h.service.CSV)
}

func (h *Handler) SIE(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "export sie", h.service.SIE)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, Input) (string, error)) {
	var req exportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	message, err := fn(r.Context(), Input{
		CompanyID:  chi.URLParam(r, "companyID"),
		TargetPath: req.TargetPath,
	})
	if err != nil {
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, exportResponse{Message: message})
}
