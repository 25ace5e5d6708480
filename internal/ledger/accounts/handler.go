package accounts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kontobok/kontobok/internal/platform/httpx"
)

const defaultActor = "local"

type upsertRequest struct {
	ID       *string `json:"id"`
	Number   int64   `json:"number" validate:"required,gt=0"`
	Name     string  `json:"name" validate:"required"`
	Type     string  `json:"type" validate:"required"`
	VATCode  *string `json:"vat_code"`
	IsActive bool    `json:"is_active"`
}

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	out, err := h.service.ListByCompany(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list accounts", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if out == nil {
		out = []Account{}
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	var req upsertRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	account, err := h.service.Upsert(r.Context(), UpsertInput{
		ID:        req.ID,
		CompanyID: companyID,
		Number:    req.Number,
		Name:      req.Name,
		Type:      req.Type,
		VATCode:   req.VATCode,
		IsActive:  req.IsActive,
		Actor:     defaultActor,
	})
	if err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Upsert Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}
