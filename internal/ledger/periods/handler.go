package periods

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kontobok/kontobok/internal/platform/httpx"
)

const defaultActor = "local"

type lockRequest struct {
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" validate:"required,datetime=2006-01-02"`
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
	locks, err := h.service.ListByCompany(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list period locks", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if locks == nil {
		locks = []PeriodLock{}
	}
	httpx.JSON(w, http.StatusOK, locks)
}

func (h *Handler) Lock(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	var req lockRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	lock, err := h.service.Lock(r.Context(), LockInput{
		CompanyID:   companyID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		LockedBy:    defaultActor,
	})
	if err != nil {
		h.logger.Error("lock period", slog.Any("error", err))
		httpx.Problem(w, http.StatusUnprocessableEntity, "Lock Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, lock)
}
