package reports

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/kontobok/kontobok/internal/platform/httpx"
)

// Handler serves report projections. Identical concurrent requests
// collapse into a single projection build via singleflight.
type Handler struct {
	logger  *slog.Logger
	service *Service
	group   singleflight.Group
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) VoucherList(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	from, to := dateParam(r, "from"), dateParam(r, "to")
	key := flightKey("vouchers", companyID, from, to)
	result, err := h.build(r, key, func() (any, error) {
		return h.service.VoucherList(r.Context(), companyID, from, to)
	})
	if err != nil {
		h.logger.Error("report voucher list", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) AccountLedger(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	accountID := chi.URLParam(r, "accountID")
	from, to := dateParam(r, "from"), dateParam(r, "to")
	key := flightKey("ledger", companyID, accountID, from, to)
	result, err := h.build(r, key, func() (any, error) {
		return h.service.LedgerForAccount(r.Context(), companyID, accountID, from, to)
	})
	if err != nil {
		h.logger.Error("report account ledger", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) build(r *http.Request, key string, fn func() (any, error)) (any, error) {
	resultChan := h.group.DoChan(key, func() (any, error) {
		return fn()
	})
	select {
	case <-r.Context().Done():
		return nil, r.Context().Err()
	case res := <-resultChan:
		return res.Val, res.Err
	}
}

func flightKey(parts ...any) string {
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			tokens = append(tokens, v)
		case *string:
			if v == nil {
				tokens = append(tokens, "-")
			} else {
				tokens = append(tokens, *v)
			}
		}
	}
	return strings.Join(tokens, ":")
}

func dateParam(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}
