package vouchers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kontobok/kontobok/internal/ledger/shared"
	"github.com/kontobok/kontobok/internal/platform/httpx"
)

// defaultActor is applied at the boundary; the engine itself always
// receives an explicit actor.
const defaultActor = "local"

type rowRequest struct {
	AccountID   string  `json:"account_id" validate:"required"`
	Description *string `json:"description"`
	DebitCents  int64   `json:"debit_cents" validate:"gte=0"`
	CreditCents int64   `json:"credit_cents" validate:"gte=0"`
	VATCode     *string `json:"vat_code"`
}

type attachmentRequest struct {
	RefType  string  `json:"ref_type"`
	RefValue string  `json:"ref_value"`
	Note     *string `json:"note"`
}

type createRequest struct {
	SeriesID     string              `json:"series_id" validate:"required"`
	Date         string              `json:"date" validate:"required,datetime=2006-01-02"`
	Description  string              `json:"description" validate:"required"`
	Counterparty *string             `json:"counterparty"`
	Rows         []rowRequest        `json:"rows" validate:"dive"`
	Attachments  []attachmentRequest `json:"attachments" validate:"dive"`
}

type correctionRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"required"`
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
	vouchers, err := h.service.List(r.Context(), companyID, dateParam(r, "from"), dateParam(r, "to"))
	if err != nil {
		h.logger.Error("list vouchers", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if vouchers == nil {
		vouchers = []Voucher{}
	}
	httpx.JSON(w, http.StatusOK, vouchers)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	voucher, err := h.service.Get(r.Context(), chi.URLParam(r, "voucherID"))
	if err != nil {
		h.respondError(w, "get voucher", err)
		return
	}
	httpx.JSON(w, http.StatusOK, voucher)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	in := CreateInput{
		CompanyID:    companyID,
		SeriesID:     req.SeriesID,
		Date:         req.Date,
		Description:  req.Description,
		Counterparty: req.Counterparty,
		CreatedBy:    defaultActor,
	}
	for _, row := range req.Rows {
		in.Rows = append(in.Rows, RowInput(row))
	}
	for _, attachment := range req.Attachments {
		in.Attachments = append(in.Attachments, AttachmentInput(attachment))
	}
	voucher, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.respondError(w, "create voucher", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, voucher)
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	voucher, err := h.service.Post(r.Context(), chi.URLParam(r, "voucherID"))
	if err != nil {
		h.respondError(w, "post voucher", err)
		return
	}
	httpx.JSON(w, http.StatusOK, voucher)
}

func (h *Handler) Correct(w http.ResponseWriter, r *http.Request) {
	var req correctionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	voucher, err := h.service.Correct(r.Context(), CorrectionInput{
		OriginalVoucherID: chi.URLParam(r, "voucherID"),
		Date:              req.Date,
		Description:       req.Description,
		CreatedBy:         defaultActor,
	})
	if err != nil {
		h.respondError(w, "correct voucher", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, voucher)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	h.logger.Warn(op, slog.Any("error", err))
	shared.RespondError(w, err)
}

func dateParam(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}
