package shared

import (
	"errors"
	"net/http"

	"github.com/kontobok/kontobok/internal/platform/httpx"
)

// RespondError maps ledger error kinds to problem responses. Unknown
// errors are treated as infrastructure failures and hidden from the
// caller.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrPeriodLocked):
		httpx.Problem(w, http.StatusLocked, "Period Locked", err.Error())
	case errors.Is(err, ErrAlreadyPosted), errors.Is(err, ErrSeriesMismatch):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrEmptyVoucher), errors.Is(err, ErrUnbalanced):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Voucher", err.Error())
	default:
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
