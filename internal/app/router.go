package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kontobok/kontobok/internal/audit"
	"github.com/kontobok/kontobok/internal/export"
	"github.com/kontobok/kontobok/internal/ledger/accounts"
	"github.com/kontobok/kontobok/internal/ledger/periods"
	"github.com/kontobok/kontobok/internal/ledger/reports"
	"github.com/kontobok/kontobok/internal/ledger/series"
	"github.com/kontobok/kontobok/internal/ledger/vouchers"
	"github.com/kontobok/kontobok/internal/masterdata/companies"
	"github.com/kontobok/kontobok/internal/observability"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	CompaniesHandler *companies.Handler
	AccountsHandler  *accounts.Handler
	SeriesHandler    *series.Handler
	PeriodsHandler   *periods.Handler
	VouchersHandler  *vouchers.Handler
	ReportsHandler   *reports.Handler
	ExportHandler    *export.Handler
	AuditHandler     *audit.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router serving the JSON API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/companies", func(r chi.Router) {
		params.CompaniesHandler.MountRoutes(r)

		r.Route("/{companyID}", func(r chi.Router) {
			r.Get("/accounts", params.AccountsHandler.List)
			r.Put("/accounts", params.AccountsHandler.Upsert)
			r.Get("/series", params.SeriesHandler.List)
			r.Get("/period-locks", params.PeriodsHandler.List)
			r.Post("/period-locks", params.PeriodsHandler.Lock)
			r.Get("/vouchers", params.VouchersHandler.List)
			r.Post("/vouchers", params.VouchersHandler.Create)
			r.Route("/reports", func(r chi.Router) {
				r.Get("/vouchers", params.ReportsHandler.VoucherList)
				r.Get("/ledger/{accountID}", params.ReportsHandler.AccountLedger)
			})
			r.Route("/export", params.ExportHandler.MountRoutes)
		})
	})

	r.Route("/vouchers/{voucherID}", func(r chi.Router) {
		r.Get("/", params.VouchersHandler.Get)
		r.Post("/post", params.VouchersHandler.Post)
		r.Post("/correction", params.VouchersHandler.Correct)
	})

	r.Route("/audit", params.AuditHandler.MountRoutes)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
