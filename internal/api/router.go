package api

import (
	"net/http"

	"github.com/deborahajagbe/clarity-edu-platform/internal/services/marketplace"
	"github.com/go-chi/chi/v5"
)

// NewRouter constructs the router with all API endpoints registered.
func NewRouter(svc *marketplace.Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/platform/config", h.GetConfigHandler)

	r.Get("/user/{userId}/balances", h.GetBalancesHandler)
	r.Get("/user/{userId}/listing", h.GetListingHandler)
	r.Post("/user/{userId}/listing", h.ListResourcesHandler)
	r.Post("/user/{userId}/listing/remove", h.RemoveResourcesHandler)
	r.Post("/user/{userId}/purchase", h.PurchaseHandler)
	r.Post("/user/{userId}/reimbursement", h.ReimbursementHandler)

	r.Post("/admin/{userId}/price", h.SetUnitPriceHandler)
	r.Post("/admin/{userId}/fee-rate", h.SetFeeRateHandler)
	r.Post("/admin/{userId}/reimbursement-rate", h.SetReimbursementRateHandler)
	r.Post("/admin/{userId}/reserve-ceiling", h.SetReserveCeilingHandler)
	r.Post("/admin/{userId}/purchase-limit", h.SetPurchaseLimitHandler)

	return r
}
