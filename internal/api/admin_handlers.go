package api

import (
	"context"
	"net/http"
)

// Admin endpoints share one request/handler shape: a single int64 value
// applied by a service setter under the admin-caller check.

type valueRequest struct {
	Value int64 `json:"value"`
}

func (h *HandlerProvider) adminSet(
	w http.ResponseWriter,
	r *http.Request,
	set func(ctx context.Context, caller uint64, value int64) error,
) {
	caller, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req valueRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = set(r.Context(), caller, req.Value)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetUnitPriceHandler handles POST /admin/{userId}/price
func (h *HandlerProvider) SetUnitPriceHandler(w http.ResponseWriter, r *http.Request) {
	h.adminSet(w, r, h.svc.SetUnitPrice)
}

// SetFeeRateHandler handles POST /admin/{userId}/fee-rate
func (h *HandlerProvider) SetFeeRateHandler(w http.ResponseWriter, r *http.Request) {
	h.adminSet(w, r, h.svc.SetFeeRate)
}

// SetReimbursementRateHandler handles POST /admin/{userId}/reimbursement-rate
func (h *HandlerProvider) SetReimbursementRateHandler(w http.ResponseWriter, r *http.Request) {
	h.adminSet(w, r, h.svc.SetReimbursementRate)
}

// SetReserveCeilingHandler handles POST /admin/{userId}/reserve-ceiling
func (h *HandlerProvider) SetReserveCeilingHandler(w http.ResponseWriter, r *http.Request) {
	h.adminSet(w, r, h.svc.SetReserveCeiling)
}

// SetPurchaseLimitHandler handles POST /admin/{userId}/purchase-limit
func (h *HandlerProvider) SetPurchaseLimitHandler(w http.ResponseWriter, r *http.Request) {
	h.adminSet(w, r, h.svc.SetPurchaseLimit)
}
