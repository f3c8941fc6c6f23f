package api

import (
	"net/http"
)

// GetBalancesHandler handles GET /user/{userId}/balances
func (h *HandlerProvider) GetBalancesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	bal, err := h.svc.GetBalances(r.Context(), userID)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":          userID,
		"resourceBalance": bal.Resource,
		"currencyBalance": bal.Currency,
	})
}

// GetListingHandler handles GET /user/{userId}/listing
func (h *HandlerProvider) GetListingHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	listing, err := h.svc.GetListing(r.Context(), userID)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":    userID,
		"quantity":  listing.Quantity,
		"unitPrice": listing.UnitPrice,
	})
}

// GetConfigHandler handles GET /platform/config
func (h *HandlerProvider) GetConfigHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.GetConfig(r.Context())
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"unitPrice":                cfg.UnitPrice,
		"feeRatePercent":           cfg.FeeRatePercent,
		"reimbursementRatePercent": cfg.ReimbursementRatePercent,
	})
}

type listRequest struct {
	Quantity int64 `json:"quantity"`
	Price    int64 `json:"price"`
}

// ListResourcesHandler handles POST /user/{userId}/listing
func (h *HandlerProvider) ListResourcesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req listRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.ListResources(r.Context(), userID, req.Quantity, req.Price)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type removeRequest struct {
	Quantity int64 `json:"quantity"`
}

// RemoveResourcesHandler handles POST /user/{userId}/listing/remove
func (h *HandlerProvider) RemoveResourcesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req removeRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.RemoveResources(r.Context(), userID, req.Quantity)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type purchaseRequest struct {
	ProviderID uint64 `json:"providerId"`
	Quantity   int64  `json:"quantity"`
}

// PurchaseHandler handles POST /user/{userId}/purchase
func (h *HandlerProvider) PurchaseHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req purchaseRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ProviderID == 0 {
		writeError(w, http.StatusBadRequest, "providerId required")
		return
	}

	err = h.svc.AcquireResources(r.Context(), userID, req.ProviderID, req.Quantity)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type reimbursementRequest struct {
	Quantity int64 `json:"quantity"`
}

// ReimbursementHandler handles POST /user/{userId}/reimbursement
func (h *HandlerProvider) ReimbursementHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req reimbursementRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.RequestReimbursement(r.Context(), userID, req.Quantity)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
