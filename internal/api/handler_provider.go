package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/accounts"
	"github.com/deborahajagbe/clarity-edu-platform/internal/services/marketplace"
	"github.com/go-chi/chi/v5"
)

// HandlerProvider wraps the marketplace service and exposes HTTP handlers.
type HandlerProvider struct {
	svc *marketplace.Service
}

// NewHandler returns a new handler provider.
func NewHandler(svc *marketplace.Service) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseUserIDFromPath reads `{userId}` from chi routes like:
//
//	GET  /user/{userId}/balances
//	POST /admin/{userId}/price
func parseUserIDFromPath(r *http.Request) (uint64, error) {
	idStr := chi.URLParam(r, "userId")
	if idStr == "" {
		return 0, fmt.Errorf("missing userId")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId: %w", err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid userId: must be positive")
	}

	return id, nil
}

// decodeBody decodes a JSON request body into dst, capping size and rejecting
// unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON")
	}

	return nil
}

// writeOpError maps domain failures onto HTTP statuses: bad parameters are
// 400, identity failures 403, business rejections 409, everything else 500.
func writeOpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, marketplace.ErrInvalidQuantity),
		errors.Is(err, marketplace.ErrInvalidPrice),
		errors.Is(err, marketplace.ErrInvalidFee),
		errors.Is(err, marketplace.ErrInvalidReserve):
		writeError(w, http.StatusBadRequest, userFacing(err))
	case errors.Is(err, marketplace.ErrAdminOnly):
		writeError(w, http.StatusForbidden, userFacing(err))
	case errors.Is(err, marketplace.ErrSameUserTransaction),
		errors.Is(err, marketplace.ErrReserveExceeded),
		errors.Is(err, marketplace.ErrRefundUnavailable),
		errors.Is(err, accounts.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, userFacing(err))
	default:
		slog.Error("marketplace operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// userFacing strips wrapping context down to the sentinel's message, so
// clients get a stable string and internals stay in the logs.
func userFacing(err error) string {
	for _, sentinel := range []error{
		marketplace.ErrAdminOnly,
		marketplace.ErrInvalidPrice,
		marketplace.ErrInvalidFee,
		marketplace.ErrInvalidReserve,
		marketplace.ErrInvalidQuantity,
		marketplace.ErrSameUserTransaction,
		marketplace.ErrRefundUnavailable,
		marketplace.ErrReserveExceeded,
		accounts.ErrInsufficientBalance,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return err.Error()
}
