package e2etests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

// These tests run against a live API on baseURL with migrations and the DEV
// seed applied (platform account 1 funded, user 2 holding resources, user 3
// holding currency). Assertions are delta-based so reruns against the same
// database stay green.
const (
	baseURL   = "http://localhost:8080"
	timeout   = 5 * time.Second
	waitReady = 20 * time.Second

	adminID    = 1
	providerID = 2
	buyerID    = 3
)

var httpClient = &http.Client{Timeout: timeout}

type balances struct {
	Resource int64 `json:"resourceBalance"`
	Currency int64 `json:"currencyBalance"`
}

type listing struct {
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
}

type platformConfig struct {
	UnitPrice                int64 `json:"unitPrice"`
	FeeRatePercent           int64 `json:"feeRatePercent"`
	ReimbursementRatePercent int64 `json:"reimbursementRatePercent"`
}

func waitUntilReady(t *testing.T) {
	t.Helper()

	deadline := time.Now().Add(waitReady)
	for time.Now().Before(deadline) {
		resp, err := httpClient.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(250 * time.Millisecond)
	}

	t.Fatalf("service not ready after %s", waitReady)
}

func getJSON(t *testing.T, path string, dst any) {
	t.Helper()

	resp, err := httpClient.Get(baseURL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: status %d (%s)", path, resp.StatusCode, body)
	}

	err = json.NewDecoder(resp.Body).Decode(dst)
	if err != nil {
		t.Fatalf("GET %s: decode: %v", path, err)
	}
}

func postJSON(t *testing.T, path string, payload any) (int, string) {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	return resp.StatusCode, string(body)
}

func getBalances(t *testing.T, userID int) balances {
	t.Helper()

	var b balances
	getJSON(t, fmt.Sprintf("/user/%d/balances", userID), &b)

	return b
}

func getListing(t *testing.T, userID int) listing {
	t.Helper()

	var l listing
	getJSON(t, fmt.Sprintf("/user/%d/listing", userID), &l)

	return l
}

func TestE2E_MarketplaceFlow(t *testing.T) {
	waitUntilReady(t)

	var cfg platformConfig
	getJSON(t, "/platform/config", &cfg)

	const (
		listQty   = int64(10)
		listPrice = int64(4)
		buyQty    = int64(5)
	)

	provBefore := getBalances(t, providerID)
	buyerBefore := getBalances(t, buyerID)
	platBefore := getBalances(t, adminID)
	listedBefore := getListing(t, providerID)

	t.Run("provider_lists_resources", func(t *testing.T) {
		code, body := postJSON(t, fmt.Sprintf("/user/%d/listing", providerID),
			map[string]any{"quantity": listQty, "price": listPrice})
		if code != http.StatusOK {
			t.Fatalf("list: want 200, got %d (%s)", code, body)
		}

		got := getListing(t, providerID)
		if got.Quantity != listedBefore.Quantity+listQty {
			t.Fatalf("listed quantity: want %d, got %d", listedBefore.Quantity+listQty, got.Quantity)
		}
		if got.UnitPrice != listPrice {
			t.Fatalf("listed price: want %d, got %d", listPrice, got.UnitPrice)
		}
	})

	t.Run("buyer_acquires_from_provider", func(t *testing.T) {
		cost := buyQty * listPrice
		fee := cost * cfg.FeeRatePercent / 100

		code, body := postJSON(t, fmt.Sprintf("/user/%d/purchase", buyerID),
			map[string]any{"providerId": providerID, "quantity": buyQty})
		if code != http.StatusOK {
			t.Fatalf("purchase: want 200, got %d (%s)", code, body)
		}

		buyer := getBalances(t, buyerID)
		prov := getBalances(t, providerID)
		plat := getBalances(t, adminID)

		if buyer.Currency != buyerBefore.Currency-cost-fee {
			t.Fatalf("buyer currency: want %d, got %d", buyerBefore.Currency-cost-fee, buyer.Currency)
		}
		if buyer.Resource != buyerBefore.Resource+buyQty {
			t.Fatalf("buyer resource: want %d, got %d", buyerBefore.Resource+buyQty, buyer.Resource)
		}
		if prov.Resource != provBefore.Resource-buyQty {
			t.Fatalf("provider resource: want %d, got %d", provBefore.Resource-buyQty, prov.Resource)
		}
		if prov.Currency != provBefore.Currency+cost {
			t.Fatalf("provider currency: want %d, got %d", provBefore.Currency+cost, prov.Currency)
		}
		if plat.Currency != platBefore.Currency+fee {
			t.Fatalf("platform currency: want %d, got %d", platBefore.Currency+fee, plat.Currency)
		}

		got := getListing(t, providerID)
		if got.Quantity != listedBefore.Quantity+listQty-buyQty {
			t.Fatalf("listing after purchase: want %d, got %d",
				listedBefore.Quantity+listQty-buyQty, got.Quantity)
		}
	})

	t.Run("provider_removes_remaining_batch", func(t *testing.T) {
		before := getListing(t, providerID)

		code, body := postJSON(t, fmt.Sprintf("/user/%d/listing/remove", providerID),
			map[string]any{"quantity": listQty - buyQty})
		if code != http.StatusOK {
			t.Fatalf("remove: want 200, got %d (%s)", code, body)
		}

		got := getListing(t, providerID)
		if got.Quantity != before.Quantity-(listQty-buyQty) {
			t.Fatalf("listing after remove: want %d, got %d",
				before.Quantity-(listQty-buyQty), got.Quantity)
		}
		if got.UnitPrice != before.UnitPrice {
			t.Fatalf("remove must preserve price: want %d, got %d", before.UnitPrice, got.UnitPrice)
		}
	})

	t.Run("same_user_purchase_conflict", func(t *testing.T) {
		code, _ := postJSON(t, fmt.Sprintf("/user/%d/purchase", providerID),
			map[string]any{"providerId": providerID, "quantity": 1})
		if code != http.StatusConflict {
			t.Fatalf("self purchase: want 409, got %d", code)
		}
	})

	t.Run("zero_quantity_rejected", func(t *testing.T) {
		code, _ := postJSON(t, fmt.Sprintf("/user/%d/listing", providerID),
			map[string]any{"quantity": 0, "price": 5})
		if code != http.StatusBadRequest {
			t.Fatalf("zero quantity: want 400, got %d", code)
		}
	})
}

func TestE2E_Reimbursement(t *testing.T) {
	waitUntilReady(t)

	var cfg platformConfig
	getJSON(t, "/platform/config", &cfg)

	const qty = int64(1)
	payout := qty * cfg.UnitPrice * cfg.ReimbursementRatePercent / 100

	reqBefore := getBalances(t, providerID)
	platBefore := getBalances(t, adminID)

	if reqBefore.Resource < qty {
		t.Skipf("user %d out of resources to reimburse", providerID)
	}
	if platBefore.Currency < payout {
		t.Skipf("platform cannot fund payout of %d", payout)
	}

	code, body := postJSON(t, fmt.Sprintf("/user/%d/reimbursement", providerID),
		map[string]any{"quantity": qty})
	if code != http.StatusOK {
		t.Fatalf("reimbursement: want 200, got %d (%s)", code, body)
	}

	req := getBalances(t, providerID)
	plat := getBalances(t, adminID)

	if req.Resource != reqBefore.Resource-qty {
		t.Fatalf("requester resource: want %d, got %d", reqBefore.Resource-qty, req.Resource)
	}
	if req.Currency != reqBefore.Currency+payout {
		t.Fatalf("requester currency: want %d, got %d", reqBefore.Currency+payout, req.Currency)
	}
	if plat.Currency != platBefore.Currency-payout {
		t.Fatalf("platform currency: want %d, got %d", platBefore.Currency-payout, plat.Currency)
	}
	if plat.Resource != platBefore.Resource+qty {
		t.Fatalf("platform resource: want %d, got %d", platBefore.Resource+qty, plat.Resource)
	}
}

func TestE2E_AdminGuards(t *testing.T) {
	waitUntilReady(t)

	t.Run("non_admin_forbidden", func(t *testing.T) {
		code, _ := postJSON(t, fmt.Sprintf("/admin/%d/purchase-limit", buyerID),
			map[string]any{"value": 10})
		if code != http.StatusForbidden {
			t.Fatalf("non-admin setter: want 403, got %d", code)
		}
	})

	t.Run("admin_sets_purchase_limit", func(t *testing.T) {
		code, body := postJSON(t, fmt.Sprintf("/admin/%d/purchase-limit", adminID),
			map[string]any{"value": 10})
		if code != http.StatusOK {
			t.Fatalf("admin setter: want 200, got %d (%s)", code, body)
		}
	})

	t.Run("fee_rate_above_100_rejected", func(t *testing.T) {
		code, _ := postJSON(t, fmt.Sprintf("/admin/%d/fee-rate", adminID),
			map[string]any{"value": 101})
		if code != http.StatusBadRequest {
			t.Fatalf("fee 101: want 400, got %d", code)
		}
	})

	t.Run("empty_body_rejected", func(t *testing.T) {
		resp, err := httpClient.Post(
			baseURL+fmt.Sprintf("/admin/%d/price", adminID), "application/json", nil)
		if err != nil {
			t.Fatalf("POST empty: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("empty body: want 400, got %d", resp.StatusCode)
		}
	})
}
