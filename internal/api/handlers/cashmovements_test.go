package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/response"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/testutil"
)

// TestCashMovementHandler_CreateCashMovement tests the movement endpoint's
// HTTP surface.
//
// WHY: Status codes are the API contract: 201 on append, 400 on bad input,
// 422 with the structured payload on a gate rejection. Consumers branch on
// these, so they must not drift.
func TestCashMovementHandler_CreateCashMovement(t *testing.T) {
	t.Run("returns 201 for an accepted deposit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewCashMovementHandler(testutil.NewTestCashMovementService(t, db))

		client := testutil.NewClient().Build(t, db)

		body, _ := json.Marshal(map[string]any{
			"clientId": client.ID,
			"date":     "2024-01-15",
			"kind":     "deposit",
			"amount":   1500,
			"currency": "USD",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/cash-movement", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateCashMovement(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var movement model.CashMovement
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&movement)

		if movement.AmountUSD != 1500 {
			t.Errorf("AmountUSD = %v, want 1500", movement.AmountUSD)
		}
	})

	t.Run("returns 422 with figures for a rejected withdrawal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewCashMovementHandler(testutil.NewTestCashMovementService(t, db))

		client := testutil.NewClient().Build(t, db)
		testutil.NewCashMovement(client.ID).WithAmountUSD(200).Build(t, db)

		body, _ := json.Marshal(map[string]any{
			"clientId": client.ID,
			"date":     "2024-01-20",
			"kind":     "withdrawal",
			"amount":   300,
			"currency": "USD",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/cash-movement", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateCashMovement(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("Expected 422, got %d: %s", w.Code, w.Body.String())
		}

		var rejection response.RejectionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&rejection)

		if rejection.AvailableUSD != 200 || rejection.RequestedUSD != 300 || rejection.ShortfallUSD != 100 {
			t.Errorf("rejection = %+v, want available 200 requested 300 shortfall 100", rejection)
		}
	})

	t.Run("returns 400 for an invalid kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewCashMovementHandler(testutil.NewTestCashMovementService(t, db))

		client := testutil.NewClient().Build(t, db)

		body, _ := json.Marshal(map[string]any{
			"clientId": client.ID,
			"date":     "2024-01-15",
			"kind":     "transfer",
			"amount":   100,
			"currency": "USD",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/cash-movement", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateCashMovement(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewCashMovementHandler(testutil.NewTestCashMovementService(t, db))

		body, _ := json.Marshal(map[string]any{
			"clientId": testutil.MakeID(),
			"date":     "2024-01-15",
			"kind":     "deposit",
			"amount":   100,
			"currency": "USD",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/cash-movement", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateCashMovement(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewCashMovementHandler(testutil.NewTestCashMovementService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/cash-movement", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()

		handler.CreateCashMovement(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
