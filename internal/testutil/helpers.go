package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/fxapi"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestBalanceService(t *testing.T, db *sql.DB) *service.BalanceService {
	t.Helper()

	return service.NewBalanceService(
		repository.NewCashMovementRepository(db),
		repository.NewAllocationRepository(db),
		repository.NewTradeRepository(db),
		repository.NewFundRepository(db),
	)
}

func NewTestGateService(t *testing.T, db *sql.DB) *service.GateService {
	t.Helper()

	return service.NewGateService(
		NewTestBalanceService(t, db),
		repository.NewFundRepository(db),
		repository.NewTradeRepository(db),
	)
}

func NewTestFxService(t *testing.T, db *sql.DB) *service.FxService {
	t.Helper()

	fxService, err := service.NewFxService(
		repository.NewFxRateRepository(db),
		repository.NewFxConfigRepository(db),
		fxapi.NewClient(),
		"",
	)
	if err != nil {
		t.Fatalf("Failed to create fx service: %v", err)
	}

	return fxService
}

func NewTestCashMovementService(t *testing.T, db *sql.DB) *service.CashMovementService {
	t.Helper()

	return service.NewCashMovementService(
		repository.NewCashMovementRepository(db),
		repository.NewClientRepository(db),
		NewTestGateService(t, db),
		NewTestFxService(t, db),
		service.NewClientLocker(),
	)
}

func NewTestAllocationService(t *testing.T, db *sql.DB) *service.AllocationService {
	t.Helper()

	return service.NewAllocationService(
		repository.NewAllocationRepository(db),
		repository.NewFundRepository(db),
		NewTestGateService(t, db),
		NewTestFxService(t, db),
		service.NewClientLocker(),
	)
}

func NewTestTradeService(t *testing.T, db *sql.DB) *service.TradeService {
	t.Helper()

	return service.NewTradeService(
		db,
		repository.NewTradeRepository(db),
		repository.NewAllocationRepository(db),
		repository.NewSecurityRepository(db),
		NewTestGateService(t, db),
		NewTestFxService(t, db),
		service.NewClientLocker(),
	)
}

func NewTestReturnService(t *testing.T, db *sql.DB) *service.ReturnService {
	t.Helper()

	return service.NewReturnService(
		repository.NewAllocationRepository(db),
		repository.NewFundRepository(db),
	)
}
