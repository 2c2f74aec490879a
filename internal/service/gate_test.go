package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/testutil"
)

// TestGateService_ValidateWithdrawal tests the withdrawal sufficiency check.
//
// WHY: A rejected check must carry the exact available amount and shortfall,
// and the decision must ride on freshly folded liquidity.
func TestGateService_ValidateWithdrawal(t *testing.T) {
	t.Run("accepts a withdrawal within available liquidity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)
		testutil.NewCashMovement(client.ID).WithAmountUSD(1000).Build(t, db)

		result, err := gate.ValidateWithdrawal(context.Background(), client.ID, 1000)
		if err != nil {
			t.Fatalf("ValidateWithdrawal() returned unexpected error: %v", err)
		}

		if !result.Valid {
			t.Errorf("Expected valid result, got %+v", result)
		}
	})

	t.Run("rejects with available and shortfall figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		testutil.NewCashMovement(client.ID).WithAmountUSD(1000).Build(t, db)
		testutil.NewAllocation(client.ID, fund.ID).WithAmountUSD(700).Build(t, db)

		result, err := gate.ValidateWithdrawal(context.Background(), client.ID, 500)
		if err != nil {
			t.Fatalf("ValidateWithdrawal() returned unexpected error: %v", err)
		}

		if result.Valid {
			t.Fatalf("Expected rejection, got %+v", result)
		}
		if result.AvailableUSD != 300 {
			t.Errorf("AvailableUSD = %v, want 300", result.AvailableUSD)
		}
		if result.ShortfallUSD != 200 {
			t.Errorf("ShortfallUSD = %v, want 200", result.ShortfallUSD)
		}
	})

	t.Run("non-positive amount is an error, not a rejection", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)

		_, err := gate.ValidateWithdrawal(context.Background(), client.ID, 0)
		if !errors.Is(err, apperrors.ErrInvalidAmount) {
			t.Errorf("ValidateWithdrawal(0) = %v, want ErrInvalidAmount", err)
		}
	})
}

// TestGateService_ValidateAllocation tests the assignment sufficiency check.
//
// WHY: Assigning consumes client-level availability. A fund's own float must
// play no role in whether an assignment passes.
func TestGateService_ValidateAllocation(t *testing.T) {
	t.Run("rejects assignment beyond available liquidity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)
		testutil.NewCashMovement(client.ID).WithAmountUSD(400).Build(t, db)

		result, err := gate.ValidateAllocation(context.Background(), client.ID, 401)
		if err != nil {
			t.Fatalf("ValidateAllocation() returned unexpected error: %v", err)
		}

		if result.Valid {
			t.Errorf("Expected rejection, got %+v", result)
		}
		if result.ShortfallUSD != 1 {
			t.Errorf("ShortfallUSD = %v, want 1", result.ShortfallUSD)
		}
	})

	t.Run("accepts exactly the available amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)
		testutil.NewCashMovement(client.ID).WithAmountUSD(400).Build(t, db)

		result, err := gate.ValidateAllocation(context.Background(), client.ID, 400)
		if err != nil {
			t.Fatalf("ValidateAllocation() returned unexpected error: %v", err)
		}

		if !result.Valid {
			t.Errorf("Expected acceptance at the boundary, got %+v", result)
		}
	})
}

// TestGateService_ValidateUnassignment tests the fund-to-client transfer check.
//
// WHY: Cash already invested cannot leave the fund; only the float can.
func TestGateService_ValidateUnassignment(t *testing.T) {
	t.Run("rejects unassignment beyond the fund float", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		security := testutil.NewSecurity().Build(t, db)

		testutil.NewAllocation(client.ID, fund.ID).WithAmountUSD(500).Build(t, db)
		testutil.NewTrade(client.ID, fund.ID, security.ID).WithQuantity(30).WithUnitPriceUSD(10).Build(t, db)

		// Float is 500 - 300 = 200.
		result, err := gate.ValidateUnassignment(context.Background(), client.ID, fund.ID, 250)
		if err != nil {
			t.Fatalf("ValidateUnassignment() returned unexpected error: %v", err)
		}

		if result.Valid {
			t.Fatalf("Expected rejection, got %+v", result)
		}
		if result.AvailableUSD != 200 {
			t.Errorf("AvailableUSD = %v, want 200", result.AvailableUSD)
		}
	})

	t.Run("fails on foreign fund before any balance check", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		owner := testutil.NewClient().WithName("Owner").Build(t, db)
		other := testutil.NewClient().WithName("Other").Build(t, db)
		fund := testutil.NewFund(owner.ID).Build(t, db)

		_, err := gate.ValidateUnassignment(context.Background(), other.ID, fund.ID, 100)
		if !errors.Is(err, apperrors.ErrFundOwnershipMismatch) {
			t.Errorf("ValidateUnassignment() = %v, want ErrFundOwnershipMismatch", err)
		}
	})
}

// TestGateService_ValidatePurchase tests the buy sufficiency check.
//
// WHY: Purchases spend the fund float, which includes recovered sale
// proceeds. The check must see recovered cash as spendable.
func TestGateService_ValidatePurchase(t *testing.T) {
	t.Run("recovered cash re-enters purchasing power", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		security := testutil.NewSecurity().Build(t, db)

		testutil.NewAllocation(client.ID, fund.ID).WithAmountUSD(750).Build(t, db)
		testutil.NewTrade(client.ID, fund.ID, security.ID).WithQuantity(30).WithUnitPriceUSD(10).Build(t, db)
		sale := testutil.NewTrade(client.ID, fund.ID, security.ID).Sell().WithQuantity(25).WithUnitPriceUSD(14).Build(t, db)
		testutil.NewAllocation(client.ID, fund.ID).WithAmountUSD(350).SystemOrigin(sale.ID).Build(t, db)

		// Allocated folds both origins: 750 + 350 = 1100.
		// Available = 1100 - 300 invested + 350 recovered = 1150.
		result, err := gate.ValidatePurchase(context.Background(), client.ID, fund.ID, 1150)
		if err != nil {
			t.Fatalf("ValidatePurchase() returned unexpected error: %v", err)
		}
		if !result.Valid {
			t.Errorf("Expected acceptance, got %+v", result)
		}

		result, err = gate.ValidatePurchase(context.Background(), client.ID, fund.ID, 1151)
		if err != nil {
			t.Fatalf("ValidatePurchase() returned unexpected error: %v", err)
		}
		if result.Valid {
			t.Errorf("Expected rejection above the float, got %+v", result)
		}
	})

	t.Run("fails on foreign fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		owner := testutil.NewClient().WithName("Owner").Build(t, db)
		other := testutil.NewClient().WithName("Other").Build(t, db)
		fund := testutil.NewFund(owner.ID).Build(t, db)

		_, err := gate.ValidatePurchase(context.Background(), other.ID, fund.ID, 100)
		if !errors.Is(err, apperrors.ErrFundOwnershipMismatch) {
			t.Errorf("ValidatePurchase() = %v, want ErrFundOwnershipMismatch", err)
		}
	})
}

// TestGateService_ValidateSale tests the sell check.
//
// WHY: A sale never consumes liquidity, but selling more than the fund holds
// would mint phantom positions.
func TestGateService_ValidateSale(t *testing.T) {
	t.Run("accepts selling up to the held quantity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		security := testutil.NewSecurity().Build(t, db)

		testutil.NewTrade(client.ID, fund.ID, security.ID).WithQuantity(30).Build(t, db)
		testutil.NewTrade(client.ID, fund.ID, security.ID).Sell().WithQuantity(10).Build(t, db)

		result, err := gate.ValidateSale(context.Background(), client.ID, fund.ID, security.ID, 20)
		if err != nil {
			t.Fatalf("ValidateSale() returned unexpected error: %v", err)
		}
		if !result.Valid {
			t.Errorf("Expected acceptance, got %+v", result)
		}
	})

	t.Run("rejects selling more than held", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		security := testutil.NewSecurity().Build(t, db)

		testutil.NewTrade(client.ID, fund.ID, security.ID).WithQuantity(30).Build(t, db)

		_, err := gate.ValidateSale(context.Background(), client.ID, fund.ID, security.ID, 31)
		if !errors.Is(err, apperrors.ErrInsufficientPosition) {
			t.Errorf("ValidateSale() = %v, want ErrInsufficientPosition", err)
		}
	})

	t.Run("positions are tracked per security", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gate := testutil.NewTestGateService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		held := testutil.NewSecurity().WithName("HELD").Build(t, db)
		empty := testutil.NewSecurity().WithName("EMPTY").Build(t, db)

		testutil.NewTrade(client.ID, fund.ID, held.ID).WithQuantity(30).Build(t, db)

		_, err := gate.ValidateSale(context.Background(), client.ID, fund.ID, empty.ID, 1)
		if !errors.Is(err, apperrors.ErrInsufficientPosition) {
			t.Errorf("ValidateSale() on empty position = %v, want ErrInsufficientPosition", err)
		}
	})
}
