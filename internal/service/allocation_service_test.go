package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/testutil"
)

// TestAllocationService_ApplyAllocation tests manual allocation application.
//
// WHY: Assignments drain client availability, unassignments drain the fund
// float; the two checks gate against different pools and must not be mixed.
func TestAllocationService_ApplyAllocation(t *testing.T) {
	t.Run("records an assignment within available liquidity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		testutil.NewCashMovement(client.ID).WithAmountUSD(1000).Build(t, db)

		allocation, err := svc.ApplyAllocation(context.Background(), request.CreateAllocationRequest{
			ClientID: client.ID,
			FundID:   fund.ID,
			Date:     "2024-01-10",
			Kind:     model.AllocationAssign,
			Amount:   600,
			Currency: "USD",
		})
		if err != nil {
			t.Fatalf("ApplyAllocation() returned unexpected error: %v", err)
		}

		if allocation.Origin != model.OriginManual {
			t.Errorf("Origin = %s, want manual", allocation.Origin)
		}
		if allocation.AmountUSD != 600 {
			t.Errorf("AmountUSD = %v, want 600", allocation.AmountUSD)
		}
	})

	t.Run("rejects an assignment beyond available liquidity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		testutil.NewCashMovement(client.ID).WithAmountUSD(500).Build(t, db)

		_, err := svc.ApplyAllocation(context.Background(), request.CreateAllocationRequest{
			ClientID: client.ID,
			FundID:   fund.ID,
			Date:     "2024-01-10",
			Kind:     model.AllocationAssign,
			Amount:   600,
			Currency: "USD",
		})

		var rejection *apperrors.InsufficientLiquidityError
		if !errors.As(err, &rejection) {
			t.Fatalf("ApplyAllocation() = %v, want InsufficientLiquidityError", err)
		}
		if rejection.AvailableUSD != 500 || rejection.RequestedUSD != 600 {
			t.Errorf("rejection = %+v, want available 500 requested 600", rejection)
		}
	})

	t.Run("rejects an unassignment beyond the fund float", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		security := testutil.NewSecurity().Build(t, db)

		testutil.NewCashMovement(client.ID).WithAmountUSD(1000).Build(t, db)
		testutil.NewAllocation(client.ID, fund.ID).WithAmountUSD(500).Build(t, db)
		testutil.NewTrade(client.ID, fund.ID, security.ID).WithQuantity(30).WithUnitPriceUSD(10).Build(t, db)

		// Float is 500 - 300 = 200; client availability is irrelevant here.
		_, err := svc.ApplyAllocation(context.Background(), request.CreateAllocationRequest{
			ClientID: client.ID,
			FundID:   fund.ID,
			Date:     "2024-01-20",
			Kind:     model.AllocationUnassign,
			Amount:   250,
			Currency: "USD",
		})

		var rejection *apperrors.InsufficientFundBalanceError
		if !errors.As(err, &rejection) {
			t.Fatalf("ApplyAllocation() = %v, want InsufficientFundBalanceError", err)
		}
		if rejection.AvailableUSD != 200 {
			t.Errorf("AvailableUSD = %v, want 200", rejection.AvailableUSD)
		}
	})

	t.Run("normalizes foreign currency before validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		testutil.NewCashMovement(client.ID).WithAmountUSD(500).Build(t, db)
		rate := 1000.0

		allocation, err := svc.ApplyAllocation(context.Background(), request.CreateAllocationRequest{
			ClientID: client.ID,
			FundID:   fund.ID,
			Date:     "2024-01-10",
			Kind:     model.AllocationAssign,
			Amount:   400000,
			Currency: "ARS",
			FxRate:   &rate,
		})
		if err != nil {
			t.Fatalf("ApplyAllocation() returned unexpected error: %v", err)
		}

		if allocation.AmountUSD != 400 {
			t.Errorf("AmountUSD = %v, want 400", allocation.AmountUSD)
		}
	})

	t.Run("fails on foreign fund before the gate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)

		owner := testutil.NewClient().WithName("Owner").Build(t, db)
		other := testutil.NewClient().WithName("Other").Build(t, db)
		fund := testutil.NewFund(owner.ID).Build(t, db)
		testutil.NewCashMovement(other.ID).WithAmountUSD(1000).Build(t, db)

		_, err := svc.ApplyAllocation(context.Background(), request.CreateAllocationRequest{
			ClientID: other.ID,
			FundID:   fund.ID,
			Date:     "2024-01-10",
			Kind:     model.AllocationAssign,
			Amount:   100,
			Currency: "USD",
		})
		if !errors.Is(err, apperrors.ErrFundOwnershipMismatch) {
			t.Errorf("ApplyAllocation() = %v, want ErrFundOwnershipMismatch", err)
		}
	})
}

// TestAllocationService_DeleteAllocation tests allocation deletion.
func TestAllocationService_DeleteAllocation(t *testing.T) {
	t.Run("removes the allocation from subsequent folds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)
		testutil.NewCashMovement(client.ID).WithAmountUSD(1000).Build(t, db)
		allocation := testutil.NewAllocation(client.ID, fund.ID).WithAmountUSD(600).Build(t, db)

		if err := svc.DeleteAllocation(context.Background(), allocation.ID); err != nil {
			t.Fatalf("DeleteAllocation() returned unexpected error: %v", err)
		}

		liquidity, err := testutil.NewTestBalanceService(t, db).ClientLiquidity(context.Background(), client.ID)
		if err != nil {
			t.Fatalf("ClientLiquidity() returned unexpected error: %v", err)
		}
		if liquidity.AllocatedUSD != 0 {
			t.Errorf("AllocatedUSD after delete = %v, want 0", liquidity.AllocatedUSD)
		}
	})

	t.Run("unknown allocation is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)

		err := svc.DeleteAllocation(context.Background(), testutil.MakeID())
		if !errors.Is(err, apperrors.ErrAllocationNotFound) {
			t.Errorf("DeleteAllocation() = %v, want ErrAllocationNotFound", err)
		}
	})
}
