package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/testutil"
)

// TestTWR tests the time-weighted return formula.
//
// WHY: The formula must strip external flows out of performance and must
// degrade to 0 rather than divide by zero when no starting value exists.
func TestTWR(t *testing.T) {
	tests := []struct {
		name       string
		valueStart float64
		valueEnd   float64
		netFlow    float64
		want       float64
	}{
		{"pure growth without flows", 1000, 1100, 0, 10},
		{"flow-funded growth is not performance", 1000, 1500, 500, 0},
		{"flat value is zero return", 100, 100, 0, 0},
		{"loss is negative", 1000, 900, 0, -10},
		{"withdrawal masks a gain", 1000, 600, -500, 10},
		{"zero starting value yields zero", 0, 500, 0, 0},
		{"negative starting value yields zero", -100, 500, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.TWR(tt.valueStart, tt.valueEnd, tt.netFlow)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TWR(%v, %v, %v) = %v, want %v", tt.valueStart, tt.valueEnd, tt.netFlow, got, tt.want)
			}
		})
	}
}

// TestWeightedAverage tests the aggregation mean.
//
// WHY: The client headline number weights per-fund returns by starting
// value; non-positive weights must be excluded, not zeroed in.
func TestWeightedAverage(t *testing.T) {
	t.Run("weights proportionally", func(t *testing.T) {
		got := service.WeightedAverage([]float64{10, 20}, []float64{1000, 3000})
		if math.Abs(got-17.5) > 1e-9 {
			t.Errorf("WeightedAverage = %v, want 17.5", got)
		}
	})

	t.Run("skips non-positive weights", func(t *testing.T) {
		got := service.WeightedAverage([]float64{10, 99, 20}, []float64{1000, 0, 3000})
		if math.Abs(got-17.5) > 1e-9 {
			t.Errorf("WeightedAverage = %v, want 17.5 (zero weight skipped)", got)
		}
	})

	t.Run("no usable weight yields zero", func(t *testing.T) {
		got := service.WeightedAverage([]float64{10, 20}, []float64{0, -1})
		if got != 0 {
			t.Errorf("WeightedAverage = %v, want 0", got)
		}
	})
}

// TestFoldNetFlow tests the flow fold feeding the TWR.
//
// WHY: Only manual allocations within the period are external flows. A
// system-origin credit is internal and must never count as a deposit.
func TestFoldNetFlow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("sums manual flows within the range inclusively", func(t *testing.T) {
		allocations := []model.Allocation{
			{Kind: model.AllocationAssign, Origin: model.OriginManual, AmountUSD: 500, Date: start},
			{Kind: model.AllocationUnassign, Origin: model.OriginManual, AmountUSD: 200, Date: end},
			{Kind: model.AllocationAssign, Origin: model.OriginManual, AmountUSD: 999, Date: start.AddDate(0, -1, 0)},
			{Kind: model.AllocationAssign, Origin: model.OriginSystem, AmountUSD: 350, Date: start.AddDate(0, 1, 0)},
		}

		got := service.FoldNetFlow(allocations, start, end)

		if got.DepositsUSD != 500 {
			t.Errorf("DepositsUSD = %v, want 500", got.DepositsUSD)
		}
		if got.WithdrawalsUSD != 200 {
			t.Errorf("WithdrawalsUSD = %v, want 200", got.WithdrawalsUSD)
		}
		if got.NetUSD != 300 {
			t.Errorf("NetUSD = %v, want 300", got.NetUSD)
		}
	})

	t.Run("empty history folds to zeros", func(t *testing.T) {
		got := service.FoldNetFlow(nil, start, end)
		if got != (model.NetFlow{}) {
			t.Errorf("FoldNetFlow(nil) = %+v, want all zeros", got)
		}
	})
}

// TestReturnService_FundReturn tests the DB-backed fund return.
//
// WHY: The service stitches caller valuations to stored flows; ownership and
// date-range validation sit on this path.
func TestReturnService_FundReturn(t *testing.T) {
	t.Run("computes the period return net of flows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReturnService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)

		testutil.NewAllocation(client.ID, fund.ID).WithAmountUSD(500).
			WithDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).Build(t, db)

		got, err := svc.FundReturn(context.Background(), request.FundReturnRequest{
			ClientID:  client.ID,
			StartDate: "2024-01-01",
			EndDate:   "2024-03-31",
			Valuation: request.FundValuation{FundID: fund.ID, ValueStart: 1000, ValueEnd: 1600},
		})
		if err != nil {
			t.Fatalf("FundReturn() returned unexpected error: %v", err)
		}

		// (1600 - 1000 - 500) / 1000 = 10%.
		if got.Percent != 10 {
			t.Errorf("Percent = %v, want 10", got.Percent)
		}
		if !got.Computable {
			t.Error("Expected Computable = true")
		}
		if got.NetFlow.NetUSD != 500 {
			t.Errorf("NetFlow.NetUSD = %v, want 500", got.NetFlow.NetUSD)
		}
	})

	t.Run("zero starting value reports zero, not an error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReturnService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)

		got, err := svc.FundReturn(context.Background(), request.FundReturnRequest{
			ClientID:  client.ID,
			StartDate: "2024-01-01",
			EndDate:   "2024-03-31",
			Valuation: request.FundValuation{FundID: fund.ID, ValueStart: 0, ValueEnd: 500},
		})
		if err != nil {
			t.Fatalf("FundReturn() returned unexpected error: %v", err)
		}

		if got.Percent != 0 {
			t.Errorf("Percent = %v, want 0", got.Percent)
		}
		if got.Computable {
			t.Error("Expected Computable = false")
		}
	})

	t.Run("inverted range fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReturnService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)

		_, err := svc.FundReturn(context.Background(), request.FundReturnRequest{
			ClientID:  client.ID,
			StartDate: "2024-03-31",
			EndDate:   "2024-01-01",
			Valuation: request.FundValuation{FundID: fund.ID, ValueStart: 1000, ValueEnd: 1100},
		})
		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Errorf("FundReturn() = %v, want ErrInvalidDateRange", err)
		}
	})

	t.Run("fails on foreign fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReturnService(t, db)

		owner := testutil.NewClient().WithName("Owner").Build(t, db)
		other := testutil.NewClient().WithName("Other").Build(t, db)
		fund := testutil.NewFund(owner.ID).Build(t, db)

		_, err := svc.FundReturn(context.Background(), request.FundReturnRequest{
			ClientID:  other.ID,
			StartDate: "2024-01-01",
			EndDate:   "2024-03-31",
			Valuation: request.FundValuation{FundID: fund.ID, ValueStart: 1000, ValueEnd: 1100},
		})
		if !errors.Is(err, apperrors.ErrFundOwnershipMismatch) {
			t.Errorf("FundReturn() = %v, want ErrFundOwnershipMismatch", err)
		}
	})
}

// TestReturnService_ClientReturn tests the cross-fund aggregation.
//
// WHY: The headline percentage must weight by starting value and exclude
// non-computable funds while still listing them.
func TestReturnService_ClientReturn(t *testing.T) {
	t.Run("weights computable funds and reports the rest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReturnService(t, db)

		client := testutil.NewClient().Build(t, db)
		growth := testutil.NewFund(client.ID).WithName("Growth").Build(t, db)
		income := testutil.NewFund(client.ID).WithName("Income").Build(t, db)
		fresh := testutil.NewFund(client.ID).WithName("Fresh").Build(t, db)

		got, err := svc.ClientReturn(context.Background(), request.ClientReturnRequest{
			ClientID:  client.ID,
			StartDate: "2024-01-01",
			EndDate:   "2024-03-31",
			Valuations: []request.FundValuation{
				{FundID: growth.ID, ValueStart: 1000, ValueEnd: 1100},
				{FundID: income.ID, ValueStart: 3000, ValueEnd: 3600},
				{FundID: fresh.ID, ValueStart: 0, ValueEnd: 500},
			},
		})
		if err != nil {
			t.Fatalf("ClientReturn() returned unexpected error: %v", err)
		}

		// 10% at weight 1000, 20% at weight 3000, fresh excluded: 17.5%.
		if math.Abs(got.Percent-17.5) > 1e-9 {
			t.Errorf("Percent = %v, want 17.5", got.Percent)
		}
		if got.TotalValueUSD != 5200 {
			t.Errorf("TotalValueUSD = %v, want 5200", got.TotalValueUSD)
		}
		if len(got.Funds) != 3 {
			t.Errorf("Expected 3 fund entries, got %d", len(got.Funds))
		}
	})

	t.Run("no computable funds yields zero headline", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReturnService(t, db)

		client := testutil.NewClient().Build(t, db)
		fund := testutil.NewFund(client.ID).Build(t, db)

		got, err := svc.ClientReturn(context.Background(), request.ClientReturnRequest{
			ClientID:  client.ID,
			StartDate: "2024-01-01",
			EndDate:   "2024-03-31",
			Valuations: []request.FundValuation{
				{FundID: fund.ID, ValueStart: 0, ValueEnd: 500},
			},
		})
		if err != nil {
			t.Fatalf("ClientReturn() returned unexpected error: %v", err)
		}

		if got.Percent != 0 {
			t.Errorf("Percent = %v, want 0", got.Percent)
		}
	})
}
