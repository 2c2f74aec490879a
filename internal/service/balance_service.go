package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
)

// BalanceService derives liquidity state from raw event history. Nothing is
// cached: every call re-reads and re-folds the backing collections, so the
// validation gate can never see stale numbers.
type BalanceService struct {
	cashMovementRepo *repository.CashMovementRepository
	allocationRepo   *repository.AllocationRepository
	tradeRepo        *repository.TradeRepository
	fundRepo         *repository.FundRepository
}

// NewBalanceService creates a new BalanceService with the provided repository dependencies.
func NewBalanceService(
	cashMovementRepo *repository.CashMovementRepository,
	allocationRepo *repository.AllocationRepository,
	tradeRepo *repository.TradeRepository,
	fundRepo *repository.FundRepository,
) *BalanceService {
	return &BalanceService{
		cashMovementRepo: cashMovementRepo,
		allocationRepo:   allocationRepo,
		tradeRepo:        tradeRepo,
		fundRepo:         fundRepo,
	}
}

// FoldClientLiquidity folds a client's full cash movement and allocation
// history into the derived liquidity figures. The fold is an unordered sum:
// event order never changes the result. No history folds to all zeros.
//
// Only manual-origin allocations consume client-level availability; cash a
// sale recovers stays inside the fund's float and never returns to the
// client's unallocated pool.
func FoldClientLiquidity(movements []model.CashMovement, allocations []model.Allocation) model.ClientLiquidity {
	var total, allocated float64

	for _, m := range movements {
		switch m.Kind {
		case model.MovementDeposit:
			total += m.AmountUSD
		case model.MovementWithdrawal:
			total -= m.AmountUSD
		}
	}

	for _, a := range allocations {
		if a.Origin != model.OriginManual {
			continue
		}
		switch a.Kind {
		case model.AllocationAssign:
			allocated += a.AmountUSD
		case model.AllocationUnassign:
			allocated -= a.AmountUSD
		}
	}

	return model.ClientLiquidity{
		TotalUSD:     total,
		AllocatedUSD: allocated,
		AvailableUSD: total - allocated,
	}
}

// FoldFundBalance folds a fund's full allocation and trade history into its
// derived balance. Allocations of both origins participate identically in the
// allocated figure; the origin tag only matters for display and for the
// client-level fold.
func FoldFundBalance(allocations []model.Allocation, trades []model.Trade) model.FundBalance {
	var allocated, invested, recovered float64

	for _, a := range allocations {
		switch a.Kind {
		case model.AllocationAssign:
			allocated += a.AmountUSD
		case model.AllocationUnassign:
			allocated -= a.AmountUSD
		}
	}

	for _, t := range trades {
		switch t.Side {
		case model.TradeBuy:
			invested += t.CostUSD()
		case model.TradeSell:
			recovered += t.CostUSD()
		}
	}

	return model.FundBalance{
		AllocatedUSD: allocated,
		InvestedUSD:  invested,
		RecoveredUSD: recovered,
		AvailableUSD: allocated - invested + recovered,
	}
}

// ClientLiquidity computes the client's current liquidity from the full,
// unbounded event history.
func (s *BalanceService) ClientLiquidity(ctx context.Context, clientID string) (model.ClientLiquidity, error) {
	movements, err := s.cashMovementRepo.GetAllCashMovements(ctx, clientID)
	if err != nil {
		return model.ClientLiquidity{}, fmt.Errorf("failed to load cash movements: %w", err)
	}

	allocations, err := s.allocationRepo.GetAllAllocations(ctx, clientID, "")
	if err != nil {
		return model.ClientLiquidity{}, fmt.Errorf("failed to load allocations: %w", err)
	}

	return FoldClientLiquidity(movements, allocations), nil
}

// FundBalance computes one fund's current balance from the full, unbounded
// event history. The fund must belong to the stated client.
func (s *BalanceService) FundBalance(ctx context.Context, clientID, fundID string) (model.FundBalance, error) {
	fund, err := s.fundRepo.GetFund(ctx, fundID)
	if err != nil {
		return model.FundBalance{}, err
	}
	if fund.ClientID != clientID {
		return model.FundBalance{}, apperrors.ErrFundOwnershipMismatch
	}

	allocations, err := s.allocationRepo.GetAllAllocations(ctx, clientID, fundID)
	if err != nil {
		return model.FundBalance{}, fmt.Errorf("failed to load allocations: %w", err)
	}

	trades, err := s.tradeRepo.GetAllTradesByFund(ctx, fundID)
	if err != nil {
		return model.FundBalance{}, fmt.Errorf("failed to load trades: %w", err)
	}

	return FoldFundBalance(allocations, trades), nil
}

// AllFundBalances computes the balance of every fund a client owns using a
// single query per event collection, run concurrently. Funds without any
// history report all-zero balances.
func (s *BalanceService) AllFundBalances(ctx context.Context, clientID string) (map[string]model.FundBalance, error) {
	var (
		funds             []model.Fund
		allocationsByFund map[string][]model.Allocation
		tradesByFund      map[string][]model.Trade
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		funds, err = s.fundRepo.GetFundsByClient(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		allocationsByFund, err = s.allocationRepo.GetAllocationsGroupedByFund(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		tradesByFund, err = s.tradeRepo.GetTradesGroupedByFund(gctx, clientID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load fund histories: %w", err)
	}

	balances := make(map[string]model.FundBalance, len(funds))
	for _, fund := range funds {
		balances[fund.ID] = FoldFundBalance(allocationsByFund[fund.ID], tradesByFund[fund.ID])
	}

	return balances, nil
}

// RoundedLiquidity returns a presentation copy of a liquidity record with
// two-decimal figures.
func RoundedLiquidity(l model.ClientLiquidity) model.ClientLiquidity {
	return model.ClientLiquidity{
		TotalUSD:     round(l.TotalUSD),
		AllocatedUSD: round(l.AllocatedUSD),
		AvailableUSD: round(l.AvailableUSD),
	}
}

// RoundedFundBalance returns a presentation copy of a fund balance with
// two-decimal figures.
func RoundedFundBalance(b model.FundBalance) model.FundBalance {
	return model.FundBalance{
		AllocatedUSD: round(b.AllocatedUSD),
		InvestedUSD:  round(b.InvestedUSD),
		RecoveredUSD: round(b.RecoveredUSD),
		AvailableUSD: round(b.AvailableUSD),
	}
}
