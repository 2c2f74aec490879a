package service

import (
	"context"
	"fmt"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
)

// ValidationResult is the outcome of a sufficiency check. A rejected result
// carries the available amount and the shortfall so the caller can render a
// useful message without a second round trip.
type ValidationResult struct {
	Valid        bool    `json:"valid"`
	AvailableUSD float64 `json:"availableUsd"`
	RequestedUSD float64 `json:"requestedUsd"`
	ShortfallUSD float64 `json:"shortfallUsd"`
}

// GateService wraps every liquidity-consuming operation with a sufficiency
// check against freshly folded balances. All methods are pure reads; the
// append after an accepted check is the mutation services' job.
type GateService struct {
	balanceService *BalanceService
	fundRepo       *repository.FundRepository
	tradeRepo      *repository.TradeRepository
}

// NewGateService creates a new GateService with the provided dependencies.
func NewGateService(
	balanceService *BalanceService,
	fundRepo *repository.FundRepository,
	tradeRepo *repository.TradeRepository,
) *GateService {
	return &GateService{
		balanceService: balanceService,
		fundRepo:       fundRepo,
		tradeRepo:      tradeRepo,
	}
}

// ValidateWithdrawal checks a withdrawal against the client's available
// (unallocated) liquidity.
func (s *GateService) ValidateWithdrawal(ctx context.Context, clientID string, amountUSD float64) (ValidationResult, error) {
	return s.validateAgainstClientAvailable(ctx, clientID, amountUSD)
}

// ValidateAllocation checks an assignment into a fund against the client's
// available liquidity: allocating consumes client-level availability, not
// fund-level.
func (s *GateService) ValidateAllocation(ctx context.Context, clientID string, amountUSD float64) (ValidationResult, error) {
	return s.validateAgainstClientAvailable(ctx, clientID, amountUSD)
}

func (s *GateService) validateAgainstClientAvailable(ctx context.Context, clientID string, amountUSD float64) (ValidationResult, error) {
	if amountUSD <= 0 {
		return ValidationResult{}, apperrors.ErrInvalidAmount
	}

	liquidity, err := s.balanceService.ClientLiquidity(ctx, clientID)
	if err != nil {
		return ValidationResult{}, err
	}

	return newResult(amountUSD, liquidity.AvailableUSD), nil
}

// ValidateUnassignment checks a transfer out of a fund's float back to the
// client against the fund's available balance. The fund must belong to the
// stated client.
func (s *GateService) ValidateUnassignment(ctx context.Context, clientID, fundID string, amountUSD float64) (ValidationResult, error) {
	if amountUSD <= 0 {
		return ValidationResult{}, apperrors.ErrInvalidAmount
	}

	balance, err := s.balanceService.FundBalance(ctx, clientID, fundID)
	if err != nil {
		return ValidationResult{}, err
	}

	return newResult(amountUSD, balance.AvailableUSD), nil
}

// ValidatePurchase checks a buy against the fund's available cash float.
// Ownership is verified first and independently: a fund belonging to another
// client fails with ErrFundOwnershipMismatch before any funds check.
func (s *GateService) ValidatePurchase(ctx context.Context, clientID, fundID string, costUSD float64) (ValidationResult, error) {
	if costUSD <= 0 {
		return ValidationResult{}, apperrors.ErrInvalidAmount
	}

	// FundBalance performs the ownership check before folding.
	balance, err := s.balanceService.FundBalance(ctx, clientID, fundID)
	if err != nil {
		return ValidationResult{}, err
	}

	return newResult(costUSD, balance.AvailableUSD), nil
}

// ValidateSale checks a sell. A sale always increases liquidity so it is
// never rejected for insufficient balance, but ownership is still verified
// and the fund must currently hold at least the quantity being sold.
func (s *GateService) ValidateSale(ctx context.Context, clientID, fundID, securityID string, quantity int64) (ValidationResult, error) {
	if quantity <= 0 {
		return ValidationResult{}, apperrors.ErrInvalidAmount
	}

	fund, err := s.fundRepo.GetFund(ctx, fundID)
	if err != nil {
		return ValidationResult{}, err
	}
	if fund.ClientID != clientID {
		return ValidationResult{}, apperrors.ErrFundOwnershipMismatch
	}

	trades, err := s.tradeRepo.GetAllTradesByFund(ctx, fundID)
	if err != nil {
		return ValidationResult{}, err
	}

	held := foldPosition(trades, securityID)
	if quantity > held {
		return ValidationResult{}, fmt.Errorf("%w: held %d, requested %d",
			apperrors.ErrInsufficientPosition, held, quantity)
	}

	return ValidationResult{Valid: true, RequestedUSD: 0, AvailableUSD: 0}, nil
}

// foldPosition folds a fund's trade history into the held quantity of one
// security.
func foldPosition(trades []model.Trade, securityID string) int64 {
	var held int64
	for _, t := range trades {
		if t.SecurityID != securityID {
			continue
		}
		switch t.Side {
		case model.TradeBuy:
			held += t.Quantity
		case model.TradeSell:
			held -= t.Quantity
		}
	}
	return held
}

// newResult builds the accept/reject outcome for a sufficiency check.
func newResult(requested, available float64) ValidationResult {
	if requested > available {
		return ValidationResult{
			Valid:        false,
			AvailableUSD: available,
			RequestedUSD: requested,
			ShortfallUSD: requested - available,
		}
	}
	return ValidationResult{
		Valid:        true,
		AvailableUSD: available,
		RequestedUSD: requested,
	}
}
