package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/currency"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
)

// AllocationService applies manual transfers of client cash into and out of a
// fund's float.
type AllocationService struct {
	allocationRepo *repository.AllocationRepository
	fundRepo       *repository.FundRepository
	gate           *GateService
	fxService      *FxService
	locker         *ClientLocker
}

// NewAllocationService creates a new AllocationService with the provided dependencies.
func NewAllocationService(
	allocationRepo *repository.AllocationRepository,
	fundRepo *repository.FundRepository,
	gate *GateService,
	fxService *FxService,
	locker *ClientLocker,
) *AllocationService {
	return &AllocationService{
		allocationRepo: allocationRepo,
		fundRepo:       fundRepo,
		gate:           gate,
		fxService:      fxService,
		locker:         locker,
	}
}

// ApplyAllocation records a manual assign or unassign. Mixed-currency input
// is normalized to USD before validation. Assignments are checked against
// the client's available liquidity, unassignments against the fund's
// available float; both hold the client lock across validate-then-append.
func (s *AllocationService) ApplyAllocation(ctx context.Context, req request.CreateAllocationRequest) (*model.Allocation, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	cur, err := currency.Parse(req.Currency)
	if err != nil {
		return nil, err
	}

	fund, err := s.fundRepo.GetFund(ctx, req.FundID)
	if err != nil {
		return nil, err
	}
	if fund.ClientID != req.ClientID {
		return nil, apperrors.ErrFundOwnershipMismatch
	}

	fxRate, err := s.fxService.ResolveRate(ctx, cur, req.FxRate)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if fxRate != nil {
		rate = *fxRate
	}

	amountUSD, err := currency.ToUSD(req.Amount, cur, rate)
	if err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(req.ClientID)
	defer unlock()

	var result ValidationResult
	switch req.Kind {
	case model.AllocationAssign:
		result, err = s.gate.ValidateAllocation(ctx, req.ClientID, amountUSD)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, &apperrors.InsufficientLiquidityError{
				AvailableUSD: result.AvailableUSD,
				RequestedUSD: result.RequestedUSD,
			}
		}
	case model.AllocationUnassign:
		result, err = s.gate.ValidateUnassignment(ctx, req.ClientID, req.FundID, amountUSD)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, &apperrors.InsufficientFundBalanceError{
				FundID:       req.FundID,
				AvailableUSD: result.AvailableUSD,
				RequestedUSD: result.RequestedUSD,
			}
		}
	default:
		return nil, fmt.Errorf("unknown allocation kind: %s", req.Kind)
	}

	allocation := &model.Allocation{
		ID:        uuid.New().String(),
		ClientID:  req.ClientID,
		FundID:    req.FundID,
		Date:      date,
		Kind:      req.Kind,
		AmountUSD: amountUSD,
		Origin:    model.OriginManual,
		CreatedAt: time.Now(),
	}

	if err := s.allocationRepo.InsertAllocation(ctx, allocation); err != nil {
		return nil, fmt.Errorf("failed to apply allocation: %w", err)
	}

	return allocation, nil
}

// ListAllocations retrieves a page of allocations for UI listing, optionally
// scoped to one fund.
func (s *AllocationService) ListAllocations(ctx context.Context, clientID, fundID string, limit, offset int) ([]model.Allocation, error) {
	return s.allocationRepo.ListAllocations(ctx, clientID, fundID, limit, offset)
}

// DeleteAllocation removes an allocation as an administrative correction.
// Balances derived before the deletion are not reconciled.
func (s *AllocationService) DeleteAllocation(ctx context.Context, allocationID string) error {
	return s.allocationRepo.DeleteAllocation(ctx, allocationID)
}
