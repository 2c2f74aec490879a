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

// CashMovementService applies client-level deposits and withdrawals. It is a
// mutation applier: normalize currency, run the gate for liquidity-consuming
// kinds, then append exactly one event.
type CashMovementService struct {
	cashMovementRepo *repository.CashMovementRepository
	clientRepo       *repository.ClientRepository
	gate             *GateService
	fxService        *FxService
	locker           *ClientLocker
}

// NewCashMovementService creates a new CashMovementService with the provided dependencies.
func NewCashMovementService(
	cashMovementRepo *repository.CashMovementRepository,
	clientRepo *repository.ClientRepository,
	gate *GateService,
	fxService *FxService,
	locker *ClientLocker,
) *CashMovementService {
	return &CashMovementService{
		cashMovementRepo: cashMovementRepo,
		clientRepo:       clientRepo,
		gate:             gate,
		fxService:        fxService,
		locker:           locker,
	}
}

// ApplyMovement records a deposit or withdrawal. The USD amount is fixed at
// creation time from the submitted or latest historical rate and never
// recomputed later. Withdrawals hold the client lock across the
// validate-then-append window; a rejection carries the available amount and
// shortfall.
func (s *CashMovementService) ApplyMovement(ctx context.Context, req request.CreateCashMovementRequest) (*model.CashMovement, error) {
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

	if _, err := s.clientRepo.GetClient(ctx, req.ClientID); err != nil {
		return nil, err
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

	if req.Kind == model.MovementWithdrawal {
		unlock := s.locker.Lock(req.ClientID)
		defer unlock()

		result, err := s.gate.ValidateWithdrawal(ctx, req.ClientID, amountUSD)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, &apperrors.InsufficientLiquidityError{
				AvailableUSD: result.AvailableUSD,
				RequestedUSD: result.RequestedUSD,
			}
		}
	}

	movement := &model.CashMovement{
		ID:        uuid.New().String(),
		ClientID:  req.ClientID,
		Date:      date,
		Kind:      req.Kind,
		Amount:    req.Amount,
		Currency:  string(cur),
		FxRate:    fxRate,
		AmountUSD: amountUSD,
		CreatedAt: time.Now(),
	}

	if err := s.cashMovementRepo.InsertCashMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to apply cash movement: %w", err)
	}

	return movement, nil
}

// ListMovements retrieves a page of a client's cash movements for UI listing.
func (s *CashMovementService) ListMovements(ctx context.Context, clientID string, limit, offset int) ([]model.CashMovement, error) {
	return s.cashMovementRepo.ListCashMovements(ctx, clientID, limit, offset)
}

// DeleteMovement removes a cash movement as an administrative correction.
// Balances derived before the deletion are not reconciled.
func (s *CashMovementService) DeleteMovement(ctx context.Context, movementID string) error {
	return s.cashMovementRepo.DeleteCashMovement(ctx, movementID)
}
