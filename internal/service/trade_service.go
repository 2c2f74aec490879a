package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/currency"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
)

// TradeService applies buys and sells inside a fund. A sell writes the trade
// and its system-origin recovered-cash allocation in one transaction, so the
// fund balance cannot observe the trade without the credit.
type TradeService struct {
	db             *sql.DB
	tradeRepo      *repository.TradeRepository
	allocationRepo *repository.AllocationRepository
	securityRepo   *repository.SecurityRepository
	gate           *GateService
	fxService      *FxService
	locker         *ClientLocker
}

// NewTradeService creates a new TradeService with the provided dependencies.
func NewTradeService(
	db *sql.DB,
	tradeRepo *repository.TradeRepository,
	allocationRepo *repository.AllocationRepository,
	securityRepo *repository.SecurityRepository,
	gate *GateService,
	fxService *FxService,
	locker *ClientLocker,
) *TradeService {
	return &TradeService{
		db:             db,
		tradeRepo:      tradeRepo,
		allocationRepo: allocationRepo,
		securityRepo:   securityRepo,
		gate:           gate,
		fxService:      fxService,
		locker:         locker,
	}
}

// ApplyTrade records a buy or sell. The security is created on first
// reference by name. Buys are checked against the fund's available float and
// rejected with the available amount and shortfall; sells are checked for
// ownership and held quantity, never for balance. The client lock is held
// across the validate-then-append window.
func (s *TradeService) ApplyTrade(ctx context.Context, req request.CreateTradeRequest) (*model.Trade, error) {
	if req.Quantity <= 0 || req.UnitPrice <= 0 {
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

	fxRate, err := s.fxService.ResolveRate(ctx, cur, req.FxRate)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if fxRate != nil {
		rate = *fxRate
	}

	unitPriceUSD, err := currency.ToUSD(req.UnitPrice, cur, rate)
	if err != nil {
		return nil, err
	}

	security, err := s.securityRepo.GetOrCreateSecurity(ctx, req.SecurityName)
	if err != nil {
		return nil, err
	}

	trade := &model.Trade{
		ID:           uuid.New().String(),
		ClientID:     req.ClientID,
		FundID:       req.FundID,
		SecurityID:   security.ID,
		Date:         date,
		Side:         req.Side,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Currency:     string(cur),
		FxRate:       fxRate,
		UnitPriceUSD: unitPriceUSD,
		CreatedAt:    time.Now(),
	}

	unlock := s.locker.Lock(req.ClientID)
	defer unlock()

	switch req.Side {
	case model.TradeBuy:
		result, err := s.gate.ValidatePurchase(ctx, req.ClientID, req.FundID, trade.CostUSD())
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

		if err := s.tradeRepo.InsertTrade(ctx, trade); err != nil {
			return nil, fmt.Errorf("failed to apply trade: %w", err)
		}

	case model.TradeSell:
		if _, err := s.gate.ValidateSale(ctx, req.ClientID, req.FundID, security.ID, req.Quantity); err != nil {
			return nil, err
		}

		if err := s.applySale(ctx, trade); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown trade side: %s", req.Side)
	}

	return trade, nil
}

// applySale writes the sell trade and its companion system-origin allocation
// atomically: the recovered cash credits the fund's float in the same
// transaction, so a cancelled request can never leave the sale half applied.
func (s *TradeService) applySale(ctx context.Context, trade *model.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin sale transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.tradeRepo.WithTx(tx).InsertTrade(ctx, trade); err != nil {
		return fmt.Errorf("failed to apply trade: %w", err)
	}

	allocation := &model.Allocation{
		ID:        uuid.New().String(),
		ClientID:  trade.ClientID,
		FundID:    trade.FundID,
		Date:      trade.Date,
		Kind:      model.AllocationAssign,
		AmountUSD: trade.CostUSD(),
		Origin:    model.OriginSystem,
		TradeID:   &trade.ID,
		CreatedAt: time.Now(),
	}

	if err := s.allocationRepo.WithTx(tx).InsertAllocation(ctx, allocation); err != nil {
		return fmt.Errorf("failed to record recovered cash: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale: %w", err)
	}

	return nil
}

// ListTrades retrieves trades matching the filter for UI listing.
func (s *TradeService) ListTrades(ctx context.Context, filter repository.TradeFilter) ([]model.Trade, error) {
	return s.tradeRepo.ListTrades(ctx, filter)
}

// GetTrade retrieves a single trade by ID.
func (s *TradeService) GetTrade(ctx context.Context, tradeID string) (model.Trade, error) {
	return s.tradeRepo.GetTrade(ctx, tradeID)
}

// DeleteTrade removes a trade as an administrative correction. A sell's
// companion allocation is removed by the cascade, so the fund's recovered
// cash and the credit disappear together. Balances derived before the
// deletion are not reconciled.
func (s *TradeService) DeleteTrade(ctx context.Context, tradeID string) error {
	return s.tradeRepo.DeleteTrade(ctx, tradeID)
}
