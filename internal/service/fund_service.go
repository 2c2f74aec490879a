package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
)

// FundService handles fund management. Strategy metadata is stored but
// opaque to the ledger; only the reporting layer interprets it.
type FundService struct {
	fundRepo   *repository.FundRepository
	clientRepo *repository.ClientRepository
}

// NewFundService creates a new FundService with the provided repository dependencies.
func NewFundService(
	fundRepo *repository.FundRepository,
	clientRepo *repository.ClientRepository,
) *FundService {
	return &FundService{
		fundRepo:   fundRepo,
		clientRepo: clientRepo,
	}
}

// CreateFund stores a new fund for an existing client.
func (s *FundService) CreateFund(ctx context.Context, req request.CreateFundRequest) (*model.Fund, error) {
	if _, err := s.clientRepo.GetClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	fund := &model.Fund{
		ID:             uuid.New().String(),
		ClientID:       req.ClientID,
		Name:           req.Name,
		Strategy:       req.Strategy,
		TargetAmount:   req.TargetAmount,
		TargetCurrency: req.TargetCurrency,
		CreatedAt:      time.Now(),
	}

	if req.TargetDate != nil {
		targetDate, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		fund.TargetDate = &targetDate
	}

	if err := s.fundRepo.InsertFund(ctx, fund); err != nil {
		return nil, fmt.Errorf("failed to create fund: %w", err)
	}

	return fund, nil
}

// GetFundsByClient retrieves every fund owned by a client.
func (s *FundService) GetFundsByClient(ctx context.Context, clientID string) ([]model.Fund, error) {
	return s.fundRepo.GetFundsByClient(ctx, clientID)
}

// GetFund retrieves a single fund by ID.
func (s *FundService) GetFund(ctx context.Context, fundID string) (model.Fund, error) {
	return s.fundRepo.GetFund(ctx, fundID)
}
