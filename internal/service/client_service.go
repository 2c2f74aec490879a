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

// ClientService handles client management and the dashboard aggregation.
type ClientService struct {
	clientRepo     *repository.ClientRepository
	balanceService *BalanceService
}

// NewClientService creates a new ClientService with the provided dependencies.
func NewClientService(
	clientRepo *repository.ClientRepository,
	balanceService *BalanceService,
) *ClientService {
	return &ClientService{
		clientRepo:     clientRepo,
		balanceService: balanceService,
	}
}

// CreateClient stores a new client.
func (s *ClientService) CreateClient(ctx context.Context, req request.CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.clientRepo.InsertClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// GetAllClients retrieves every client.
func (s *ClientService) GetAllClients(ctx context.Context) ([]model.Client, error) {
	return s.clientRepo.GetAllClients(ctx)
}

// GetClient retrieves a single client by ID.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (model.Client, error) {
	return s.clientRepo.GetClient(ctx, clientID)
}

// Dashboard builds the client overview: current liquidity plus every fund
// balance, folded fresh from history and rounded for presentation.
func (s *ClientService) Dashboard(ctx context.Context, clientID string) (model.ClientDashboard, error) {
	client, err := s.clientRepo.GetClient(ctx, clientID)
	if err != nil {
		return model.ClientDashboard{}, err
	}

	liquidity, err := s.balanceService.ClientLiquidity(ctx, clientID)
	if err != nil {
		return model.ClientDashboard{}, err
	}

	balances, err := s.balanceService.AllFundBalances(ctx, clientID)
	if err != nil {
		return model.ClientDashboard{}, err
	}

	rounded := make(map[string]model.FundBalance, len(balances))
	for fundID, balance := range balances {
		rounded[fundID] = RoundedFundBalance(balance)
	}

	return model.ClientDashboard{
		Client:    client,
		Liquidity: RoundedLiquidity(liquidity),
		Funds:     rounded,
	}, nil
}
