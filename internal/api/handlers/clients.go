package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/response"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/validation"
)

// ClientHandler handles HTTP requests for client endpoints.
type ClientHandler struct {
	clientService  *service.ClientService
	balanceService *service.BalanceService
}

// NewClientHandler creates a new ClientHandler with the provided service dependencies.
func NewClientHandler(clientService *service.ClientService, balanceService *service.BalanceService) *ClientHandler {
	return &ClientHandler{
		clientService:  clientService,
		balanceService: balanceService,
	}
}

// CreateClient handles POST requests to create a new client.
//
// Endpoint: POST /api/client
// Response: 201 Created with Client
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateClientRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateClient(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	client, err := h.clientService.CreateClient(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create client", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, client)
}

// AllClients handles GET requests to retrieve every client.
//
// Endpoint: GET /api/client
// Response: 200 OK with array of Client
func (h *ClientHandler) AllClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.GetAllClients(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveClients.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, clients)
}

// Liquidity handles GET requests for a client's derived liquidity, folded
// fresh from the full cash movement and allocation history.
//
// Endpoint: GET /api/client/{uuid}/liquidity
// Response: 200 OK with ClientLiquidity (two-decimal figures)
// Error: 404 Not Found if the client does not exist
func (h *ClientHandler) Liquidity(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	if _, err := h.clientService.GetClient(r.Context(), clientID); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeBalances)
		return
	}

	liquidity, err := h.balanceService.ClientLiquidity(r.Context(), clientID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeBalances)
		return
	}

	response.RespondJSON(w, http.StatusOK, service.RoundedLiquidity(liquidity))
}

// Dashboard handles GET requests for the client overview: liquidity plus
// every fund balance in one response.
//
// Endpoint: GET /api/client/{uuid}/dashboard
// Response: 200 OK with ClientDashboard
// Error: 404 Not Found if the client does not exist
func (h *ClientHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	dashboard, err := h.clientService.Dashboard(r.Context(), clientID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeBalances)
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}
