// Package api wires the HTTP surface: router, handlers, middleware.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/handlers"
	custommiddleware "github.com/afiguera/Advisory-Ledger-Backend/internal/api/middleware"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/config"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
)

// Services bundles everything the router needs. Keeps NewRouter's signature
// stable as endpoints grow.
type Services struct {
	System       *service.SystemService
	Client       *service.ClientService
	Fund         *service.FundService
	Balance      *service.BalanceService
	CashMovement *service.CashMovementService
	Allocation   *service.AllocationService
	Trade        *service.TradeService
	Return       *service.ReturnService
	Fx           *service.FxService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/client", func(r chi.Router) {
			clientHandler := handlers.NewClientHandler(svc.Client, svc.Balance)
			fundHandler := handlers.NewFundHandler(svc.Fund, svc.Balance)
			movementHandler := handlers.NewCashMovementHandler(svc.CashMovement)
			allocationHandler := handlers.NewAllocationHandler(svc.Allocation)
			tradeHandler := handlers.NewTradeHandler(svc.Trade)

			r.Post("/", clientHandler.CreateClient)
			r.Get("/", clientHandler.AllClients)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/liquidity", clientHandler.Liquidity)
				r.Get("/dashboard", clientHandler.Dashboard)
				r.Get("/funds", fundHandler.FundsPerClient)
				r.Get("/cash-movements", movementHandler.MovementsPerClient)
				r.Get("/allocations", allocationHandler.AllocationsPerClient)
				r.Get("/trades", tradeHandler.TradesPerClient)
			})
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(svc.Fund, svc.Balance)
			tradeHandler := handlers.NewTradeHandler(svc.Trade)

			r.Post("/", fundHandler.CreateFund)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/balance", fundHandler.FundBalance)
				r.Get("/trades", tradeHandler.TradesPerFund)
			})
		})

		r.Route("/cash-movement", func(r chi.Router) {
			movementHandler := handlers.NewCashMovementHandler(svc.CashMovement)
			r.Post("/", movementHandler.CreateCashMovement)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", movementHandler.DeleteCashMovement)
			})
		})

		r.Route("/allocation", func(r chi.Router) {
			allocationHandler := handlers.NewAllocationHandler(svc.Allocation)
			r.Post("/", allocationHandler.CreateAllocation)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", allocationHandler.DeleteAllocation)
			})
		})

		r.Route("/trade", func(r chi.Router) {
			tradeHandler := handlers.NewTradeHandler(svc.Trade)
			r.Post("/", tradeHandler.CreateTrade)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", tradeHandler.GetTrade)
				r.Delete("/", tradeHandler.DeleteTrade)
			})
		})

		r.Route("/returns", func(r chi.Router) {
			returnHandler := handlers.NewReturnHandler(svc.Return)
			r.Post("/fund", returnHandler.FundReturn)
			r.Post("/client", returnHandler.ClientReturn)
		})

		r.Route("/fx", func(r chi.Router) {
			fxHandler := handlers.NewFxHandler(svc.Fx)
			r.Get("/rate/{currency}", fxHandler.LatestRate)
			r.Post("/refresh", fxHandler.RefreshRates)
			r.Get("/config", fxHandler.GetFxConfig)
			r.Put("/config", fxHandler.UpdateFxConfig)
		})
	})

	return r
}
