package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/config"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/database"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/fxapi"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	clientRepo := repository.NewClientRepository(db)
	fundRepo := repository.NewFundRepository(db)
	securityRepo := repository.NewSecurityRepository(db)
	cashMovementRepo := repository.NewCashMovementRepository(db)
	allocationRepo := repository.NewAllocationRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	fxRateRepo := repository.NewFxRateRepository(db)
	fxConfigRepo := repository.NewFxConfigRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	locker := service.NewClientLocker()
	fxService, err := service.NewFxService(
		fxRateRepo,
		fxConfigRepo,
		fxapi.NewClient(),
		cfg.FX.EncryptionKey,
	)
	if err != nil {
		log.Fatalf("Failed to initialize fx service: %v", err)
	}
	balanceService := service.NewBalanceService(
		cashMovementRepo,
		allocationRepo,
		tradeRepo,
		fundRepo,
	)
	gate := service.NewGateService(
		balanceService,
		fundRepo,
		tradeRepo,
	)
	clientService := service.NewClientService(
		clientRepo,
		balanceService,
	)
	fundService := service.NewFundService(
		fundRepo,
		clientRepo,
	)
	cashMovementService := service.NewCashMovementService(
		cashMovementRepo,
		clientRepo,
		gate,
		fxService,
		locker,
	)
	allocationService := service.NewAllocationService(
		allocationRepo,
		fundRepo,
		gate,
		fxService,
		locker,
	)
	tradeService := service.NewTradeService(
		db,
		tradeRepo,
		allocationRepo,
		securityRepo,
		gate,
		fxService,
		locker,
	)
	returnService := service.NewReturnService(
		allocationRepo,
		fundRepo,
	)

	// Create router
	router := api.NewRouter(api.Services{
		System:       systemService,
		Client:       clientService,
		Fund:         fundService,
		Balance:      balanceService,
		CashMovement: cashMovementService,
		Allocation:   allocationService,
		Trade:        tradeService,
		Return:       returnService,
		Fx:           fxService,
	}, cfg)

	// Daily exchange rate snapshot; skipped unless a provider is configured
	// with auto refresh turned on.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.FX.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if !fxService.AutoRefreshEnabled(ctx) {
			return
		}
		if err := fxService.RefreshRates(ctx); err != nil {
			log.Printf("Scheduled rate refresh failed: %v", err)
			return
		}
		log.Println("Scheduled rate refresh completed")
	}); err != nil {
		log.Fatalf("Failed to schedule rate refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
