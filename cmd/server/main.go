package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/http/controller"
	"github.com/api-sage/core-banking/internal/adapter/http/middleware"
	"github.com/api-sage/core-banking/internal/adapter/http/router"
	"github.com/api-sage/core-banking/internal/adapter/repository/postgres"
	"github.com/api-sage/core-banking/internal/config"
	"github.com/api-sage/core-banking/internal/usecase/services"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	uow := postgres.NewUnitOfWork(db)

	ledgerService := services.NewLedgerService(uow)
	accountService := services.NewAccountService(uow)
	statisticsService := services.NewStatisticsService(uow)
	auditService := services.NewAuditService(uow)
	userService := services.NewUserService(uow)

	handler := router.New(
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
		middleware.RequestID,
		controller.NewTransactionController(ledgerService, statisticsService),
		controller.NewAccountController(accountService),
		controller.NewUserController(userService),
		controller.NewAuditController(auditService),
	)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}
