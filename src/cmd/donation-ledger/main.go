package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/application/ledger"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/config"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/infrastructure/events"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/infrastructure/persistence"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/infrastructure/persistence/dynamo"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/interfaces/httpapi"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "donation-ledger: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}

	logger, syncLogs, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return err
	}
	defer syncLogs()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	deps.Publisher = events.NewLogPublisher(logger)
	deps.Logger = logger
	services := ledger.NewServices(deps)

	auth := httpapi.NewAuthenticator(cfg.Auth.JWTSecret)
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: httpapi.NewRouter(httpapi.NewHandler(services, logger), auth, logger, cfg.Server.RequestTimeout),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "address", cfg.Server.Address, "driver", cfg.Database.Driver)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openStore 依 database.driver 建立倉儲與事務管理器
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ledger.Dependencies, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint)
		if err != nil {
			return ledger.Dependencies{}, nil, err
		}
		tables := dynamo.Tables{
			Donations: cfg.DynamoDB.DonationsTable,
			Goals:     cfg.DynamoDB.GoalsTable,
			Users:     cfg.DynamoDB.UsersTable,
		}
		return ledger.Dependencies{
			Donations:    dynamo.NewDonationRepository(client, tables),
			Goals:        dynamo.NewGoalRepository(client, tables),
			Achievements: dynamo.NewAchievementRepository(client, tables),
			TxManager:    dynamo.NewTransactionManager(),
		}, func() {}, nil

	default:
		db, err := persistence.Open(cfg.Database.Driver, cfg.Database.URI, logger)
		if err != nil {
			return ledger.Dependencies{}, nil, err
		}
		closeDB := func() {
			if err := persistence.Close(db); err != nil {
				logger.Warn("failed to close database", "error", err)
			}
		}
		return ledger.Dependencies{
			Donations:    persistence.NewDonationRepository(db),
			Goals:        persistence.NewGoalRepository(db),
			Achievements: persistence.NewAchievementRepository(db),
			TxManager:    persistence.NewGORMTransactionManager(db),
		}, closeDB, nil
	}
}
