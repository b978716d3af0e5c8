package main

import (
	"context"
	"credit-engine/internal/api"
	"credit-engine/internal/api/middleware"
	"credit-engine/internal/batch"
	"credit-engine/internal/config"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/lending"
	"credit-engine/internal/event"
	"credit-engine/internal/infrastructure/database/postgres"
	"credit-engine/internal/infrastructure/logging"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	defaultSnapshotSchedule = "*/15 * * * *"
	defaultSnapshotTimeout  = 30 * time.Second
	rabbitMQDialAttempts    = 5
)

// @title Credit Engine API
// @version 1.0
// @description Customer registration, credit eligibility, loan origination and loan reporting.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	rabbitMQConn, err := setupRabbitMQ(cfg, logger)
	if err != nil {
		logger.Warn("Continuing without RabbitMQ; events will only be logged", slog.Any("error", err))
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimit, logger)
	go rateLimiter.RunJanitor(janitorCtx)

	publisher := newEventPublisher(cfg, rabbitMQConn, logger)
	services, loanRepo := initializeServices(cfg, publisher, dbPool, logger)
	snapshotJob := batch.NewPortfolioSnapshotJob(loanRepo, logger)
	cronScheduler := startBatchJobs(cfg, logger, snapshotJob)

	router := api.SetupRouter(services, rateLimiter, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, publisher, rabbitMQConn, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	if cfg.Database.MigrationsEnabled {
		logger.Info("Applying database migrations...")
		if err := postgres.RunMigrations(cfg.Database.URL, logger); err != nil {
			logger.Error("Failed to apply database migrations", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeServices(cfg *config.Config, publisher event.EventPublisher, dbPool *pgxpool.Pool, logger *slog.Logger) (api.Services, *postgres.LoanRepository) {
	logger.Info("Initializing application components...")
	loanRepo := postgres.NewLoanRepository(dbPool, logger)
	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	policy := credit.NewPolicy(cfg.Lending.MaxEMIIncomeRatio)

	customers := customer.NewCustomerService(customerRepo, publisher, logger)

	return api.Services{
		Customers: customers,
		Lending:   lending.NewLendingService(customerRepo, loanRepo, policy, publisher, logger),
		Reporter:  lending.NewLoanReporter(customers, loanRepo, logger),
	}, loanRepo
}

func newEventPublisher(cfg *config.Config, rabbitConn *amqp.Connection, logger *slog.Logger) event.EventPublisher {
	if rabbitConn == nil {
		return event.NewLogPublisher(logger)
	}
	publisher, err := event.NewRabbitMQEventPublisher(rabbitConn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize RabbitMQ publisher, falling back to log publisher", slog.Any("error", err))
		return event.NewLogPublisher(logger)
	}
	return publisher
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, publisher event.EventPublisher, rabbitConn *amqp.Connection,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)
	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	shutdownHTTPServer(srv, serverErrors, logger)
	closePublisher(publisher, logger)
	closeRabbitMQConnection(rabbitConn, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			return "server error"
		}
		logger.Info("Server goroutine finished before signal.")
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

// closePublisher releases broker resources held by publishers that own any.
func closePublisher(publisher event.EventPublisher, logger *slog.Logger) {
	closer, ok := publisher.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn("Failed to close event publisher", slog.Any("error", err))
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	switch {
	case rabbitConn == nil:
		logger.Info("RabbitMQ connection was not established, skipping close.")
	case rabbitConn.IsClosed():
		logger.Info("RabbitMQ connection already closed, skipping close.")
	default:
		logger.Info("Closing RabbitMQ connection...")
		if err := rabbitConn.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
			return
		}
		logger.Info("RabbitMQ connection closed.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, snapshotJob batch.Job) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	spec := cfg.Batch.PortfolioSnapshotSchedule
	if spec == "" {
		spec = defaultSnapshotSchedule
		logger.Warn("Portfolio snapshot schedule not configured, using default", "schedule", spec)
	}
	timeout := cfg.Batch.PortfolioSnapshotTimeout
	if timeout <= 0 {
		timeout = defaultSnapshotTimeout
	}

	jobID, err := batch.Schedule(c, spec, timeout, "PortfolioSnapshot", snapshotJob, logger)
	if err != nil {
		logger.Error("Failed to schedule portfolio snapshot job", "schedule", spec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled portfolio snapshot job", "schedule", spec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func connectRabbitMQ(uri string, attempts int, backoff time.Duration, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 1; i <= attempts; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")
			go watchRabbitMQ(conn, logger)
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err),
		)
		if i < attempts {
			time.Sleep(time.Duration(i) * backoff)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
}

// watchRabbitMQ logs flow-control and close notifications until the
// connection is closed. The library blocks its reader on these channels, so
// both are drained for the connection's whole life.
func watchRabbitMQ(conn *amqp.Connection, logger *slog.Logger) {
	blockChan := conn.NotifyBlocked(make(chan amqp.Blocking, 1))
	closeChan := conn.NotifyClose(make(chan *amqp.Error, 1))
	drainRabbitMQNotifications(blockChan, closeChan, logger)
}

func drainRabbitMQNotifications(blockChan <-chan amqp.Blocking, closeChan <-chan *amqp.Error, logger *slog.Logger) {
	for {
		select {
		case b, ok := <-blockChan:
			if !ok {
				blockChan = nil
				continue
			}
			if b.Active {
				logger.Warn("RabbitMQ connection blocked", "reason", b.Reason)
			} else {
				logger.Info("RabbitMQ connection unblocked")
			}
		case e, ok := <-closeChan:
			if e != nil {
				logger.Error("RabbitMQ connection closed", slog.Any("error", e))
			}
			if !ok || e != nil {
				return
			}
		}
	}
}

// setupRabbitMQ returns a nil connection without error when publishing is disabled.
func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ publishing disabled via configuration.")
		return nil, nil
	}
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RabbitMQ URL is not configured")
	}
	return connectRabbitMQ(cfg.RabbitMQ.URL, rabbitMQDialAttempts, 2*time.Second, logger)
}
