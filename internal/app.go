// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	router "finflow-ledger/internal/api"
	"finflow-ledger/internal/api/handler"
	"finflow-ledger/internal/config"
	"finflow-ledger/internal/money"
	"finflow-ledger/internal/repository/sqlstore"
	"finflow-ledger/internal/service"
	"finflow-ledger/internal/util"
	"finflow-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Deps   *service.Deps

	// Services
	Transactions service.TransactionService
	Wallets      service.WalletService
	Categories   service.CategoryService
	Summary      service.SummaryService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "db_driver", cfg.DB.Driver, "timezone", cfg.Location.String())

	// 3. Connect to Database and bring the schema up to date
	database, err := db.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	if err := db.RunMigrations(cfg.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database connection established and migrated.")

	// 4. Initialize Services
	app.Deps = &service.Deps{
		DBBeginner:   app.DB,
		DBExecutor:   app.DB,
		Users:        sqlstore.NewUserRepository(),
		Wallets:      sqlstore.NewWalletRepository(),
		Categories:   sqlstore.NewCategoryRepository(),
		Transactions: sqlstore.NewTransactionRepository(),
		BeginTx:      db.BeginTx,
		CommitTx:     db.CommitTx,
		RollbackTx:   db.RollbackTx,
		Now:          time.Now,
		Location:     cfg.Location,
	}
	users := service.NewUserResolver(app.Deps)
	app.Transactions = service.NewTransactionService(app.Deps, users, service.NewResolver(app.Deps))
	app.Wallets = service.NewWalletService(app.Deps)
	app.Categories = service.NewCategoryService(app.Deps)
	app.Summary = service.NewSummaryService(app.Deps)
	app.Logger.Info("Services initialized.")

	// 5. Initialize HTTP Handlers and Router
	formatter := money.Default()
	identity := handler.NewIdentity(users, cfg.EmailHeader, cfg.IntegrationToken, app.Logger)
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Identity:     identity,
		Transactions: handler.NewTransactionHandler(app.Transactions, identity, app.Logger),
		Wallets:      handler.NewWalletHandler(app.Wallets, identity, formatter, app.Logger),
		Categories:   handler.NewCategoryHandler(app.Categories, identity, app.Logger),
		Summary:      handler.NewSummaryHandler(app.Summary, identity, formatter, app.Logger),
	})
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
