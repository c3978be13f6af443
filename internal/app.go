// internal/app.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	router "hydroflow-bot/internal/api"
	"hydroflow-bot/internal/api/handler"
	"hydroflow-bot/internal/config"
	"hydroflow-bot/internal/notify"
	"hydroflow-bot/internal/repository"
	"hydroflow-bot/internal/repository/memory"
	"hydroflow-bot/internal/repository/sqlrepo"
	"hydroflow-bot/internal/scheduler"
	"hydroflow-bot/internal/service"
	"hydroflow-bot/internal/util"
	"hydroflow-bot/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *zap.Logger
	DB     *sqlx.DB      // nil when the journal is kept in memory
	Redis  *redis.Client // nil when notifications are only logged

	// Repositories
	StateRepository repository.StateRepository
	IntakeJournal   repository.IntakeJournal

	// Services
	Notifier          notify.Notifier
	HydrationService  service.HydrationService
	Dispatcher        *service.Dispatcher
	ReminderScheduler *scheduler.ReminderScheduler

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components. Connections opened
// before a failure are closed again.
func (app *Application) Initialize(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			err = multierr.Append(err, app.closeResources())
		}
	}()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	app.Logger, err = util.InitLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Intake journal: SQL when a database is configured, memory otherwise
	if cfg.DB.Enabled() {
		database, err := db.Open(cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = database

		journal := sqlrepo.NewIntakeJournal(app.DB, app.DB, db.BeginTx, db.CommitTx, db.RollbackTx)
		if err := journal.EnsureSchema(ctx); err != nil {
			return err
		}
		app.IntakeJournal = journal
		app.Logger.Info("Database connection established.", zap.String("driver", cfg.DB.Driver))
	} else {
		app.IntakeJournal = memory.NewIntakeJournal()
		app.Logger.Info("No DATABASE_URL set; intake journal kept in memory.")
	}
	app.StateRepository = memory.NewStateStore()

	// 4. Outbound notifications
	if cfg.Redis.Addr != "" {
		client, err := notify.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Redis = client
		app.Notifier = notify.NewRedisNotifier(client, cfg.Redis.OutboxKey)
		app.Logger.Info("Redis outbox connected.", zap.String("addr", cfg.Redis.Addr))
	} else {
		app.Notifier = notify.NewLogNotifier(app.Logger.Named("notify"))
		app.Logger.Info("No REDIS_ADDR set; notifications are logged only.")
	}

	// 5. Initialize Services
	app.HydrationService = service.NewHydrationService(app.StateRepository, app.IntakeJournal, nil)
	app.Dispatcher = service.NewDispatcher(app.HydrationService, app.Notifier, app.Logger.Named("dispatch"))
	app.ReminderScheduler = scheduler.NewReminderScheduler(
		app.StateRepository,
		app.Notifier,
		app.Logger.Named("scheduler"),
		cfg.Reminder,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	hydrationHandler := handler.NewHydrationHandler(app.HydrationService, app.Dispatcher, app.Logger.Named("http"))
	app.HTTPHandler = router.NewRouter(hydrationHandler, cfg.CORSOrigins)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown releases external connections. Every resource is closed even if an
// earlier one fails; the failures are combined.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")

	if errs := app.closeResources(); errs != nil {
		app.Logger.Error("Application shutdown finished with errors", zap.Error(errs))
		return errs
	}

	app.Logger.Info("Application shut down gracefully.")
	_ = app.Logger.Sync()
	return nil
}

// closeResources closes the Redis client and the database, if open, and
// forgets them so a second call is a no-op.
func (app *Application) closeResources() error {
	var errs error
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
		app.Redis = nil
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
		app.DB = nil
	}
	return errs
}
