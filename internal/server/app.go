// Package server initializes and runs the application server. It picks a
// storage backend from the configured DSN, runs schema migrations, wires
// the services, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sanjaympqwer/TASK-MASTER/internal/logging"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/config"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/httpapi"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/repositories/repomanager"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/services"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/session"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	userService       *services.UserService
	taskService       *services.TaskService
	suggestionService *services.SuggestionService
	sessionManager    *session.Manager
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	var db *sql.DB
	var rm repomanager.RepositoryManager

	if cfg.DatabaseDSN == "" {
		logger.Info(ctx, "No database DSN configured, using in-memory store")
		rm = repomanager.NewMemoryRepositoryManager()
	} else {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	return &App{
		config:            cfg,
		logger:            logger,
		db:                db,
		userService:       services.NewUserService(db, rm, cfg),
		taskService:       services.NewTaskService(db, rm),
		suggestionService: services.NewSuggestionService(cfg),
		sessionManager:    session.NewManager(cfg),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config, app.logger,
		app.userService, app.taskService, app.suggestionService, app.sessionManager)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
}
