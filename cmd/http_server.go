package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/evisarw/visa-management/internal"
	"github.com/evisarw/visa-management/internal/application"
	applicationPostgres "github.com/evisarw/visa-management/internal/application/postgres"
	"github.com/evisarw/visa-management/internal/arrival"
	arrivalPostgres "github.com/evisarw/visa-management/internal/arrival/postgres"
	"github.com/evisarw/visa-management/internal/auth"
	authPostgres "github.com/evisarw/visa-management/internal/auth/postgres"
	"github.com/evisarw/visa-management/internal/core/events"
	"github.com/evisarw/visa-management/internal/country"
	countryPostgres "github.com/evisarw/visa-management/internal/country/postgres"
	"github.com/evisarw/visa-management/internal/document"
	"github.com/evisarw/visa-management/internal/notification"
	"github.com/evisarw/visa-management/internal/permission"
	permissionPostgres "github.com/evisarw/visa-management/internal/permission/postgres"
	"github.com/evisarw/visa-management/internal/report"
	reportPostgres "github.com/evisarw/visa-management/internal/report/postgres"
	"github.com/evisarw/visa-management/internal/transport"
	"github.com/evisarw/visa-management/internal/transport/rest"
	"github.com/evisarw/visa-management/internal/user"
	userPostgres "github.com/evisarw/visa-management/internal/user/postgres"
	"github.com/evisarw/visa-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config     *internal.Config
	DB         *sqlx.DB
	Router     *chi.Mux
	Logger     *slog.Logger
	Dispatcher *notification.Dispatcher
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.Dispatcher.Shutdown()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(lg)

	// Auth and permissions.
	authRepo := authPostgres.NewRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)
	authz := auth.NewAuthorization(lg)

	permissionRepo := permissionPostgres.NewPermissionRepository(gormDB)
	permissionService := permission.NewService(permissionRepo, lg)
	permissionHandler := permission.NewHandler(permissionService)

	// Documents and notifications.
	documentService := document.NewService(config.Documents.FrontendURL, config.Documents.IssuerName, lg)
	sender := notification.NewSMTPSender(
		config.SMTP.Host, config.SMTP.Port,
		config.SMTP.Username, config.SMTP.Password, config.SMTP.From,
	)
	dispatcher := notification.NewDispatcher(notification.DispatcherConfig{
		MaxWorkers:   config.Notifications.MaxWorkers,
		QueueSize:    config.Notifications.QueueSize,
		MaxAttempts:  config.Notifications.MaxAttempts,
		RetryBackoff: config.Notifications.RetryBackoff,
	}, sender, lg)

	// Applications and arrivals.
	applicationRepo := applicationPostgres.NewApplicationRepository(gormDB)
	applicationService := application.NewService(applicationRepo, eventBus, lg)
	applicationHandler := application.NewHandler(lg, applicationService, documentService)

	arrivalRepo := arrivalPostgres.NewArrivalRepository(gormDB)
	arrivalService := arrival.NewService(arrivalRepo, lg)
	arrivalHandler := arrival.NewHandler(lg, arrivalService)

	notificationService := notification.NewService(dispatcher, applicationService, documentService, config.Documents.IssuerName, lg)
	notificationService.Subscribe(eventBus)

	// Reporting.
	reportRepo := reportPostgres.NewReportRepository(db)
	reportService := report.NewService(reportRepo, lg)
	reportHandler := report.NewHandler(lg, reportService)

	// Users and countries.
	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, config.Security.BCryptCost, lg)
	userHandler := user.NewHandler(lg, userService)

	countryRepo := countryPostgres.NewCountryRepository(gormDB)
	countryService := country.NewService(countryRepo, lg)
	countryHandler := country.NewHandler(transport.NewBaseHandler(lg), countryService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:         authHandler,
		Authz:        authz,
		Applications: applicationHandler,
		Arrivals:     arrivalHandler,
		Reports:      reportHandler,
		Users:        userHandler,
		Countries:    countryHandler,
		Permissions:  permissionHandler,
	}, lg)

	return &Dependencies{
		Config:     config,
		Logger:     lg,
		DB:         db,
		Router:     router,
		Dispatcher: dispatcher,
	}, nil
}

// initDB opens the pgx stdlib connection shared by sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
