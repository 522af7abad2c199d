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
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/widyatama/shift-management/internal"
	"github.com/widyatama/shift-management/internal/auth"
	authPostgres "github.com/widyatama/shift-management/internal/auth/postgres"
	authRedis "github.com/widyatama/shift-management/internal/auth/redis"
	"github.com/widyatama/shift-management/internal/company"
	companyPostgres "github.com/widyatama/shift-management/internal/company/postgres"
	"github.com/widyatama/shift-management/internal/core/events"
	"github.com/widyatama/shift-management/internal/shift"
	shiftPostgres "github.com/widyatama/shift-management/internal/shift/postgres"
	"github.com/widyatama/shift-management/internal/transport"
	"github.com/widyatama/shift-management/internal/transport/rest"
	"github.com/widyatama/shift-management/internal/user"
	userPostgres "github.com/widyatama/shift-management/internal/user/postgres"
	"github.com/widyatama/shift-management/pkg/logger"
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
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Redis  *redis.Client
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler    *auth.Handler
	ShiftHandler   *shift.Handler
	UserHandler    *user.Handler
	CompanyHandler *company.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.Redis,
		deps.AuthHandler,
		deps.ShiftHandler,
		deps.UserHandler,
		deps.CompanyHandler,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.Redis.Close(); err != nil {
			slog.Error("Redis close error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Env)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})

	eventBus := events.NewEventBus(lg)
	registerAuditSubscribers(eventBus, lg)

	baseHandler := transport.NewBaseHandler(lg)

	authRepo := authPostgres.NewRepository(gormDB)
	sessionStore := authRedis.NewSessionStore(redisClient)
	authService := auth.NewService(authRepo, sessionStore, eventBus, config.Security.BCryptCost, config.Security.SessionTTL, lg)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure: config.Security.SecureCookies,
		TTL:    config.Security.SessionTTL,
	})

	shiftRepo := shiftPostgres.NewRepository(gormDB)
	shiftService := shift.NewService(shiftRepo, eventBus, lg)
	shiftHandler := shift.NewHandler(baseHandler, shiftService)

	userRepo := userPostgres.NewRepository(gormDB)
	userService := user.NewService(userRepo, lg)
	userHandler := user.NewHandler(baseHandler, userService)

	companyRepo := companyPostgres.NewRepository(gormDB)
	companyService := company.NewService(companyRepo, lg)
	companyHandler := company.NewHandler(baseHandler, companyService)

	return &Dependencies{
		Config: config,
		DB:     db,
		GormDB: gormDB,
		Redis:  redisClient,
		Router: chi.NewRouter(),
		Logger: lg,

		AuthHandler:    authHandler,
		ShiftHandler:   shiftHandler,
		UserHandler:    userHandler,
		CompanyHandler: companyHandler,
	}, nil
}

// initDB initializes the database connection
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the existing pgx connection pool. TranslateError is
// required: the repositories map gorm.ErrDuplicatedKey to domain errors.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
}

// registerAuditSubscribers wires the audit trail: assignment changes are
// logged as structured events.
func registerAuditSubscribers(bus *events.EventBus, lg *slog.Logger) {
	logEvent := func(ctx context.Context, event events.Event) error {
		lg.Info("audit event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeShiftAssigned, logEvent)
	bus.Subscribe(events.EventTypeShiftReleased, logEvent)
	bus.Subscribe(events.EventTypeUserRegistered, logEvent)
}
