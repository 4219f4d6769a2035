package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-directory-api/config"
	"user-directory-api/internal/application/services"
	domain "user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/db/memory"
	"user-directory-api/internal/infrastructure/db/postgres"
	"user-directory-api/internal/infrastructure/db/postgres/user"
	"user-directory-api/internal/infrastructure/metrics"
	"user-directory-api/internal/infrastructure/storage"
	"user-directory-api/internal/interface/api/rest"
)

type App struct {
	logger   *zap.Logger
	cfg      config.Config
	db       *pgxpool.Pool
	userRepo domain.Repository
	storage  *storage.Disk
	httpSrv  *http.Server
	mCounter *prometheus.CounterVec
}

func NewApp(ctx context.Context) (*App, error) {
	// config; a missing .env is fine, the environment may already be set
	_ = godotenv.Load(".env")
	cfg := config.Load()

	// logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// metrics
	mCounter := metrics.NewCounter(prometheus.DefaultRegisterer)

	// router mode
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// db
	a := &App{
		logger:   logger,
		cfg:      cfg,
		mCounter: mCounter,
	}
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Warn("database not configured, keeping users in memory", zap.Error(err))
		a.userRepo = memory.NewUserRepository()
	} else {
		dbPool, err := postgres.New(ctx, logger, dbDsn, cfg.DB)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if cfg.DB.RunMigrations {
			if err = postgres.RunMigrations(ctx, dbPool, logger); err != nil {
				dbPool.Close()
				logger.Fatal("failed to apply migrations", zap.Error(err))
			}
		}
		a.db = dbPool
		a.userRepo = user.NewRepository(dbPool)
	}

	// uploads
	disk, err := storage.New(logger, cfg.Upload)
	if err != nil {
		logger.Fatal("failed to prepare upload dir", zap.Error(err))
	}
	a.storage = disk

	return a, nil
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	return zcfg.Build()
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// services
	userService := services.NewUserService(a.userRepo, a.mCounter)
	exportService := services.NewExportService(userService, "", a.mCounter)

	handler := rest.NewHandler(rest.Options{
		Production:     a.cfg.App.IsProduction(),
		CORSOrigins:    a.cfg.App.CORSOrigins,
		UploadDir:      a.cfg.Upload.Dir,
		UploadPrefix:   a.cfg.Upload.PublicPrefix,
		RequestTimeout: a.cfg.App.RequestTimeout,
	}, rest.Deps{
		Logger:        a.logger,
		UserService:   userService,
		ExportService: exportService,
		Storage:       a.storage,
		Counter:       a.mCounter,
		Gatherer:      prometheus.DefaultGatherer,
	})

	a.httpSrv = &http.Server{
		Addr:              a.cfg.App.Host + ":" + a.cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) Logger() *zap.Logger { return a.logger }
