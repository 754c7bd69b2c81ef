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
	"time"

	"github.com/Berikbol/ring-system/config"
	"github.com/Berikbol/ring-system/db"
	"github.com/Berikbol/ring-system/handlers"
	"github.com/Berikbol/ring-system/models"
	"github.com/Berikbol/ring-system/rings"
	api "github.com/Berikbol/ring-system/routes"
	"github.com/Berikbol/ring-system/services"
	"github.com/Berikbol/ring-system/storage"
	"github.com/Berikbol/ring-system/store"
	"github.com/Berikbol/ring-system/utils"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("snapshot_backend", cfg.SnapshotBackend))

	// Persistence-адаптер снапшотов: выбирается конфигом, может отсутствовать.
	blobs, cleanup, err := buildSnapshotStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize snapshot store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	// Инициализация WebSocket Hub
	wsHub := rings.NewHub()
	logger.Info("WebSocket Hub created")

	// Живой набор данных
	dataStore := store.New(models.TournamentConfig{
		Name:             cfg.TournamentName,
		RingsPerDivision: cfg.RingsPerDivision,
	})

	passwordHash, err := utils.HashPassword(cfg.OperatorPassword)
	if err != nil {
		logger.Error("failed to hash operator password", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация сервисов
	authService := services.NewAuthService(cfg.OperatorName, passwordHash)
	historyService := services.NewHistoryService(dataStore, cfg.HistoryDepth, wsHub, logger)
	datasetService := services.NewDatasetService(dataStore, historyService, wsHub, blobs, logger)
	assignmentService := services.NewAssignmentService(dataStore, historyService, wsHub, logger)
	checkpointService := services.NewCheckpointService(dataStore, historyService, wsHub, logger)
	logger.Info("services initialized")

	// Подхват сохранённого набора данных с прошлого запуска.
	if blobs != nil {
		if err := datasetService.RestoreDataset(context.Background()); err != nil {
			if errors.Is(err, services.ErrNoSavedDataset) {
				logger.Info("no saved dataset found, starting empty")
			} else {
				logger.Error("failed to restore saved dataset", slog.Any("error", err))
				os.Exit(1)
			}
		}
	}

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	datasetHandler := handlers.NewDatasetHandler(datasetService)
	categoryHandler := handlers.NewCategoryHandler(datasetService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	checkpointHandler := handlers.NewCheckpointHandler(checkpointService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		datasetHandler,
		categoryHandler,
		assignmentHandler,
		checkpointHandler,
		historyHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		wsHub.Run()
		return nil
	})

	if blobs != nil {
		g.Go(func() error {
			runAutosave(gctx, dataStore, datasetService, cfg.AutosaveInterval, logger)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

// buildSnapshotStore собирает persistence-адаптер по конфигу. Для бэкенда
// none возвращает nil: сохранение и автосейв отключены.
func buildSnapshotStore(cfg *config.Config, logger *slog.Logger) (storage.SnapshotStore, func(), error) {
	noop := func() {}

	switch cfg.SnapshotBackend {
	case config.SnapshotBackendNone:
		logger.Info("snapshot persistence disabled")
		return nil, noop, nil

	case config.SnapshotBackendPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, noop, err
		}
		if err := storage.EnsureSchema(context.Background(), dbConn); err != nil {
			dbConn.Close()
			return nil, noop, err
		}
		logger.Info("postgres snapshot store initialized")
		cleanup := func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		}
		return storage.NewPostgresSnapshotStore(dbConn), cleanup, nil

	case config.SnapshotBackendR2:
		blobs, err := storage.NewCloudflareR2Store(storage.CloudflareR2StoreConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		})
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Cloudflare R2 snapshot store initialized")
		return blobs, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
}

// runAutosave периодически сохраняет набор данных, пропуская тики без
// изменений. Финальное сохранение делается при остановке.
func runAutosave(ctx context.Context, dataStore *store.Store, datasetService services.DatasetService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("autosave started", slog.Duration("interval", interval))

	lastSaved := dataStore.Version()
	for {
		select {
		case <-ticker.C:
			current := dataStore.Version()
			if current == lastSaved {
				continue
			}
			if err := datasetService.SaveDataset(ctx); err != nil {
				logger.Error("autosave failed", slog.Any("error", err))
				continue
			}
			lastSaved = current

		case <-ctx.Done():
			if dataStore.Version() != lastSaved {
				saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				if err := datasetService.SaveDataset(saveCtx); err != nil {
					logger.Error("final autosave failed", slog.Any("error", err))
				}
				cancel()
			}
			logger.Info("autosave stopped")
			return
		}
	}
}
