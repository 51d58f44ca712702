package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/database"
	"github.com/stemsi/rekamsehat-backend/internal/handler"
	"github.com/stemsi/rekamsehat-backend/internal/logger"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
	"github.com/stemsi/rekamsehat-backend/internal/router"
	"github.com/stemsi/rekamsehat-backend/internal/service"
	"github.com/stemsi/rekamsehat-backend/internal/storage"
	"github.com/stemsi/rekamsehat-backend/internal/validator"
	"github.com/stemsi/rekamsehat-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Bool("relay_require_auth", cfg.RelayRequireAuth).
		Msg("Starting RekamSehat Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Firestore ──────────────────────────────────────────
	fs, err := database.NewFirestoreClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Firestore")
	}
	defer fs.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	// Redis only backs the catalog cache and logout revocation, so the API
	// keeps serving without it.
	var rdb *redis.Client
	if client, err := database.NewRedisClient(ctx, cfg, log); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable; catalog cache and logout revocation disabled")
	} else {
		rdb = client
		defer rdb.Close()
	}

	// ─── Media Provider ────────────────────────────────────────────────
	var provider service.MediaProvider
	cld, err := storage.NewCloudinary(cfg, log)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		log.Warn().Msg("Cloudinary credentials missing; uploads will fail")
		provider = storage.Unconfigured{}
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to initialize Cloudinary")
	default:
		provider = cld
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(fs)
	pendingRepo := repository.NewPendingUserRepository(fs)
	spesifikRepo := repository.NewDataSpesifikRepository(fs)
	tingkatanRepo := repository.NewTingkatanRepository(fs)
	jenisRepo := repository.NewJenisPenyakitRepository(fs)
	penyakitRepo := repository.NewDataPenyakitRepository(fs)
	materiRepo := repository.NewDataMateriRepository(fs)
	umumRepo := repository.NewDataUmumRepository(fs)

	// ─── Initialize Services ──────────────────────────────────────────
	mediaService := service.NewMediaService(cfg, provider, log)

	// ─── Orphan Cleanup Worker ─────────────────────────────────────────
	// Failed best-effort deletes are retried in the background when Redis
	// is available.
	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()
	var orphanWorker *worker.OrphanWorker
	if rdb != nil {
		orphanWorker = worker.NewOrphanWorker(rdb, provider, log)
		mediaService.SetOrphanQueue(orphanWorker)
		go orphanWorker.Start(workerCtx)
	}
	authService := service.NewAuthService(cfg, rdb, userRepo, pendingRepo, spesifikRepo, log)
	userService := service.NewUserService(userRepo, pendingRepo, spesifikRepo, mediaService, authService, log)
	profileService := service.NewProfileService(authService, userRepo, spesifikRepo, tingkatanRepo, mediaService, log)
	catalogService := service.NewCatalogService(cfg, rdb, tingkatanRepo, jenisRepo, spesifikRepo, penyakitRepo, log)
	penyakitService := service.NewPenyakitService(penyakitRepo, jenisRepo, userRepo, log)
	materiService := service.NewMateriService(materiRepo, userRepo, log)
	umumService := service.NewUmumService(umumRepo, mediaService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, log),
		Media:    handler.NewMediaHandler(mediaService, log),
		User:     handler.NewUserHandler(userService, profileService, log),
		Profile:  handler.NewProfileHandler(profileService, log),
		Catalog:  handler.NewCatalogHandler(catalogService, log),
		Penyakit: handler.NewPenyakitHandler(penyakitService, log),
		Materi:   handler.NewMateriHandler(materiService, log),
		Umum:     handler.NewUmumHandler(umumService, log),
		System:   handler.NewSystemHandler(rdb, log),
	}

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load both catalogs into Redis BEFORE accepting traffic.
	if err := catalogService.Prewarm(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new HTTP requests (5s timeout). Firestore and Redis
	// close through the deferred calls afterwards.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Stop the worker and wait for it to push back any in-flight asset
	// before the deferred Redis close. Queued assets stay for the next run.
	workerCancel()
	if orphanWorker != nil {
		select {
		case <-orphanWorker.Done():
		case <-time.After(worker.PollTimeout + 5*time.Second):
			log.Warn().Msg("Orphan worker did not stop in time")
		}
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
