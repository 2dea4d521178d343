package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"memoir/internal/analytics"
	"memoir/internal/auth"
	"memoir/internal/config"
	"memoir/internal/handler"
	"memoir/internal/handler/sse"
	"memoir/internal/middleware"
	"memoir/internal/repository/cache"
	"memoir/internal/repository/postgres"
	"memoir/internal/service"
	serviceLLM "memoir/internal/service/llm"
	"memoir/internal/service/surprise"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected", "max_conns", 25, "min_conns", 5)

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(ctx, pool, cfg.TablePrefix, logger); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	entryRepo := postgres.NewEntryRepository(repoConfig)
	traitsRepo := postgres.NewTraitsRepository(repoConfig)
	reflectionRepo := postgres.NewReflectionRepository(repoConfig)
	usageRepo := postgres.NewUsageRepository(repoConfig)
	userPrefsRepo := postgres.NewUserPreferencesRepository(repoConfig)
	goalRepo := postgres.NewGoalRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	entryStore := cache.NewEntryStore(entryRepo, logger)

	vocab, err := analytics.LoadVocabulary()
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}

	classifier, err := serviceLLM.NewProviderFactory(cfg).NewClassifier(vocab, logger)
	if err != nil {
		log.Fatalf("Failed to set up classifier: %v", err)
	}

	// Services
	userPrefsService := service.NewUserPreferencesService(userPrefsRepo, traitsRepo, goalRepo, cfg.DefaultTimezone, logger)
	usageService := service.NewUsageService(usageRepo, cfg.FreePromptLimit, cfg.UsagePeriod, logger)
	traitsService := service.NewTraitsService(traitsRepo, entryStore, classifier, vocab, logger)
	reflectionService := service.NewReflectionService(reflectionRepo, logger)
	goalService := service.NewGoalService(goalRepo, logger)
	analyticsService := service.NewAnalyticsService(entryStore, userPrefsService, vocab, logger)

	// Background work after each save
	hub := surprise.NewHub(logger)
	queue := surprise.NewTaskQueue(cfg.SurpriseQueueSize, cfg.SurpriseWorkers, logger)
	queue.Start(ctx)
	defer queue.Stop()

	scheduler := surprise.NewScheduler(surprise.Deps{
		Classifier:  classifier,
		Reflections: reflectionRepo,
		Store:       entryStore,
		Traits:      traitsService,
		Prefs:       userPrefsService,
		Hub:         hub,
		Queue:       queue,
	}, surprise.Config{
		Probability: cfg.SurpriseProbability,
		Delay:       cfg.SurpriseDelay,
	}, logger)

	entryService := service.NewEntryService(
		entryRepo,
		entryStore,
		classifier,
		usageService,
		userPrefsService,
		txManager,
		scheduler,
		logger,
	)

	// Handlers
	entryHandler := handler.NewEntryHandler(entryService, logger)
	statsHandler := handler.NewStatsHandler(analyticsService, logger)
	reflectionHandler := handler.NewReflectionHandler(reflectionService, hub, sse.DefaultConfig(), logger)
	userHandler := handler.NewUserHandler(traitsService, usageService, logger)
	userPrefsHandler := handler.NewUserPreferencesHandler(userPrefsService, logger)
	goalHandler := handler.NewGoalHandler(goalService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", entryHandler.HealthCheck)

	// Entry routes
	mux.HandleFunc("GET /api/entries", entryHandler.ListEntries)
	mux.HandleFunc("POST /api/entries", entryHandler.CreateEntry)
	mux.HandleFunc("DELETE /api/entries", entryHandler.ClearEntries)
	mux.HandleFunc("GET /api/entries/{id}", entryHandler.GetEntry)
	mux.HandleFunc("POST /api/prompts", entryHandler.GeneratePrompt)

	// Analytics routes
	mux.HandleFunc("GET /api/stats/dashboard", statsHandler.Dashboard)
	mux.HandleFunc("GET /api/stats/streak", statsHandler.Streak)
	mux.HandleFunc("GET /api/stats/moods", statsHandler.Moods)
	mux.HandleFunc("GET /api/stats/series", statsHandler.Series)
	mux.HandleFunc("GET /api/stats/lenses", statsHandler.Lenses)
	mux.HandleFunc("GET /api/stats/themes", statsHandler.Themes)

	// Reflection routes
	mux.HandleFunc("GET /api/reflections", reflectionHandler.ListReflections)
	mux.HandleFunc("GET /api/reflections/stream", reflectionHandler.Stream) // SSE
	mux.HandleFunc("POST /api/reflections/{id}/shown", reflectionHandler.MarkShown)

	// User routes
	mux.HandleFunc("GET /api/users/me/traits", userHandler.GetTraits)
	mux.HandleFunc("GET /api/users/me/usage", userHandler.GetUsage)
	mux.HandleFunc("GET /api/users/me/preferences", userPrefsHandler.GetPreferences)
	mux.HandleFunc("PATCH /api/users/me/preferences", userPrefsHandler.UpdatePreferences)

	// Goal routes
	mux.HandleFunc("GET /api/goals", goalHandler.ListGoals)
	mux.HandleFunc("POST /api/goals", goalHandler.CreateGoal)
	mux.HandleFunc("PATCH /api/goals/{id}", goalHandler.UpdateGoal)
	mux.HandleFunc("POST /api/goals/{id}/complete", goalHandler.CompleteGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", goalHandler.DeleteGoal)

	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(jwtVerifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", "error", err)
		}
	}()

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
