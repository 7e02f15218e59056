package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/calref/inboxcal/internal/config"
	"github.com/calref/inboxcal/internal/extract"
	"github.com/calref/inboxcal/internal/extract/llm"
	"github.com/calref/inboxcal/internal/extract/rules"
	"github.com/calref/inboxcal/internal/handlers"
	"github.com/calref/inboxcal/internal/logger"
	"github.com/calref/inboxcal/internal/middleware"
	"github.com/calref/inboxcal/internal/telemetry"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("llm_base_url", cfg.LLMBaseURL),
		zap.String("llm_model", cfg.LLMModel),
		zap.String("timezone", cfg.Timezone),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "inboxcal-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Build the extraction engine
	rulesEx := rules.NewExtractor(cfg.Location())
	llmClient := llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, zapLogger, debugMode)
	taskEx := llm.NewTaskExtractor(llmClient, cfg.Timezone, cfg.LLMBudgetMs)
	eventEx := llm.NewEventExtractor(llmClient)
	smart := extract.NewSmart(rulesEx, taskEx)
	selector := extract.NewSelector(rulesEx, eventEx)

	// Initialize handlers
	extractHandler := handlers.NewExtractHandler(rulesEx)
	smartHandler := handlers.NewSmartExtractHandler(smart)
	eventsHandler := handlers.NewEventsHandler(selector)
	uploadHandler := handlers.NewUploadHandler(rulesEx)
	icsHandler := handlers.NewICSHandler()
	healthChecker := handlers.NewHealthChecker(cfg.Timezone)

	rateLimitMW, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		zapLogger.Fatal("invalid_rate_limit", zap.String("rate", cfg.RateLimit), zap.Error(err))
	}

	// Setup router
	r := mux.NewRouter()

	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware("inboxcal-api"))
		zapLogger.Info("otel_middleware_enabled")
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(zapLogger))

	// Public routes
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", healthChecker.VersionInfo).Methods("GET")

	openAPIPath := filepath.Join("api", "openapi", "openapi.yaml")
	openAPIHandler := handlers.NewOpenAPIHandler(openAPIPath)
	openAPIHandler.RegisterRoutes(r)

	// Extraction routes. The upload endpoint takes multipart bodies and
	// gets its own, larger size cap.
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(rateLimitMW)

	jsonRouter := apiRouter.PathPrefix("").Subrouter()
	jsonRouter.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	jsonRouter.HandleFunc("/extract", extractHandler.Extract).Methods("POST")
	jsonRouter.HandleFunc("/llm-extract", smartHandler.Extract).Methods("POST")
	jsonRouter.HandleFunc("/events/extract", eventsHandler.Extract).Methods("POST")
	jsonRouter.HandleFunc("/ics", icsHandler.Generate).Methods("POST")

	uploadRouter := apiRouter.PathPrefix("/upload").Subrouter()
	uploadRouter.Use(middleware.MaxRequestSize(middleware.UploadMaxRequestSize))
	uploadRouter.HandleFunc("", uploadHandler.Upload).Methods("POST")

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		zapLogger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server_error", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful_shutdown_failed", zap.Error(err))
	}
}
