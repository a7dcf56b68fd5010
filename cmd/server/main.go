package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/fintakip/backend/internal/config"
	"github.com/fintakip/backend/internal/finance"
	"github.com/fintakip/backend/internal/gemini"
	"github.com/fintakip/backend/internal/logging"
	"github.com/fintakip/backend/internal/service"
	"github.com/fintakip/backend/internal/store"
	"github.com/fintakip/backend/internal/voice"
	"github.com/fintakip/backend/web"
)

func main() {
	// Load .env for local development, ignore errors in production
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)
	log := logger.WithField("component", "server")

	memStore := store.NewMemoryStore(finance.SeedTransactions()...)

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, AI features will be unavailable")
	}
	gateway := gemini.NewClient(gemini.Config{
		APIKey:          cfg.GeminiAPIKey,
		BaseURL:         cfg.GeminiBaseURL,
		InsightsModel:   cfg.InsightsModel,
		ExtractionModel: cfg.ExtractionModel,
		Timeout:         cfg.GeminiTimeout,
		Logger:          logger,
	})

	voiceManager := voice.NewManager(func() *voice.Pipeline {
		return voice.NewPipeline(voice.PipelineConfig{
			Capture:     voice.RemoteCapture{},
			Extractor:   gateway,
			Recorder:    memStore,
			MaxRestarts: cfg.MaxRecognizerRestarts,
			Logger:      logger,
		})
	})

	financeService := service.NewFinanceService(memStore, gateway, voiceManager, cfg.SpeechLocale, logger)

	mux := http.NewServeMux()
	financeService.RegisterRoutes(mux)

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		log.WithError(err).Fatal("failed to mount embedded UI")
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, "index.html")
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Voice-Session",
		},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(c.Handler(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
