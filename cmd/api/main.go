package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/emoup/internal/api"
	"github.com/your-org/emoup/internal/config"
	"github.com/your-org/emoup/internal/emotion"
	"github.com/your-org/emoup/internal/observability"
	"github.com/your-org/emoup/internal/queue"
	"github.com/your-org/emoup/internal/quotes"
	"github.com/your-org/emoup/internal/recommend"
	"github.com/your-org/emoup/internal/storage"
	"github.com/your-org/emoup/internal/wordcloud"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting emoup API service", "port", cfg.Server.Port)

	// Connect to MongoDB
	db, err := storage.NewMongoStore(cfg.Mongo)
	if err != nil {
		slog.Error("connect to mongo", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := db.Close(closeCtx); err != nil {
			slog.Warn("close mongo", "error", err)
		}
	}()

	// Connect to MinIO
	media, err := storage.NewMediaStore(cfg.MinIO)
	if err != nil {
		slog.Error("connect to minio", "error", err)
		os.Exit(1)
	}
	if err := media.EnsureBucket(context.Background()); err != nil {
		slog.Warn("ensure minio bucket", "error", err)
	}

	// Connect to NATS
	producer, err := queue.NewProducer(cfg.NATS.URL)
	if err != nil {
		slog.Error("connect to nats", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	if err := producer.EnsureStream(context.Background()); err != nil {
		slog.Warn("ensure nats stream", "error", err)
	}

	// Core pipeline and playlist selector
	pipeline := emotion.NewPipeline(db, emotion.NewLexiconClassifier())
	selector := recommend.NewSelector(db)

	// External service clients
	quotesClient := quotes.NewClient(cfg.Quotes)
	wcRenderer := wordcloud.NewRenderer(cfg.Render.WordCloudURL)

	// Setup router
	router := api.NewRouter(api.RouterConfig{
		APIKey:        cfg.Server.APIKey,
		PublicBaseURL: cfg.Server.PublicBaseURL,
		DB:            db,
		Media:         media,
		Producer:      producer,
		Pipeline:      pipeline,
		Selector:      selector,
		Quotes:        quotesClient,
		WordCloud:     wcRenderer,
	})

	// Start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("API server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down API server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("API server stopped")
}
