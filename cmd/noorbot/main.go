// Command noorbot runs the content-catalog Telegram bot.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/malhaydar/noorbot/core/config"
	"github.com/malhaydar/noorbot/core/logger"
	coretelegram "github.com/malhaydar/noorbot/core/telegram"
	"github.com/malhaydar/noorbot/internal/bot"
	"github.com/malhaydar/noorbot/internal/catalog"
	"github.com/malhaydar/noorbot/internal/metrics"
	"github.com/malhaydar/noorbot/internal/scrape"

	"log/slog"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("noorbot: %v", err)
	}
}

func run() error {
	// A missing .env is fine; containers inject real environment.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	log.Printf("loading config: %s", cfgPath)
	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg); err != nil {
		return err
	}

	cat, err := catalog.Default(cfg.Content.PathPrefix)
	if err != nil {
		return err
	}
	fetcher, err := scrape.NewClient(
		cfg.Content.BaseURL,
		time.Duration(cfg.Content.FetchTimeoutSeconds)*time.Second,
	)
	if err != nil {
		return err
	}

	app, err := bot.New(cfg, cat, fetcher)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Metrics.Listen != "" {
		go serveMetrics(ctx, cfg.Metrics.Listen)
	}

	startedAt := time.Now()
	opts := app.RunOptions()
	opts.OnStart = func(ctx context.Context, _ *tele.Bot) error {
		logger.L.With("component", "app").Info("app ready",
			slog.String("event", "ready"),
			slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
		)
		return nil
	}
	opts.OnStop = func(ctx context.Context, _ *tele.Bot) error {
		logger.L.With("component", "app").Info("shutting down...",
			slog.String("event", "shutdown"),
		)
		return nil
	}

	return coretelegram.RunTelegram(ctx, opts)
}

// serveMetrics exposes the Prometheus endpoint until the root context ends.
func serveMetrics(ctx context.Context, listen string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: listen, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.L.With("component", "app").Info("metrics listener",
		slog.String("event", "metrics.listen"),
		slog.String("addr", listen),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.With("component", "app").Error("metrics listener failed",
			slog.String("event", "metrics.listen"),
			slog.String("err", err.Error()),
		)
	}
}
