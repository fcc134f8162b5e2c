package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"keyword-go/internal/config"
	"keyword-go/internal/handler"
	"keyword-go/internal/service"
	"keyword-go/pkg/logger"
	"keyword-go/pkg/provider"
)

type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "", "Configuration file path (optional, env: KEYWORD_*)")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if err := app.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func (app *Application) Run() error {
	cfg, err := config.NewManager().Load(app.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if app.debug {
		cfg.Logger.Level = "debug"
	}
	logger.SetLogger(logger.New(cfg.Logger))
	log := logger.GetLogger().WithField("component", "server")

	var candidates provider.CandidateProvider
	if cfg.Provider.Enabled() {
		candidates = provider.NewClient(cfg.Provider.ClientConfig())
		log.WithFields(map[string]interface{}{
			"endpoint": logger.MaskEndpoint(cfg.Provider.Endpoint),
			"api_key":  logger.MaskSecret(cfg.Provider.APIKey),
		}).Info("Keyword provider configured")
	} else {
		log.Info("No keyword provider configured, fetch requests will be rejected")
	}

	svc := service.NewKeywordService(candidates, cfg.Extraction.Options())
	server := handler.NewController(svc, handler.ControllerConfig{
		BodyLimitBytes:  cfg.Server.BodyLimitBytes,
		ProviderEnabled: cfg.Provider.Enabled(),
	}).NewApp()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Server listening")
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, draining connections")
	if err := server.ShutdownWithTimeout(cfg.Server.ShutdownTimeoutDuration()); err != nil {
		log.WithError(err).Warn("Server did not shut down cleanly")
		return err
	}

	if client, ok := candidates.(*provider.Client); ok {
		log.WithField("provider_stats", client.Stats()).Info("Provider usage")
	}
	log.Info("Server stopped")
	return nil
}
