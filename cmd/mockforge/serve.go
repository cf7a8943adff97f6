package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mockforge/mockforge/pkg/config"
	"github.com/mockforge/mockforge/pkg/definition"
	"github.com/mockforge/mockforge/pkg/engine"
	"github.com/mockforge/mockforge/pkg/logging"
	"github.com/mockforge/mockforge/pkg/records"
	"github.com/mockforge/mockforge/pkg/requestlog"
	"github.com/mockforge/mockforge/pkg/webhook"
)

const shutdownGrace = 10 * time.Second

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
		Output: os.Stderr,
	})

	reg := definition.NewRegistry()
	store := records.NewStore()

	hookOpts := []webhook.Option{webhook.WithLogger(log)}
	if cfg.Webhook.Timeout > 0 {
		hookOpts = append(hookOpts, webhook.WithTimeout(cfg.Webhook.Timeout.Std()))
	}

	h := engine.NewHandler(reg, store,
		engine.WithLogger(log),
		engine.WithNotifier(webhook.New(hookOpts...)),
		engine.WithHistory(requestlog.New(cfg.History.Capacity)),
	)

	if err := registerDefinitions(cfg, reg, h); err != nil {
		return err
	}

	srv := engine.NewServer(cfg.Listen, cfg.Prefix, h, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	return srv.Start()
}

// loadConfig resolves the config file (flag, then MOCKFORGE_CONFIG,
// then defaults) and applies flag overrides on top.
func loadConfig() (*config.Config, error) {
	path := flags.config
	if path == "" {
		path = os.Getenv("MOCKFORGE_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.listen != "" {
		cfg.Listen = flags.listen
	} else if addr := os.Getenv("MOCKFORGE_LISTEN"); addr != "" {
		cfg.Listen = addr
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logging.Format = flags.logFormat
	}
	return cfg, nil
}

// registerDefinitions loads resources (seeding in declaration order,
// so parents can feed relation pools) and then custom APIs.
func registerDefinitions(cfg *config.Config, reg *definition.Registry, h *engine.Handler) error {
	for _, rc := range cfg.Resources {
		res := rc.ToDefinition()
		if err := reg.AddResource(res); err != nil {
			return fmt.Errorf("resource %q: %w", rc.Name, err)
		}
		if rc.Seed > 0 {
			h.SeedResource(res, rc.Seed)
		}
	}

	for _, ac := range cfg.APIs {
		api, err := ac.ToDefinition()
		if err != nil {
			return err
		}
		if err := reg.AddCustomAPI(api); err != nil {
			return fmt.Errorf("api %s %s: %w", ac.Method, ac.Path, err)
		}
	}
	return nil
}
