package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elC0mpa/ec2-observe/api"
	"github.com/elC0mpa/ec2-observe/config"
	"github.com/elC0mpa/ec2-observe/logging"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	var configDir, addr string

	cmd := &cobra.Command{
		Use:           "ec2-observe-server",
		Short:         "Serve the ec2-observe dashboard API over HTTP",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", ".", "Directory searched for .ec2observe.yaml/.toml")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.L()

	providers := provider.NewFactory(cfg, logger)
	handler := api.NewServer(providers, preferences.NewFileStore(cfg.FilterStatePath),
		api.WithLogger(logger),
		api.WithDefaultProvider(cfg.Provider),
		api.WithVersion(version),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.Strings("providers", providers.Configured()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
