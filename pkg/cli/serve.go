package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/bcm-lab/atropos/pkg/cli/config"
	httpctrl "github.com/bcm-lab/atropos/pkg/controller/http"
	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/bcm-lab/atropos/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var policyCfg config.Policy
	var slackCfg config.Slack
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ATROPOS_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithPolicy(policyCfg.Configure()),
			}

			// Initialize Slack publisher if a token is provided
			publisher, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack publisher")
			}
			if publisher != nil {
				ucOpts = append(ucOpts, usecase.WithPublisher(publisher))
				logging.Default().Info("Slack notifications enabled")
			} else {
				logging.Default().Info("Slack token not configured, workflow notifications disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			// Seed the rating catalog when a config file is given
			if catalogCfg.Path() != "" {
				seed, err := config.LoadCatalogConfig(catalogCfg.Path())
				if err != nil {
					return goerr.Wrap(err, "failed to load seed catalog")
				}
				if err := seed.Apply(ctx, uc); err != nil {
					return goerr.Wrap(err, "failed to apply seed catalog")
				}
				logging.Default().Info("Seed catalog applied",
					"path", catalogCfg.Path(),
					"categories", len(seed.Categories),
					"parameters", len(seed.Parameters),
					"rto_options", len(seed.RTOOptions),
					"frameworks", len(seed.Frameworks),
				)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "backend", repoCfg.Backend())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
