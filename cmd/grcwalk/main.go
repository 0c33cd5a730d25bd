package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"grcwalk/internal/config"
	"grcwalk/internal/database"
	"grcwalk/internal/server"
	"grcwalk/internal/service"
	"grcwalk/internal/transfer"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "grcwalk",
		Short:        "Governance, risk and compliance register API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newSeedCmd(), newExportCmd(), newImportCmd())
	return root
}

// bootstrap loads configuration, installs the logger and opens the store.
func bootstrap(ctx context.Context) (*config.Config, *service.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(cfg.NewLogger())

	repo, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, service.New(repo), nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, svc, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	if err := svc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}
	if cfg.SeedData {
		if _, err := svc.Seed(ctx); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           server.NewRouter(cfg, svc, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr, "driver", cfg.DBDriver, "auth", cfg.AuthEnabled)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return goerr.Wrap(err, "server error")
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return goerr.Wrap(err, "graceful shutdown failed")
	}
	return nil
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty store with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			seeded, err := svc.Seed(cmd.Context())
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "store already has data, nothing seeded")
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <kind>",
		Short: "Export one entity collection as a JSON array",
		Long:  "Kinds: risks, controls, risk-factors, consequences, bowtie-relationships, compliance, action-plans, audit-plans, vendors.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := transfer.ParseKind(args[0])
			if err != nil {
				return err
			}
			_, svc, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			data, err := svc.Export(cmd.Context(), kind)
			if err != nil {
				return err
			}

			if out == "" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return goerr.Wrap(err, "failed to write export", goerr.V("path", out))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %s to %s\n", kind, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <kind> <file>",
		Short: "Import a JSON array of entities; the whole file is rejected on any error",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := transfer.ParseKind(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return goerr.Wrap(err, "failed to read import file", goerr.V("path", args[1]))
			}
			_, svc, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			n, err := svc.Import(cmd.Context(), kind, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s\n", n, kind)
			return nil
		},
	}
}
