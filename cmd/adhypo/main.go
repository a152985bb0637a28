package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"adhypo/app"
	"adhypo/domain/core"
	"adhypo/internal"
	"adhypo/internal/config"
	"adhypo/internal/container"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitConfigError = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, core.ErrConfigInvalid):
		return exitConfigError
	default:
		return exitFailure
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "adhypo [query]",
		Short: "Campaign performance insight pipeline",
		Long: `Reads campaign performance data, flags low-CTR and low-ROAS campaigns,
validates heuristic hypotheses and proposes creative variants.

Example: adhypo "Analyze ROAS drop in last 7 days" --config config/config.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd.OutOrStdout(), configPath, args[0])
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the YAML configuration file")
	cmd.AddCommand(newServeCmd(&configPath), newGenDataCmd(), newImportRunsCmd(&configPath))

	return cmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve runs, the run ledger and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *configPath)
		},
	}
}

// bootstrap loads configuration and builds the logger and container
func bootstrap(ctx context.Context, configPath string) (*container.Container, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}

	cleanup := func() {
		if err := c.Close(); err != nil {
			logger.Warn("close container", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return c, cleanup, nil
}

func runQuery(ctx context.Context, out io.Writer, configPath, query string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	c, cleanup, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	outcome, err := c.RunService.Execute(ctx, query)
	if err != nil {
		return err
	}

	printOutcome(out, outcome.Written)
	return nil
}

func printOutcome(out io.Writer, w app.Written) {
	fmt.Fprintln(out, "Run complete.")
	fmt.Fprintf(out, "- insights: %s\n", w.Insights)
	fmt.Fprintf(out, "- creatives: %s\n", w.Creatives)
	fmt.Fprintf(out, "- report: %s\n", w.Report)
	if w.ReportHTML != "" {
		fmt.Fprintf(out, "- report html: %s\n", w.ReportHTML)
	}
	fmt.Fprintf(out, "- run log: %s\n", w.RunLog)
}

func serve(ctx context.Context, configPath string) error {
	c, cleanup, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              c.Config.Server.Addr,
		Handler:           c.APIServer(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
