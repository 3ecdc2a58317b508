package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/config"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/logging"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type serveFlags struct {
	port string
	host string
	dev  bool
}

func newRootCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:          "faleproxy",
		Short:        "Proxy that rewrites Yale to Fale in fetched pages",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	bindServeFlags(cmd, &flags)

	cmd.AddCommand(newServeCmd(), newRewriteCmd())
	return cmd
}

func bindServeFlags(cmd *cobra.Command, flags *serveFlags) {
	cmd.Flags().StringVar(&flags.port, "port", "", "server port (overrides PORT)")
	cmd.Flags().StringVar(&flags.host, "host", "", "bind address (overrides HOST)")
	cmd.Flags().BoolVar(&flags.dev, "dev", false, "development mode with debug logging")
}

func newServeCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the UI and the /fetch endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	bindServeFlags(cmd, &flags)
	return cmd
}

func newRewriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rewrite <url>",
		Short: "Fetch one page, rewrite it and print the JSON result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			service, _, err := server.NewProxyService(cfg, logging.NewNop())
			if err != nil {
				return err
			}

			result, err := service.Rewrite(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func runServe(ctx context.Context, flags serveFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.port != "" {
		cfg.Server.Port = flags.port
	}
	if flags.host != "" {
		cfg.Server.Host = flags.host
	}
	if flags.dev {
		cfg.Logging.Development = true
	}

	logger, err := server.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Error("Failed to create server", zap.Error(err))
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server error", zap.Error(err))
		return err
	}

	logger.Info("Server stopped")
	return nil
}
