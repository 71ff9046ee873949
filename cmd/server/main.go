package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arabchat/arabchat-server/internal/app"
	"github.com/arabchat/arabchat-server/internal/config"
	"github.com/arabchat/arabchat-server/internal/log"
	"github.com/arabchat/arabchat-server/internal/seed"
	"github.com/arabchat/arabchat-server/internal/store/sqlite"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "arabchat-server",
		Short: "Realtime single-room chat backend",
		RunE:  runServe,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP and chat server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Provision reserved usernames and exit",
			RunE:  runSeed,
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	bootLogger := log.New("info")
	cfg, path, err := config.Load(bootLogger, configPath)
	if err != nil {
		return err
	}

	logger := log.New(cfg.LogLevel)
	logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting arabchat server")

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	logger := log.New("info")
	cfg, _, err := config.Load(logger, configPath)
	if err != nil {
		return err
	}

	st, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	return seed.Run(cmd.Context(), st, logger)
}
