package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/cli"
	"github.com/dmitrijs2005/libris/internal/config"
	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/nav"
	"github.com/dmitrijs2005/libris/internal/session"
	"github.com/dmitrijs2005/libris/internal/storage"
)

var (
	flagConfig   string
	flagAPIURL   string
	flagCache    string
	flagLogLevel string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "libris",
		Short:         "Terminal client for the libris library management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to a JSON config file")
	cmd.Flags().StringVarP(&flagAPIURL, "api-url", "a", "", "base URL of the backend API")
	cmd.Flags().StringVar(&flagCache, "cache", "", "path of the local session cache")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
	return cmd
}

func run(ctx context.Context) error {
	cfg, err := config.Load(config.Overrides{
		ConfigFile: flagConfig,
		APIBaseURL: flagAPIURL,
		CachePath:  flagCache,
		LogLevel:   flagLogLevel,
	})
	if err != nil {
		return err
	}

	logger, err := logging.NewZapLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := storage.Open(ctx, cfg.CachePath)
	if err != nil {
		return fmt.Errorf("failed to open session cache: %w", err)
	}
	defer db.Close()

	gw := api.NewRest(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	store := session.NewManager(gw, db, session.DefaultKeys, logger)
	app := cli.NewApp(cfg, gw, store, nav.NewRouter(), logger)

	app.Run(ctx)
	return nil
}

func initSignalHandler(cancel context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initSignalHandler(cancel)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
