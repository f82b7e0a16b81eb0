package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sinister-snare/internal/api"
	"sinister-snare/internal/config"
	"sinister-snare/internal/db"
	"sinister-snare/internal/engine"
	"sinister-snare/internal/feed"
	"sinister-snare/internal/galaxy"
	"sinister-snare/internal/logger"
	"sinister-snare/internal/tracker"
)

var version = "dev"

func main() {
	// .env is optional; real config comes from config.yaml + SNARE_* env.
	godotenv.Load()

	var cfgPath string
	var port int

	root := &cobra.Command{
		Use:   "sinister-snare",
		Short: "Piracy intelligence for commodity trade routes",
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server with background tracking",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.API.Port = port
			}
			return runServe(cfg)
		},
	}
	serve.Flags().IntVarP(&port, "port", "p", 0, "override API port")

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Run one refresh cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			return runRefresh(cfg)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("sinister-snare", version)
		},
	}

	root.AddCommand(serve, refresh, versionCmd)
	if err := root.Execute(); err != nil {
		logger.Error("MAIN", err.Error())
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// buildStack wires the shared components behind both commands.
func buildStack(cfg *config.Config) (*tracker.Tracker, *feed.Client, *db.DB, error) {
	store, err := db.Open(cfg.DB.Path)
	if err != nil {
		return nil, nil, nil, err
	}

	client := feed.NewClient(
		cfg.Feed.BaseURL,
		time.Duration(cfg.Feed.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Feed.CacheTTL)*time.Second,
	)

	resolver := galaxy.NewResolverWithOverrides(cfg.TerminalFragments)
	seed := time.Now().UnixNano()
	tr := tracker.New(client, store, engine.NewSynthesizer(resolver, seed), engine.NewScorer(seed), cfg.Refresh)
	return tr, client, store, nil
}

func runServe(cfg *config.Config) error {
	logger.Banner(version)

	tr, client, store, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := api.NewServer(cfg, store, client, tr)
	httpSrv := &http.Server{
		Addr:              srv.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tr.Start()
	defer tr.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Server(httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sig:
		logger.Info("MAIN", "Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

func runRefresh(cfg *config.Config) error {
	logger.Banner(version)

	tr, _, store, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logs, err := tr.RunRefresh(context.Background())
	if err != nil {
		return err
	}

	logger.Section("Refresh summary")
	for _, l := range logs {
		logger.Stats(l.Stage, l.Message)
	}
	state := tr.Status()
	logger.Stats("routes", state.RouteCount)
	return nil
}
