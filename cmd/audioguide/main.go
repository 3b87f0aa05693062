package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/audioguide/internal/catalog"
	"github.com/jask/audioguide/internal/config"
	"github.com/jask/audioguide/internal/database"
	"github.com/jask/audioguide/internal/database/repository"
	"github.com/jask/audioguide/internal/progress"
	"github.com/jask/audioguide/internal/routing"
	"github.com/jask/audioguide/internal/service"
	"github.com/jask/audioguide/internal/tui"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "audioguide",
		Short:        "Terminal audio guide: tours, free roam and walking routes",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	root.AddCommand(importCmd(), toursCmd(), configCmd(), resetCmd())
	return root
}

func runTUI(ctx context.Context, cfg config.Config) error {
	logFile, err := tea.LogToFile(cfg.Log.File, "audioguide")
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel(cfg.Log.Level)}))

	src, closeSrc, err := catalogSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	achievements, err := progress.LoadAchievements(cfg.Progress.AchievementsFile)
	if err != nil {
		return err
	}
	provider, err := routeProvider(cfg.Routing)
	if err != nil {
		return err
	}

	app := tui.New(ctx, cfg, tui.Deps{
		Source:       src,
		Route:        routing.NewSynchronizer(provider, cfg.Routing.Timeout, logger),
		Achievements: achievements,
		Log:          logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// catalogSource builds the configured source. The returned func releases
// any database handle.
func catalogSource(cfg config.Config) (catalog.Source, func(), error) {
	switch cfg.Catalog.Source {
	case "http":
		return catalog.NewHTTPSource(cfg.Catalog.URL), func() {}, nil
	case "sqlite":
		if err := database.RunMigrations(cfg.Database.Path); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		return repository.NewCatalogRepo(db), func() { db.Close() }, nil
	default:
		return catalog.FileSource{Dir: cfg.Catalog.Dir}, func() {}, nil
	}
}

// routeProvider returns nil for "none", which makes every tour use its
// fallback path.
func routeProvider(rc config.RoutingConfig) (routing.Provider, error) {
	switch rc.Provider {
	case "none":
		return nil, nil
	case "straight":
		return routing.Straight{}, nil
	default:
		var p routing.Provider = routing.NewOSRM(rc.BaseURL, rc.Profile)
		if rc.RatePerSecond > 0 {
			p = routing.NewLimited(p, rc.RatePerSecond)
		}
		if rc.CacheSize > 0 {
			return routing.NewCached(p, rc.CacheSize)
		}
		return p, nil
	}
}

func logLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func openDB(cfg config.Config) (*service.ImportService, *service.MaintenanceService, func(), error) {
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open db: %w", err)
	}
	imp := &service.ImportService{
		DB:      db,
		Catalog: repository.NewCatalogRepo(db),
		Imports: repository.NewImportRepo(db),
		Log:     slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Log.Level)})),
	}
	return imp, &service.MaintenanceService{DB: db}, func() { db.Close() }, nil
}

func importCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a catalog from a directory or API into the local database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if from == "" {
				from = cfg.Catalog.Dir
			}
			var src catalog.Source = catalog.FileSource{Dir: from}
			if strings.HasPrefix(from, "http://") || strings.HasPrefix(from, "https://") {
				src = catalog.NewHTTPSource(from)
			}

			imp, _, closeDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			res, err := imp.Import(cmd.Context(), src, from)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d stops and %d tours from %s\n", res.Stops, res.Tours, from)
			for _, ref := range res.Dangling {
				fmt.Fprintf(out, "warning: unknown stop %s\n", ref)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "catalog directory or API base URL (default: catalog.dir)")
	return cmd
}

func toursCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tours",
		Short: "List the tours of the configured catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			src, closeSrc, err := catalogSource(cfg)
			if err != nil {
				return err
			}
			defer closeSrc()

			stops, tours, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}
			store := catalog.NewStore(stops, tours)
			out := cmd.OutOrStdout()
			for _, t := range store.Tours() {
				length := routing.Path(t.Fallback).Length()
				fmt.Fprintf(out, "%-28s %-32s %2d stops  %6.0f m\n", t.ID, t.Name, len(store.TourStops(&t)), length)
			}
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the built-in defaults to the config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.Save(config.Defaults())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return cmd
}

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the cached catalog and import history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset is destructive; pass --yes to confirm")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			_, maint, closeDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()
			if err := maint.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog cache cleared: %s\n", cfg.Database.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
