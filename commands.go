package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/devfolio-backend/api"
	"github.com/rpupo63/devfolio-backend/config"
	"github.com/rpupo63/devfolio-backend/database"
	"github.com/rpupo63/devfolio-backend/models"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		if config.GetBool(cfg, "AUTO_MIGRATE", true) {
			if err := db.MigrateUp(); err != nil {
				return err
			}
		}

		server, err := api.NewServer(cfg, db)
		if err != nil {
			return fmt.Errorf("initialize server: %w", err)
		}

		ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(server.Start)
		g.Go(func() error {
			<-gctx.Done()
			timeout := time.Duration(config.GetInt(cfg, "SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second
			return server.ShutdownGracefully(timeout)
		})
		return g.Wait()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: withDatabase(func(db database.Database, args []string) error {
		if err := db.MigrateUp(); err != nil {
			return err
		}
		log.Info().Msg("Migrations applied")
		return nil
	}),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations",
	RunE: withDatabase(func(db database.Database, args []string) error {
		if err := db.MigrateDown(); err != nil {
			return err
		}
		log.Info().Msg("Migrations reverted")
		return nil
	}),
}

var migrateStepsCmd = &cobra.Command{
	Use:   "steps N",
	Short: "Apply N migrations, or revert them when N is negative",
	Args:  cobra.ExactArgs(1),
	RunE: withDatabase(func(db database.Database, args []string) error {
		steps, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q: %w", args[0], err)
		}
		return db.MigrateStep(steps)
	}),
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied migration version",
	RunE: withDatabase(func(db database.Database, args []string) error {
		status, err := db.MigrationStatus()
		if err != nil {
			return err
		}
		fmt.Printf("Current: %d\nLatest:  %d\nDirty:   %t\nPending: %t\n",
			status.CurrentVersion, status.LatestVersion, status.Dirty, status.Pending)
		return nil
	}),
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Auto-migrate models, report unmapped columns and write query helpers",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		gormDB, err := database.Open(cfg)
		if err != nil {
			return err
		}
		return models.GenerateModels(gormDB, out)
	},
}

func init() {
	generateCmd.Flags().String("out", "./generated", "Output directory for generated query code")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStepsCmd)
	migrateCmd.AddCommand(migrateVersionCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(generateCmd)
}

func openDatabase() (database.Database, error) {
	gormDB, err := database.Open(cfg)
	if err != nil {
		return database.Database{}, err
	}
	return database.New(gormDB), nil
}

func withDatabase(run func(db database.Database, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing database: %v\n", err)
			}
		}()
		return run(db, args)
	}
}

// contextOrBackground guards against commands executed without a context.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
