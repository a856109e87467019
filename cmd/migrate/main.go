package main

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"merchex/pkg/config"
	"merchex/pkg/logger"
	"merchex/postgres"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrationsDir string
	downSteps     int
)

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Apply the merchex database schema",
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(migrate.Up, 0)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(migrate.Down, downSteps)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := open()
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := migrate.GetMigrationRecords(db, "postgres")
		if err != nil {
			return fmt.Errorf("read migration records: %w", err)
		}
		for _, r := range records {
			log.Infow("applied", "id", r.Id, "at", r.AppliedAt)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "directory holding the SQL migrations")
	downCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back, 0 for all")

	rootCmd.AddCommand(upCmd, downCmd, statusCmd)
}

func main() {
	// With no subcommand the binary keeps applying pending migrations.
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "up")
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(direction migrate.MigrationDirection, max int) error {
	db, log, err := open()
	if err != nil {
		return err
	}
	defer db.Close()

	migrations := &migrate.FileMigrationSource{
		Dir: migrationsDir,
	}
	total, err := migrate.ExecMax(db, "postgres", migrations, direction, max)
	if err != nil {
		log.Errorw("cannot execute migration", zap.Error(err))
		return err
	}

	log.Infow("applied migrations", "total", total, "direction", directionName(direction))
	return nil
}

func open() (*sql.DB, *zap.SugaredLogger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	opts := postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
	db, err := sql.Open("postgres", opts.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, log, nil
}

func directionName(d migrate.MigrationDirection) string {
	if d == migrate.Down {
		return "down"
	}
	return "up"
}
