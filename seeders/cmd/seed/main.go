package main

import (
	"context"
	"fmt"
	"os"

	"elkarec/pkg/config"
	"elkarec/pkg/database/postgresql"
	applogger "elkarec/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Служебные команды ElkaRec: миграции, сидеры, импорт и пользователи",
	Long: `Служебные команды ElkaRec. Примеры:

	go run ./seeders/cmd/seed migrate up
	go run ./seeders/cmd/seed admin
	go run ./seeders/cmd/seed all
	go run ./seeders/cmd/seed import equipments.xlsx
`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env - общие зависимости команд, которым нужна база.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *pgxpool.Pool
}

func openEnv(ctx context.Context) (*env, error) {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)

	db, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к PostgreSQL: %w", err)
	}
	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) Close() {
	e.db.Close()
	_ = e.logger.Sync()
}
