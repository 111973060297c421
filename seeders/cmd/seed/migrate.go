package main

import (
	"elkarec/migrations"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Миграции базы данных (goose)",
}

// goose-команды без аргументов: up, down, status, redo, reset, version.
func newMigrateSubcommand(command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			db := stdlib.OpenDBFromPool(e.db)
			defer db.Close()
			return migrations.Run(cmd.Context(), db, command)
		},
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(
		newMigrateSubcommand("up", "Применить все миграции"),
		newMigrateSubcommand("down", "Откатить последнюю миграцию"),
		newMigrateSubcommand("status", "Показать состояние миграций"),
		newMigrateSubcommand("redo", "Откатить и заново применить последнюю миграцию"),
		newMigrateSubcommand("version", "Показать текущую версию схемы"),
	)
}

func migrationsUp(cmd *cobra.Command, e *env) error {
	return migrations.Up(cmd.Context(), e.db)
}
