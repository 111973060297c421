package main

import (
	"fmt"

	"elkarec/seeders"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Создать администратора из ADMIN_EMAIL/ADMIN_PASSWORD",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		repos := seeders.NewRepositories(e.db, e.cfg, e.logger)
		admin, err := seeders.SeedAdmin(cmd.Context(), repos.Users, e.cfg.Admin, e.logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Администратор: %s (%s)\n", admin.Email, admin.ID)
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Добавить демонстрационное оборудование от имени администратора",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		repos := seeders.NewRepositories(e.db, e.cfg, e.logger)
		admin, err := repos.Users.FindByEmail(cmd.Context(), e.cfg.Admin.Email)
		if err != nil {
			return fmt.Errorf("администратор %s не найден, сначала выполните 'seed admin': %w", e.cfg.Admin.Email, err)
		}
		created, err := seeders.SeedDemoEquipment(cmd.Context(), repos.EquipmentService, repos.StatusService, admin.ID, e.logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Добавлено единиц оборудования: %d\n", created)
		return nil
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Миграции, администратор и демонстрационные данные",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		if err := migrationsUp(cmd, e); err != nil {
			return err
		}
		return seeders.SeedAll(cmd.Context(), seeders.NewRepositories(e.db, e.cfg, e.logger), e.cfg, e.logger)
	},
}

func init() {
	rootCmd.AddCommand(adminCmd, demoCmd, allCmd)
}
