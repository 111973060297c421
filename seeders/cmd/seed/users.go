package main

import (
	"fmt"

	"elkarec/internal/repositories"
	"elkarec/pkg/utils"

	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Вывести bcrypt-хеш пароля",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := utils.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <email> <password>",
	Short: "Задать пользователю новый пароль",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args[1]) < 6 {
			return fmt.Errorf("пароль должен содержать минимум 6 символов")
		}

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		userRepo := repositories.NewUserRepository(e.db, e.logger)
		user, err := userRepo.FindByEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("пользователь %s: %w", args[0], err)
		}
		hash, err := utils.HashPassword(args[1])
		if err != nil {
			return err
		}
		if err := userRepo.UpdatePassword(cmd.Context(), user.ID, hash); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Пароль пользователя %s обновлён\n", user.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd, resetPasswordCmd)
}
