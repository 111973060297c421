package main

import (
	"fmt"
	"os"

	"elkarec/internal/services"
	"elkarec/seeders"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Загрузить оборудование из XLSX в формате выгрузки /api/equipments/export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("ошибка открытия файла: %w", err)
		}
		defer file.Close()

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		repos := seeders.NewRepositories(e.db, e.cfg, e.logger)
		importer := services.NewEquipmentImportService(repos.EquipmentService, e.logger)
		result, err := importer.Import(cmd.Context(), file)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Создано: %d, пропущено (тег уже есть): %d, ошибок: %d\n",
			result.Created, result.Skipped, len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Fprintln(out, "  -", msg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
