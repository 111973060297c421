package services

import (
	"context"
	"fmt"

	"elkarec/internal/dto"
	"elkarec/pkg/constants"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const equipmentSheet = "Оборудование"

// equipmentHeaders - общий формат выгрузки и загрузки.
var equipmentHeaders = []interface{}{
	"Тег", "Расположение", "Сектор", "Тип", "Производитель", "Модель",
	"Статус", "Серийный номер", "Дата покупки", "Заметки", "Создано",
}

type EquipmentExportService struct {
	equipmentService EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentExportService(equipmentService EquipmentServiceInterface, logger *zap.Logger) *EquipmentExportService {
	return &EquipmentExportService{equipmentService: equipmentService, logger: logger}
}

// Export строит книгу по тем же фильтрам, что и список.
func (s *EquipmentExportService) Export(ctx context.Context, filter dto.EquipmentFilterDTO) (*excelize.File, error) {
	list, err := s.equipmentService.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", equipmentSheet); err != nil {
		return nil, fmt.Errorf("ошибка создания листа: %w", err)
	}
	if err := f.SetSheetRow(equipmentSheet, "A1", &equipmentHeaders); err != nil {
		return nil, fmt.Errorf("ошибка записи заголовка: %w", err)
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(equipmentSheet, "A1", "K1", style)

	for i, item := range list {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := equipmentRow(item)
		if err := f.SetSheetRow(equipmentSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("ошибка записи строки %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(equipmentSheet, "A", "A", 15)
	_ = f.SetColWidth(equipmentSheet, "B", "F", 22)
	_ = f.SetColWidth(equipmentSheet, "J", "J", 50)

	s.logger.Info("Сформирована выгрузка оборудования", zap.Int("rows", len(list)))
	return f, nil
}

func equipmentRow(item dto.EquipmentDTO) []interface{} {
	return []interface{}{
		item.Tag, item.Location, item.Sector.String(), item.Type, item.Manufacturer, item.Model,
		item.Status.String(), item.SerialNumber.String, item.PurchaseDate.String, item.Notes.String,
		item.CreatedAt.Format(constants.DateTimeLayout),
	}
}
