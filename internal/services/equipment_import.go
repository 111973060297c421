package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"elkarec/internal/dto"
	apperrors "elkarec/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportResult - итог загрузки книги.
type ImportResult struct {
	Created int
	Skipped int
	Errors  []string
}

type EquipmentImportService struct {
	equipmentService EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentImportService(equipmentService EquipmentServiceInterface, logger *zap.Logger) *EquipmentImportService {
	return &EquipmentImportService{equipmentService: equipmentService, logger: logger}
}

// Import читает первый лист в формате выгрузки. Строки с уже существующим тегом пропускаются,
// остальные ошибки копятся в результате и не прерывают загрузку.
func (s *EquipmentImportService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewInvalidInputError("В книге нет листов")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения листа %s: %w", sheets[0], err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}
		_, err := s.equipmentService.Create(ctx, rowToCreateDTO(row))
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, apperrors.ErrConflict):
			result.Skipped++
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("строка %d: %v", i+1, err))
		}
	}

	s.logger.Info("Загрузка оборудования завершена",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func rowToCreateDTO(row []string) dto.CreateEquipmentDTO {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	optional := func(i int) null.String {
		if v := cell(i); v != "" {
			return null.StringFrom(v)
		}
		return null.String{}
	}
	return dto.CreateEquipmentDTO{
		Tag:          cell(0),
		Location:     cell(1),
		Sector:       cell(2),
		Type:         cell(3),
		Manufacturer: cell(4),
		Model:        cell(5),
		Status:       cell(6),
		SerialNumber: optional(7),
		PurchaseDate: optional(8),
		Notes:        optional(9),
	}
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
