package seeders

import (
	"context"
	"errors"
	"fmt"

	"elkarec/internal/dto"
	"elkarec/internal/services"
	apperrors "elkarec/pkg/errors"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

// SeedDemoEquipment заводит демонстрационный парк через сервисы, поэтому
// каждая смена статуса попадает в историю от имени actorID.
// Уже существующие теги пропускаются.
func SeedDemoEquipment(
	ctx context.Context,
	equipmentService services.EquipmentServiceInterface,
	statusService services.EquipmentStatusServiceInterface,
	actorID string,
	logger *zap.Logger,
) (int, error) {
	created := 0
	for _, item := range demoEquipmentData {
		res, err := equipmentService.Create(ctx, dto.CreateEquipmentDTO{
			Tag:          item.Tag,
			Location:     item.Location,
			Sector:       item.Sector.String(),
			Type:         item.Type,
			Manufacturer: item.Manufacturer,
			Model:        item.Model,
			SerialNumber: null.NewString(item.SerialNumber, item.SerialNumber != ""),
			PurchaseDate: null.NewString(item.PurchaseDate, item.PurchaseDate != ""),
			Notes:        null.NewString(item.Notes, item.Notes != ""),
		})
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Info("Оборудование уже существует, пропускаем", zap.String("tag", item.Tag))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("не удалось создать %s: %w", item.Tag, err)
		}
		created++

		for _, t := range item.Transitions {
			_, err := statusService.ChangeStatus(ctx, res.ID, dto.UpdateEquipmentStatusDTO{
				Status:      t.Status.String(),
				Description: t.Description,
			}, actorID)
			if err != nil {
				return created, fmt.Errorf("не удалось сменить статус %s: %w", item.Tag, err)
			}
		}
	}
	logger.Info("Демонстрационное оборудование добавлено", zap.Int("created", created))
	return created, nil
}
