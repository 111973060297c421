package services

import (
	"context"
	"errors"
	"strings"

	"elkarec/internal/dto"
	"elkarec/internal/repositories"
	"elkarec/pkg/constants"
	apperrors "elkarec/pkg/errors"

	"go.uber.org/zap"
)

type EquipmentStatusServiceInterface interface {
	ChangeStatus(ctx context.Context, id string, payload dto.UpdateEquipmentStatusDTO, actorID string) (*dto.EquipmentDTO, error)
}

// EquipmentStatusService меняет статус оборудования и пишет запись в историю.
// Обе записи выполняются одной операцией хранилища, сервис их не разделяет.
type EquipmentStatusService struct {
	transitions repositories.StatusTransitionRepositoryInterface
	logger      *zap.Logger
}

func NewEquipmentStatusService(
	transitions repositories.StatusTransitionRepositoryInterface,
	logger *zap.Logger,
) EquipmentStatusServiceInterface {
	return &EquipmentStatusService{transitions: transitions, logger: logger}
}

func (s *EquipmentStatusService) ChangeStatus(ctx context.Context, id string, payload dto.UpdateEquipmentStatusDTO, actorID string) (*dto.EquipmentDTO, error) {
	// Проверки идут до любого обращения к хранилищу.
	if strings.TrimSpace(payload.Status) == "" {
		return nil, apperrors.NewInvalidInputError("Поле 'status' обязательно")
	}
	status, err := constants.ParseMaintenanceStatus(payload.Status)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("Неизвестный статус: %s", payload.Status)
	}
	description := strings.TrimSpace(payload.Description)
	if description == "" {
		return nil, apperrors.NewInvalidInputError("Поле 'description' обязательно")
	}
	if actorID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := checkEquipmentID(id); err != nil {
		return nil, err
	}

	updated, _, err := s.transitions.Apply(ctx, repositories.StatusTransition{
		EquipmentID: id,
		NewStatus:   status,
		Description: description,
		ActorID:     actorID,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Не удалось сменить статус оборудования",
				zap.String("id", id), zap.String("status", status.String()), zap.Error(err))
		}
		return nil, err
	}
	return dto.NewEquipmentDTO(updated), nil
}
