package repositories

import (
	"context"
	"fmt"

	"elkarec/internal/entities"
	"elkarec/pkg/constants"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// StatusTransition - одна смена статуса оборудования.
type StatusTransition struct {
	EquipmentID string
	NewStatus   constants.MaintenanceStatus
	Description string
	ActorID     string
}

// StatusTransitionRepositoryInterface - единственная точка записи смены статуса:
// обновление equipments.status и вставка в equipment_history идут одной транзакцией.
type StatusTransitionRepositoryInterface interface {
	Apply(ctx context.Context, t StatusTransition) (*entities.Equipment, *entities.EquipmentHistory, error)
}

type StatusTransitionRepository struct {
	txManager     TxManagerInterface
	equipmentRepo EquipmentRepositoryInterface
	historyRepo   EquipmentHistoryRepositoryInterface
	logger        *zap.Logger
}

func NewStatusTransitionRepository(
	txManager TxManagerInterface,
	equipmentRepo EquipmentRepositoryInterface,
	historyRepo EquipmentHistoryRepositoryInterface,
	logger *zap.Logger,
) StatusTransitionRepositoryInterface {
	return &StatusTransitionRepository{
		txManager:     txManager,
		equipmentRepo: equipmentRepo,
		historyRepo:   historyRepo,
		logger:        logger,
	}
}

func (r *StatusTransitionRepository) Apply(ctx context.Context, t StatusTransition) (*entities.Equipment, *entities.EquipmentHistory, error) {
	var (
		updated *entities.Equipment
		entry   *entities.EquipmentHistory
	)

	err := r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := r.equipmentRepo.FindByIDForUpdate(ctx, tx, t.EquipmentID)
		if err != nil {
			return err
		}

		updated, err = r.equipmentRepo.UpdateStatus(ctx, tx, t.EquipmentID, t.NewStatus)
		if err != nil {
			return err
		}

		entry = &entities.EquipmentHistory{
			EquipmentID: t.EquipmentID,
			UserID:      t.ActorID,
			OldStatus:   current.Status,
			NewStatus:   t.NewStatus,
			Description: t.Description,
		}
		if err := r.historyRepo.CreateInTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("не удалось записать историю: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	r.logger.Info("Статус оборудования изменён",
		zap.String("equipmentID", t.EquipmentID),
		zap.String("oldStatus", entry.OldStatus.String()),
		zap.String("newStatus", entry.NewStatus.String()),
		zap.String("actorID", t.ActorID),
	)
	return updated, entry, nil
}
