package seeders

import (
	"context"
	"fmt"

	"elkarec/internal/repositories"
	"elkarec/internal/services"
	"elkarec/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Repositories - набор зависимостей сидеров поверх одного пула.
type Repositories struct {
	Users            repositories.UserRepositoryInterface
	EquipmentService services.EquipmentServiceInterface
	StatusService    services.EquipmentStatusServiceInterface
}

func NewRepositories(db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) *Repositories {
	equipmentRepo := repositories.NewEquipmentRepository(db, logger, cfg.Search.CaseInsensitive)
	historyRepo := repositories.NewEquipmentHistoryRepository(db, logger)
	transitions := repositories.NewStatusTransitionRepository(repositories.NewTxManager(db), equipmentRepo, historyRepo, logger)

	return &Repositories{
		Users:            repositories.NewUserRepository(db, logger),
		EquipmentService: services.NewEquipmentService(equipmentRepo, historyRepo, logger),
		StatusService:    services.NewEquipmentStatusService(transitions, logger),
	}
}

// SeedAll создаёт администратора и демонстрационное оборудование от его имени.
func SeedAll(ctx context.Context, repos *Repositories, cfg *config.Config, logger *zap.Logger) error {
	admin, err := SeedAdmin(ctx, repos.Users, cfg.Admin, logger)
	if err != nil {
		return fmt.Errorf("ошибка создания администратора: %w", err)
	}
	if _, err := SeedDemoEquipment(ctx, repos.EquipmentService, repos.StatusService, admin.ID, logger); err != nil {
		return fmt.Errorf("ошибка наполнения оборудования: %w", err)
	}
	return nil
}
