package repositories

import (
	"context"
	"fmt"

	"elkarec/internal/entities"
	"elkarec/pkg/constants"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const equipmentHistoryTable = "equipment_history"

// История только дописывается: методов изменения и удаления записей нет.
type EquipmentHistoryRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.EquipmentHistory) error
	FindByEquipmentID(ctx context.Context, equipmentID string) ([]entities.EquipmentHistoryItem, error)
}

type EquipmentHistoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentHistoryRepositoryInterface {
	return &EquipmentHistoryRepository{storage: storage, logger: logger}
}

// CreateInTx пишет запись в рамках переданной транзакции и заполняет ID и ChangedAt.
func (r *EquipmentHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.EquipmentHistory) error {
	if history.ID == "" {
		history.ID = uuid.NewString()
	}
	query, args, err := psql.Insert(equipmentHistoryTable).
		Columns("id", "equipment_id", "user_id", "old_status", "new_status", "description", "changed_at").
		Values(history.ID, history.EquipmentID, history.UserID,
			string(history.OldStatus), string(history.NewStatus), history.Description, sq.Expr("NOW()")).
		Suffix("RETURNING changed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса CreateInTx: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&history.ChangedAt); err != nil {
		return mapPgError(err, "запись истории оборудования")
	}
	return nil
}

// FindByEquipmentID возвращает историю от новых к старым вместе с автором изменения.
func (r *EquipmentHistoryRepository) FindByEquipmentID(ctx context.Context, equipmentID string) ([]entities.EquipmentHistoryItem, error) {
	query, args, err := psql.
		Select(
			"h.id", "h.equipment_id", "h.user_id", "h.old_status", "h.new_status", "h.description", "h.changed_at",
			"u.email AS user_email", "u.first_name AS user_first_name", "u.last_name AS user_last_name",
		).
		From(equipmentHistoryTable + " h").
		Join("users u ON u.id = h.user_id").
		Where(sq.Eq{"h.equipment_id": equipmentID}).
		OrderBy("h.changed_at DESC", "h.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindByEquipmentID: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "история оборудования")
	}
	defer rows.Close()

	history := make([]entities.EquipmentHistoryItem, 0)
	for rows.Next() {
		var h entities.EquipmentHistoryItem
		var oldStatus, newStatus string
		if err := rows.Scan(
			&h.ID, &h.EquipmentID, &h.UserID, &oldStatus, &newStatus, &h.Description, &h.ChangedAt,
			&h.UserEmail, &h.UserFirstName, &h.UserLastName,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования equipment_history: %w", err)
		}
		h.OldStatus = constants.MaintenanceStatus(oldStatus)
		h.NewStatus = constants.MaintenanceStatus(newStatus)
		history = append(history, h)
	}
	return history, rows.Err()
}
