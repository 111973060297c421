package repositories

import (
	"context"
	"fmt"
	"strings"

	"elkarec/internal/entities"
	"elkarec/pkg/constants"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	equipmentTable  = "equipments"
	equipmentFields = "id, tag, location, sector, type, manufacturer, model, status, serial_number, purchase_date, notes, created_at, updated_at"
)

// equipmentSearchColumns - поля, по которым ищет параметр search.
var equipmentSearchColumns = []string{"tag", "location", "type", "manufacturer", "model"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type EquipmentRepositoryInterface interface {
	List(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error)
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error)
	FindByTag(ctx context.Context, tag string) (*entities.Equipment, error)
	Create(ctx context.Context, e entities.Equipment) (*entities.Equipment, error)
	Update(ctx context.Context, id string, patch entities.EquipmentPatch) (*entities.Equipment, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id string, status constants.MaintenanceStatus) (*entities.Equipment, error)
	Delete(ctx context.Context, id string) error
}

type EquipmentRepository struct {
	storage               *pgxpool.Pool
	logger                *zap.Logger
	caseInsensitiveSearch bool
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger, caseInsensitiveSearch bool) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage:               storage,
		logger:                logger,
		caseInsensitiveSearch: caseInsensitiveSearch,
	}
}

// getQuerier - возвращает транзакцию или пул соединений
func (r *EquipmentRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

// BuildEquipmentListQuery собирает SELECT для списка оборудования.
// Пустые sector/status не фильтруют; search ищет подстроку в нескольких полях через OR.
func BuildEquipmentListQuery(filter entities.EquipmentFilter, caseInsensitive bool) (string, []interface{}, error) {
	builder := psql.Select(equipmentFields).From(equipmentTable)

	if filter.Sector != "" {
		builder = builder.Where(sq.Eq{"sector": string(filter.Sector)})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		or := make(sq.Or, 0, len(equipmentSearchColumns))
		for _, col := range equipmentSearchColumns {
			if caseInsensitive {
				or = append(or, sq.ILike{col: pattern})
			} else {
				or = append(or, sq.Like{col: pattern})
			}
		}
		builder = builder.Where(or)
	}

	return builder.OrderBy("created_at DESC", "id DESC").ToSql()
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var sector, status string
	err := row.Scan(
		&e.ID, &e.Tag, &e.Location, &sector, &e.Type, &e.Manufacturer, &e.Model, &status,
		&e.SerialNumber, &e.PurchaseDate, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Sector = constants.Sector(sector)
	e.Status = constants.MaintenanceStatus(status)
	return &e, nil
}

func (r *EquipmentRepository) List(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error) {
	query, args, err := BuildEquipmentListQuery(filter, r.caseInsensitiveSearch)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса List: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "список оборудования")
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования equipments: %w", err)
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

func (r *EquipmentRepository) findOne(ctx context.Context, q Querier, where sq.Eq, suffix string) (*entities.Equipment, error) {
	builder := psql.Select(equipmentFields).From(equipmentTable).Where(where)
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для findOne: %w", err)
	}
	e, err := scanEquipment(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err, "поиск оборудования")
	}
	return e, nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	return r.findOne(ctx, r.getQuerier(tx), sq.Eq{"id": id}, "")
}

// FindByIDForUpdate блокирует строку до конца транзакции.
func (r *EquipmentRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	return r.findOne(ctx, r.getQuerier(tx), sq.Eq{"id": id}, "FOR UPDATE")
}

func (r *EquipmentRepository) FindByTag(ctx context.Context, tag string) (*entities.Equipment, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"tag": tag}, "")
}

func (r *EquipmentRepository) Create(ctx context.Context, e entities.Equipment) (*entities.Equipment, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	query, args, err := psql.Insert(equipmentTable).
		Columns("id", "tag", "location", "sector", "type", "manufacturer", "model", "status",
			"serial_number", "purchase_date", "notes", "created_at", "updated_at").
		Values(e.ID, e.Tag, e.Location, string(e.Sector), e.Type, e.Manufacturer, e.Model, string(e.Status),
			e.SerialNumber, e.PurchaseDate, e.Notes, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING " + equipmentFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	created, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err, "создание оборудования")
	}
	return created, nil
}

// BuildEquipmentUpdateQuery собирает UPDATE только по переданным полям.
func BuildEquipmentUpdateQuery(id string, patch entities.EquipmentPatch) (string, []interface{}, error) {
	set := map[string]interface{}{"updated_at": sq.Expr("NOW()")}
	if patch.Tag != nil {
		set["tag"] = *patch.Tag
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Sector != nil {
		set["sector"] = string(*patch.Sector)
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Manufacturer != nil {
		set["manufacturer"] = *patch.Manufacturer
	}
	if patch.Model != nil {
		set["model"] = *patch.Model
	}
	if patch.SerialNumber != nil {
		set["serial_number"] = *patch.SerialNumber
	}
	if patch.PurchaseDate != nil {
		set["purchase_date"] = *patch.PurchaseDate
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	return psql.Update(equipmentTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + equipmentFields).
		ToSql()
}

func (r *EquipmentRepository) Update(ctx context.Context, id string, patch entities.EquipmentPatch) (*entities.Equipment, error) {
	query, args, err := BuildEquipmentUpdateQuery(id, patch)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}

	updated, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err, "обновление оборудования")
	}
	return updated, nil
}

func (r *EquipmentRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id string, status constants.MaintenanceStatus) (*entities.Equipment, error) {
	query, args, err := psql.Update(equipmentTable).
		Set("status", string(status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + equipmentFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса UpdateStatus: %w", err)
	}

	updated, err := scanEquipment(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err, "обновление статуса оборудования")
	}
	return updated, nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Delete: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "удаление оборудования")
	}
	if result.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "удаление оборудования")
	}
	return nil
}
