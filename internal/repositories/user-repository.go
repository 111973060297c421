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
	userTable        = "users"
	userSelectFields = "id, email, password, first_name, last_name, role, created_at, updated_at"
)

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user entities.User) (*entities.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id string, role constants.Role) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var role string
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = constants.Role(role)
	return &user, nil
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq) (*entities.User, error) {
	query, args, err := psql.Select(userSelectFields).From(userTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для users: %w", err)
	}
	user, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err, "поиск пользователя")
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// FindByEmail ищет без учёта регистра, email хранится в нижнем регистре.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepository) Create(ctx context.Context, user entities.User) (*entities.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = constants.RoleUser
	}
	query, args, err := psql.Insert(userTable).
		Columns("id", "email", "password", "first_name", "last_name", "role", "created_at", "updated_at").
		Values(user.ID, strings.ToLower(strings.TrimSpace(user.Email)), user.Password,
			user.FirstName, user.LastName, string(user.Role), sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING " + userSelectFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса CreateUser: %w", err)
	}

	created, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err, "создание пользователя")
	}
	return created, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, "обновление пароля", psql.Update(userTable).
		Set("password", passwordHash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}))
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role constants.Role) error {
	return r.exec(ctx, "обновление роли", psql.Update(userTable).
		Set("role", string(role)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}))
}

func (r *UserRepository) exec(ctx context.Context, op string, builder sq.UpdateBuilder) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса (%s): %w", op, err)
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, op)
	}
	if result.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, op)
	}
	return nil
}
