package repositories

import (
	"errors"
	"fmt"

	apperrors "elkarec/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// mapPgError переводит ошибки pgx в ошибки приложения. Нарушение внешнего
// ключа остаётся ошибкой хранилища (500): запрошенная запись к этому моменту
// уже найдена, не хватает связанной.
func mapPgError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
