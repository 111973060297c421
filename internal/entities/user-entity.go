// Файл: internal/entities/user_entity.go
package entities

import (
	"time"

	"elkarec/pkg/constants"

	"github.com/aarondl/null/v8"
)

type User struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	Password  string         `db:"password"`
	FirstName null.String    `db:"first_name"`
	LastName  null.String    `db:"last_name"`
	Role      constants.Role `db:"role"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
