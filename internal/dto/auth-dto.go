package dto

import (
	"time"

	"elkarec/internal/entities"
	"elkarec/pkg/constants"

	"github.com/aarondl/null/v8"
)

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterDTO struct {
	Email     string      `json:"email"     validate:"required,email,max=255"`
	Password  string      `json:"password"  validate:"required,min=6,max=72"`
	FirstName null.String `json:"firstName" validate:"omitempty,max=100"`
	LastName  null.String `json:"lastName"  validate:"omitempty,max=100"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         UserPublicDTO `json:"user"`
}

type UserPublicDTO struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	FirstName null.String    `json:"firstName"`
	LastName  null.String    `json:"lastName"`
	Role      constants.Role `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

func NewUserPublicDTO(u *entities.User) UserPublicDTO {
	return UserPublicDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
