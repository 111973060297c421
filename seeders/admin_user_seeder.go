package seeders

import (
	"context"
	"errors"
	"fmt"

	"elkarec/internal/entities"
	"elkarec/internal/repositories"
	"elkarec/pkg/config"
	"elkarec/pkg/constants"
	apperrors "elkarec/pkg/errors"
	"elkarec/pkg/utils"

	"go.uber.org/zap"
)

// SeedAdmin создаёт администратора из конфига или повышает существующего пользователя до ADMIN.
// Повторный запуск ничего не меняет.
func SeedAdmin(ctx context.Context, userRepo repositories.UserRepositoryInterface, cfg config.AdminConfig, logger *zap.Logger) (*entities.User, error) {
	if cfg.Email == "" {
		return nil, fmt.Errorf("не задан ADMIN_EMAIL")
	}

	existing, err := userRepo.FindByEmail(ctx, cfg.Email)
	if err == nil {
		if existing.Role != constants.RoleAdmin {
			if err := userRepo.UpdateRole(ctx, existing.ID, constants.RoleAdmin); err != nil {
				return nil, fmt.Errorf("не удалось назначить роль ADMIN: %w", err)
			}
			existing.Role = constants.RoleAdmin
			logger.Info("Пользователь повышен до администратора", zap.String("email", existing.Email))
		} else {
			logger.Info("Администратор уже существует, пропускаем", zap.String("email", existing.Email))
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("ошибка при проверке существования администратора: %w", err)
	}

	if len(cfg.Password) < 6 {
		return nil, fmt.Errorf("ADMIN_PASSWORD должен содержать минимум 6 символов")
	}
	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return nil, err
	}

	admin, err := userRepo.Create(ctx, entities.User{
		Email:    cfg.Email,
		Password: hash,
		Role:     constants.RoleAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать администратора: %w", err)
	}
	logger.Info("Администратор создан", zap.String("email", admin.Email), zap.String("id", admin.ID))
	return admin, nil
}
