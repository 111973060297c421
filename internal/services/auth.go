package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"elkarec/internal/dto"
	"elkarec/internal/entities"
	"elkarec/internal/repositories"
	"elkarec/pkg/config"
	"elkarec/pkg/constants"
	apperrors "elkarec/pkg/errors"
	"elkarec/pkg/service"
	"elkarec/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context, userID string) (*dto.UserPublicDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
		cfg:        cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" {
		return nil, apperrors.NewInvalidInputError("Поле 'email' обязательно")
	}
	if len(payload.Password) < 6 {
		return nil, apperrors.NewInvalidInputError("Пароль должен содержать минимум 6 символов")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.NewHttpError(http.StatusConflict, "Пользователь с таким email уже существует", apperrors.ErrConflict, nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, entities.User{
		Email:     email,
		Password:  hash,
		FirstName: optionalString(payload.FirstName.String, payload.FirstName.Valid),
		LastName:  optionalString(payload.LastName.String, payload.LastName.Valid),
		Role:      constants.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Зарегистрирован новый пользователь", zap.String("userID", user.ID))
	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)

	return s.issueTokens(user)
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Роль берём из базы, а не из старого токена.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UserPublicDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Me: не удалось найти пользователя", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	out := dto.NewUserPublicDTO(user)
	return &out, nil
}

func (s *AuthService) issueTokens(user *entities.User) (*dto.AuthResponseDTO, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("не удалось выпустить токены: %w", err)
	}
	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserPublicDTO(user),
	}, nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID string) error {
	lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, userID)

	// Если ключ существует - аккаунт заблокирован
	_, err := s.cacheRepo.Get(ctx, lockoutKey)
	if err == nil {
		minutes := int(math.Ceil(s.cfg.LockoutDuration.Minutes()))
		if ttl, ttlErr := s.cacheRepo.TTL(ctx, lockoutKey); ttlErr == nil && ttl > 0 {
			minutes = int(math.Ceil(ttl.Minutes()))
		}
		return apperrors.NewHttpError(
			http.StatusLocked,
			fmt.Sprintf("Слишком много неудачных попыток. Попробуйте через %d мин.", minutes),
			apperrors.ErrAccountLocked,
			map[string]interface{}{"userID": userID},
		)
	}
	if !errors.Is(err, repositories.ErrCacheMiss) {
		s.logger.Warn("Кеш недоступен, проверка блокировки пропущена", zap.Error(err))
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID string) {
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, userID)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Не удалось увеличить счётчик попыток входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, userID)
		_ = s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
		s.logger.Warn("Аккаунт заблокирован после неудачных попыток входа", zap.String("userID", userID))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID string) {
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, userID)
	lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, userID)
	_ = s.cacheRepo.Del(ctx, attemptsKey, lockoutKey)
}
