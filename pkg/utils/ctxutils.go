package utils

import (
	"context"

	"elkarec/pkg/constants"
	"elkarec/pkg/contextkeys"
	apperrors "elkarec/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (constants.Role, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(constants.Role)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	return role, nil
}

// WithUser кладёт пользователя в контекст, так же делает AuthMiddleware.
func WithUser(ctx context.Context, userID string, role constants.Role) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}
