package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "elkarec/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// ErrorResponse переводит ошибку любого слоя в JSON-ответ с нужным HTTP-кодом.
// Неизвестные ошибки считаются ошибками хранилища и отдаются как 500.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	code, message := ResolveError(err)

	if code >= http.StatusInternalServerError {
		logger.Error("HTTP Error",
			zap.Int("code", code),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
	} else {
		logger.Debug("HTTP Error", zap.Int("code", code), zap.String("message", message))
	}

	return c.JSON(code, &HTTPResponse{Status: false, Message: message})
}

// ResolveError возвращает HTTP-код и сообщение для клиента.
func ResolveError(err error) (int, string) {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return http.StatusBadRequest, "Ошибка валидации: " + strings.Join(msgs, "; ")
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest, inputErr.Message
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code, fmt.Sprint(echoErr.Message)
	}

	for sentinel, code := range apperrors.StatusCodes {
		if code < http.StatusInternalServerError && errors.Is(err, sentinel) {
			return code, err.Error()
		}
	}

	return http.StatusInternalServerError, apperrors.ErrInternal.Error()
}
