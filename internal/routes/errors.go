package routes

import (
	"errors"
	"net/http"

	apperrors "elkarec/pkg/errors"
	"elkarec/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPErrorHandler отдаёт ошибки echo (неизвестный маршрут, паника после recover)
// в том же JSON-конверте, что и контроллеры.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			switch echoErr.Code {
			case http.StatusNotFound:
				err = apperrors.NewHttpError(http.StatusNotFound, "Маршрут не найден", err, nil)
			case http.StatusMethodNotAllowed:
				err = apperrors.NewHttpError(http.StatusMethodNotAllowed, "Метод не поддерживается", err, nil)
			}
		}

		if c.Request().Method == http.MethodHead {
			code, _ := utils.ResolveError(err)
			_ = c.NoContent(code)
			return
		}
		_ = utils.ErrorResponse(c, err, logger)
	}
}
