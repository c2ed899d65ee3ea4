package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-minute/backend/errors"
)

// Response shapes. Client-facing bodies carry either a detail (classified
// failures) or a masked generic message; internals never leak.
type detailResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// internalErrorMessage is the only thing a client sees for an unclassified
// failure.
const internalErrorMessage = "An internal server error occurred"

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleError centralizes error handling and logging. Classified client input
// and authentication failures surface their fixed detail body; everything else
// is masked as a generic 500.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.String("app_code", appErr.Code.String()),
				zap.Error(err),
			)
		}

		switch appErr.Code {
		case errors.ErrorCode_INVALID_JSON,
			errors.ErrorCode_MISSING_AUDIO_FILE,
			errors.ErrorCode_INVALID_ARGUMENT:
			return c.JSON(http.StatusBadRequest, detailResponse{Detail: appErr.Message})
		case errors.ErrorCode_NOT_FOUND:
			return c.JSON(http.StatusNotFound, detailResponse{Detail: appErr.Message})
		case errors.ErrorCode_AUTH_FAILED:
			return c.JSON(http.StatusInternalServerError, detailResponse{Detail: appErr.Message})
		}

		return c.JSON(http.StatusInternalServerError, messageResponse{Message: internalErrorMessage})
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(http.StatusInternalServerError, messageResponse{Message: internalErrorMessage})
}
