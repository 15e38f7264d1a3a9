package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fenggwsx/slashdm/internal/apperr"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure with a stable type.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	ChatID  uint   `json:"chatId,omitempty"`
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and body. Storage failures never expose their cause.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Storage(err)
	}

	status := statusForKind(appErr.Kind)
	detail := &ErrorDetail{
		Message: appErr.Message,
		Type:    string(appErr.Kind),
	}
	switch appErr.Kind {
	case apperr.KindConflict:
		detail.Code = "chat_exists"
		detail.ChatID = appErr.ChatID
	case apperr.KindStorage:
		detail.Message = "internal error"
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: detail})
}
