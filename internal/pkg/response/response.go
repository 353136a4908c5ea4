package response

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"gymstudio/pkg/envelope"
)

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, envelope.Success(data))
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, envelope.Failure(code, message, showTypeFor(statusCode)))
}

// ErrorWithShowType lets a handler override the default presentation hint.
func ErrorWithShowType(c *gin.Context, statusCode int, code, message string, show envelope.ShowType) {
	c.JSON(statusCode, envelope.Failure(code, message, show))
}

// Abort writes an error envelope and stops the middleware chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	c.AbortWithStatusJSON(statusCode, envelope.Failure(code, message, showTypeFor(statusCode)))
}

// InvalidJSON is written when the body can't be decoded at all.
func InvalidJSON(c *gin.Context) {
	Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
}

// ValidationError renders field errors as "field: rule" pairs in a stable order.
func ValidationError(c *gin.Context, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", strings.Join(parts, "; "))
}

func showTypeFor(statusCode int) envelope.ShowType {
	switch {
	case statusCode == http.StatusUnauthorized:
		return envelope.ShowPage
	case statusCode >= http.StatusInternalServerError:
		return envelope.ShowNotification
	case statusCode == http.StatusConflict:
		return envelope.ShowWarnMessage
	default:
		return envelope.ShowErrorMessage
	}
}
