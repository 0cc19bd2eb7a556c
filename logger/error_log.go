package logger

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys read from the gin context when logging request errors.
const (
	requestIDKey = "request_id"
	userIDKey    = "userID"
)

// LogHTTPError logs a failed request with the request id, caller and route attached.
// 5xx responses are logged at error level, everything else at warn.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("error_type", errorTypeName(err)),
		zap.Int("status_code", statusCode),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("client_ip", c.ClientIP()),
		zap.Any("headers", filterSensitiveHeaders(c.Request.Header)),
	}

	if requestID := c.GetString(requestIDKey); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if userID := c.GetString(userIDKey); userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}

	log := GetLogger().Desugar()
	if statusCode >= http.StatusInternalServerError {
		log.Error(message, fields...)
		return
	}
	log.Warn(message, fields...)
}

// errorTypeName returns the short Go type name of err, e.g. "AppError".
func errorTypeName(err error) string {
	if err == nil {
		return ""
	}
	name := fmt.Sprintf("%T", err)
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return name[idx+1:]
	}
	return strings.TrimPrefix(name, "*")
}

// filterSensitiveHeaders redacts credentials before headers are logged.
func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string)

	for name, values := range headers {
		lower := strings.ToLower(name)
		if lower == "authorization" || lower == "cookie" ||
			strings.Contains(lower, "token") ||
			strings.Contains(lower, "key") ||
			strings.Contains(lower, "secret") {
			filtered[name] = "[REDACTED]"
			continue
		}
		if len(values) > 0 {
			filtered[name] = values[0]
		}
	}

	return filtered
}
