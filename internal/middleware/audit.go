package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/services"
)

// sensitiveFields are masked before request bodies reach the audit trail.
var sensitiveFields = map[string]bool{
	"password":      true,
	"old_password":  true,
	"new_password":  true,
	"token":         true,
	"refresh_token": true,
	"secret":        true,
}

// Audit records write operations (POST, PUT, PATCH, DELETE) in the persistent
// audit trail, with credential fields masked.
func Audit(systemLog *services.SystemLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(io.LimitReader(c.Request.Body, 64<<10))
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		c.Next()

		var userID *uint
		if id := GetUserID(c); id != 0 {
			userID = &id
		}

		extra := map[string]interface{}{
			"status": c.Writer.Status(),
		}
		if masked := maskBody(body); masked != nil {
			extra["body"] = masked
		}

		level := "info"
		if c.Writer.Status() >= 400 {
			level = "warning"
		}

		systemLog.Log(
			level,
			moduleFromPath(c.FullPath()),
			method+" "+c.FullPath(),
			c.Request.URL.Path,
			userID,
			c.ClientIP(),
			c.Request.UserAgent(),
			extra,
		)
	}
}

func maskBody(body []byte) map[string]interface{} {
	if len(body) == 0 {
		return nil
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}

	for key := range payload {
		if sensitiveFields[strings.ToLower(key)] {
			payload[key] = "***"
		}
	}
	return payload
}

func moduleFromPath(fullPath string) string {
	parts := strings.Split(strings.TrimPrefix(fullPath, "/api/v1/"), "/")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "api"
}
