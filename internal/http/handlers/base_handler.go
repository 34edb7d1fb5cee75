// README: Base handler utilities (JSON helpers, user id validation).
package handlers

import (
	"github.com/gin-gonic/gin"
)

const maxUserIDLen = 128

type errorResponse struct {
	Error string `json:"error"`
}

// isValidUserID accepts Firebase UIDs, emails and the anonymous default id.
func isValidUserID(v string) bool {
	if v == "" || len(v) > maxUserIDLen {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		switch c {
		case '_', '-', '.', '@':
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}
