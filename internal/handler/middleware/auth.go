package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"pos-terminal/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxOperatorIDKey = "operator_id"
	ctxTerminalIDKey = "terminal_id"

	// TerminalHeader lets a shared operator token drive a specific till.
	TerminalHeader = "X-Terminal-ID"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		operatorID, terminalID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		if header := strings.TrimSpace(c.GetHeader(TerminalHeader)); header != "" {
			terminalID = header
		}

		c.Set(ctxOperatorIDKey, operatorID)
		c.Set(ctxTerminalIDKey, terminalID)
		c.Next()
	}
}

// bearerToken reads the Authorization header, falling back to the access_token
// query parameter because EventSource cannot send headers.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	if c.Request.Method == http.MethodGet {
		return strings.TrimSpace(c.Query("access_token"))
	}
	return ""
}

func GetOperatorID(c *gin.Context) (uuid.UUID, bool) {
	operatorID, exists := c.Get(ctxOperatorIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := operatorID.(uuid.UUID)
	return id, ok
}

func GetTerminalID(c *gin.Context) (string, bool) {
	terminalID, exists := c.Get(ctxTerminalIDKey)
	if !exists {
		return "", false
	}

	id, ok := terminalID.(string)
	return id, ok && id != ""
}
