package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studiva/classwork-backend/internal/model"
	"github.com/studiva/classwork-backend/internal/response"
	"github.com/studiva/classwork-backend/internal/service"
)

const (
	// ContextKeyIdentity is the Gin context key for the resolved session identity.
	ContextKeyIdentity = "identity"
)

// RequireStudentSession resolves the session token from the Authorization
// header and rejects the request unless it belongs to a student.
func RequireStudentSession(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolveIdentity(c, tokens)
		if !ok {
			return
		}

		if id.Role != model.RoleStudent {
			response.AbortFail(c, http.StatusForbidden, response.ErrStudentAccessOnly)
			return
		}

		c.Set(ContextKeyIdentity, id)
		c.Next()
	}
}

// RequireTeacherSession resolves the session token from the Authorization
// header and rejects the request unless it belongs to a teacher.
func RequireTeacherSession(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolveIdentity(c, tokens)
		if !ok {
			return
		}

		if id.Role != model.RoleTeacher {
			response.AbortFail(c, http.StatusForbidden, response.ErrTeacherAccessOnly)
			return
		}

		c.Set(ContextKeyIdentity, id)
		c.Next()
	}
}

// GetIdentity retrieves the session identity from the Gin context.
func GetIdentity(c *gin.Context) *model.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	id, ok := val.(*model.Identity)
	if !ok {
		return nil
	}
	return id
}

// resolveIdentity extracts the bearer token and resolves it. On failure it
// writes the error response and aborts; malformed and expired/unknown tokens
// produce the same response so callers cannot probe the session store.
func resolveIdentity(c *gin.Context, tokens *service.TokenService) (*model.Identity, bool) {
	tokenStr := ""

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenStr = parts[1]
		}
	}

	if tokenStr == "" {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}

	id, err := tokens.Resolve(c.Request.Context(), tokenStr)
	if err != nil {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrInvalidToken)
		return nil, false
	}

	return id, true
}
