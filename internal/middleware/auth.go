package middleware

import (
	"net/http"

	"kysely-service/internal/models"
	"kysely-service/internal/repository"
	"kysely-service/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "kysely_session"

const sessionContextKey = "session"

type AuthMiddleware struct {
	Auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{Auth: auth}
}

// RequireSession loads and renews the session from the cookie, rejecting
// the request with 401 when it is missing, invalid or expired.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		session, err := m.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		// The redis TTL slid forward; slide the cookie with it so the
		// browser keeps it as long as the session stays alive.
		c.SetCookie(SessionCookie, token, int(repository.SessionTTL.Seconds()), "/", "", false, true)
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireAdmin gates a route on the admin role. Must run after
// RequireSession.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !session.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}
		c.Next()
	}
}

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(c *gin.Context) (models.Session, bool) {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return models.Session{}, false
	}
	session, ok := val.(models.Session)
	return session, ok
}
