package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kysely-service/internal/models"
	"kysely-service/internal/repository"
	"kysely-service/internal/service"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthRouter(t *testing.T, role string) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := repository.NewSessionRepository(client)
	auth := service.NewAuthService(nil, sessions, "test-secret")

	sessionID := primitive.NewObjectID().Hex()
	stored := models.Session{UserID: primitive.NewObjectID().Hex(), Username: "pasi", Role: role}
	if err := sessions.Save(context.Background(), sessionID, stored); err != nil {
		t.Fatalf("save session: %v", err)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": sessionID}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	m := NewAuthMiddleware(auth)
	r := gin.New()
	r.GET("/protected", m.RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin", m.RequireSession(), m.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, token
}

// Every authenticated request re-sets the cookie with a full max-age, so the
// browser cookie slides in step with the redis TTL.
func TestRequireSessionRefreshesCookie(t *testing.T) {
	r, token := newAuthRouter(t, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, SessionCookie+"=") {
		t.Fatalf("Set-Cookie %q does not carry the session cookie", setCookie)
	}
	if !strings.Contains(setCookie, "Max-Age=7200") {
		t.Errorf("Set-Cookie %q does not renew the full max-age", setCookie)
	}
}

func TestRequireSessionRejectsMissingCookie(t *testing.T) {
	r, _ := newAuthRouter(t, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdminRejectsTeacherRole(t *testing.T) {
	r, token := newAuthRouter(t, models.RoleTeacher)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
