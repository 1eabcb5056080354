package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"kysely-service/internal/models"
	"kysely-service/internal/repository"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T) (*AuthService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := repository.NewSessionRepository(client)
	return NewAuthService(nil, sessions, testSecret), mr
}

func signedSessionToken(t *testing.T, secret, sessionID string, issuedAt time.Time) string {
	t.Helper()
	claims := &sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// The token carries no deadline of its own: as long as the redis session is
// alive, a token issued hours ago still authenticates. Expiry is the redis
// TTL alone.
func TestAuthenticateOutlivesTokenIssueWindow(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	sessionID := primitive.NewObjectID().Hex()
	stored := models.Session{UserID: primitive.NewObjectID().Hex(), Username: "pasi", Role: models.RoleAdmin}
	if err := auth.Sessions.Save(ctx, sessionID, stored); err != nil {
		t.Fatalf("save session: %v", err)
	}

	token := signedSessionToken(t, testSecret, sessionID, time.Now().Add(-3*time.Hour))
	session, err := auth.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if session.Username != stored.Username || session.Role != stored.Role {
		t.Errorf("session = %+v, want %+v", session, stored)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	sessionID := primitive.NewObjectID().Hex()
	if err := auth.Sessions.Save(ctx, sessionID, models.Session{UserID: "u", Username: "pasi", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("save session: %v", err)
	}

	testCases := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong signing secret", signedSessionToken(t, "other-secret", sessionID, time.Now())},
		{"missing session id", signedSessionToken(t, testSecret, "", time.Now())},
		{"unknown session id", signedSessionToken(t, testSecret, primitive.NewObjectID().Hex(), time.Now())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := auth.Authenticate(ctx, tc.token); !errors.Is(err, models.ErrUnauthorized) {
				t.Errorf("error = %v, want models.ErrUnauthorized", err)
			}
		})
	}
}

func TestAuthenticateRejectsExpiredSession(t *testing.T) {
	auth, mr := newAuthFixture(t)
	ctx := context.Background()

	sessionID := primitive.NewObjectID().Hex()
	if err := auth.Sessions.Save(ctx, sessionID, models.Session{UserID: "u", Username: "pasi", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("save session: %v", err)
	}
	token := signedSessionToken(t, testSecret, sessionID, time.Now())

	mr.FastForward(repository.SessionTTL + time.Minute)
	if _, err := auth.Authenticate(ctx, token); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("error = %v, want models.ErrUnauthorized", err)
	}
}
