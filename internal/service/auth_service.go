package service

import (
	"context"
	"errors"
	"time"

	"kysely-service/internal/models"
	"kysely-service/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// sessionClaims carries only the redis session ID; the session content
// itself stays server-side.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users    *repository.UserRepository
	Sessions *repository.SessionRepository
	secret   []byte
}

func NewAuthService(users *repository.UserRepository, sessions *repository.SessionRepository, sessionSecret string) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, secret: []byte(sessionSecret)}
}

// Login verifies credentials and issues a signed session token. Unknown
// username and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", models.ErrUnauthorized
	}
	if err != nil {
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", models.ErrUnauthorized
	}

	sessionID := primitive.NewObjectID().Hex()
	session := models.Session{UserID: user.ID.Hex(), Username: user.Username, Role: user.Role}
	if err := s.Sessions.Save(ctx, sessionID, session); err != nil {
		return nil, "", err
	}

	// No exp claim: expiry lives in the redis TTL alone, which slides on
	// every authenticated request. A token-side deadline would log active
	// users out a fixed window after login.
	claims := &sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate validates the cookie token and loads the session, sliding its
// expiry forward.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Session, error) {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return models.Session{}, models.ErrUnauthorized
	}
	return s.Sessions.Get(ctx, sessionID)
}

// CurrentUser resolves the session back to its user document.
func (s *AuthService) CurrentUser(ctx context.Context, session models.Session) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(session.UserID)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	user, err := s.Users.FindByID(ctx, oid)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthorized
	}
	return user, err
}

// Logout destroys the server-side session. An invalid token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *AuthService) parseToken(token string) (string, error) {
	if token == "" {
		return "", models.ErrUnauthorized
	}
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", models.ErrUnauthorized
	}
	return claims.SessionID, nil
}
