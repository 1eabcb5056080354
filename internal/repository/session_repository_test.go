package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"kysely-service/internal/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newSessionRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionRepository(client), mr
}

func TestSessionGetSlidesExpiry(t *testing.T) {
	repo, mr := newSessionRepo(t)
	ctx := context.Background()

	session := models.Session{UserID: "u1", Username: "pasi", Role: models.RoleAdmin}
	if err := repo.Save(ctx, "s1", session); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Three reads 90 minutes apart stay inside the 2-hour window only
	// because every read renews it.
	for i := 0; i < 3; i++ {
		mr.FastForward(90 * time.Minute)
		got, err := repo.Get(ctx, "s1")
		if err != nil {
			t.Fatalf("get after slide %d: %v", i+1, err)
		}
		if got.Username != session.Username || got.Role != session.Role {
			t.Fatalf("got session %+v, want %+v", got, session)
		}
	}

	mr.FastForward(SessionTTL + time.Minute)
	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("error after expiry = %v, want models.ErrUnauthorized", err)
	}
}

func TestSessionDelete(t *testing.T) {
	repo, _ := newSessionRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "s1", models.Session{UserID: "u1", Username: "pasi", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("error after delete = %v, want models.ErrUnauthorized", err)
	}
}
