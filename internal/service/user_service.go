package service

import (
	"context"
	"fmt"

	"kysely-service/internal/event"
	"kysely-service/internal/models"
	"kysely-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the hash cost of the accounts created by the legacy
// operator scripts, keeping old and new hashes interchangeable.
const bcryptCost = 10

type UserService struct {
	Users  *repository.UserRepository
	Events *event.Publisher
}

func NewUserService(users *repository.UserRepository, events *event.Publisher) *UserService {
	return &UserService{Users: users, Events: events}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Users.FindAll(ctx)
}

func (s *UserService) CreateUser(ctx context.Context, username, password, role string) (*models.User, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", models.ErrValidation)
	}
	user := models.User{Username: username, Role: role}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hash)
	if err := s.Users.Create(ctx, &user); err != nil {
		return nil, err
	}
	if s.Events != nil {
		s.Events.Publish("user.created", map[string]interface{}{"userId": user.ID.Hex(), "role": user.Role})
	}
	return &user, nil
}

// UpdateUser changes username/role and, when password is non-empty, rehashes
// it. An empty password leaves the stored hash untouched.
func (s *UserService) UpdateUser(ctx context.Context, id, username, password, role string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	user := models.User{ID: oid, Username: username, Role: role}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	update := bson.M{"username": username, "role": role}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, err
		}
		update["password"] = string(hash)
	}
	if err := s.Users.Update(ctx, oid, update); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	if err := s.Users.Delete(ctx, oid); err != nil {
		return err
	}
	if s.Events != nil {
		s.Events.Publish("user.deleted", map[string]interface{}{"userId": id})
	}
	return nil
}
