// Command seedadmin creates or resets a bootstrap admin account. Admin
// accounts are otherwise only creatable by an existing admin, so the first
// one has to come from here.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"kysely-service/internal/config"
	"kysely-service/internal/db"
	"kysely-service/internal/models"
	"kysely-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password")
	role := flag.String("role", models.RoleAdmin, "account role")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}
	if !models.ValidRole(*role) {
		log.Fatalf("role must be %q or %q", models.RoleAdmin, models.RoleTeacher)
	}

	cfg := config.Load()
	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.DisconnectMongo(client)

	users := repository.NewUserRepository(client.Database(cfg.MongoDatabase))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	existing, err := users.FindByUsername(ctx, *username)
	switch {
	case err == nil:
		update := bson.M{"password": string(hash), "role": *role}
		if err := users.Update(ctx, existing.ID, update); err != nil {
			log.Fatalf("Failed to update user: %v", err)
		}
		log.Printf("Reset password for existing %s account %q", *role, *username)
	case errors.Is(err, models.ErrNotFound):
		user := models.User{Username: *username, Password: string(hash), Role: *role}
		if err := users.Create(ctx, &user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		log.Printf("Created %s account %q", *role, *username)
	default:
		log.Fatalf("Failed to look up user: %v", err)
	}
}
