package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/pkg/config"
	"github.com/luct-faculty/reporting-api/pkg/database"
	"github.com/luct-faculty/reporting-api/pkg/logger"
)

type seedUser struct {
	username string
	password string
	role     models.UserRole
}

// The default accounts every fresh install starts with.
var defaultUsers = []seedUser{
	{"student1", "student123", models.RoleStudent},
	{"lecturer1", "lecturer123", models.RoleLecturer},
	{"pl1", "pl123", models.RolePL},
	{"prl1", "prl123", models.RolePRL},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const upsert = `
INSERT INTO users (username, password, role)
VALUES ($1, $2, $3)
ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password, role = EXCLUDED.role`

	for _, u := range defaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			logr.Sugar().Fatalw("failed to hash password", "username", u.username, "error", err)
		}
		if _, err := db.ExecContext(ctx, upsert, u.username, string(hash), u.role); err != nil {
			logr.Sugar().Fatalw("failed to seed user", "username", u.username, "error", err)
		}
		logr.Sugar().Infow("seeded user", "username", u.username, "role", u.role)
	}
}
