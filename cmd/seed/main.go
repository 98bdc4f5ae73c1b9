package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	authadapters "simpeg_backend/internal/feature/auth/adapters"
	authusecase "simpeg_backend/internal/feature/auth/usecase"
	"simpeg_backend/internal/platform/config"
	platformdb "simpeg_backend/internal/platform/db"
	"simpeg_backend/internal/shared/access"
)

// seedUsers は初期アカウントです。ロールごとに1件作成します。
var seedUsers = []struct {
	name  string
	email string
	role  access.Role
}{
	{"Super Admin", "superadmin@bkpsdm.bengkulu.go.id", access.RoleSuperadmin},
	{"Admin", "admin@bkpsdm.bengkulu.go.id", access.RoleAdmin},
	{"Pengelola", "pengelola@bkpsdm.bengkulu.go.id", access.RolePengelola},
	{"User", "user@bkpsdm.bengkulu.go.id", access.RoleUser},
}

func main() {
	config.LoadDotEnv()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password"
		slog.Warn("SEED_PASSWORD is not set. Using the default password; change it after the first login.")
	}

	db, err := platformdb.OpenDB(platformdb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// トークンは発行しないのでJWTGeneratorは不要
	authUC := authusecase.NewAuthUsecase(authadapters.NewUserRepository(db), nil, nil)
	ctx := context.Background()

	failed := false
	for _, u := range seedUsers {
		_, err := authUC.CreateUser(ctx, u.name, u.email, password, u.role)
		switch {
		case err == nil:
			slog.Info("user created", "email", u.email, "role", u.role)
		case errors.Is(err, authusecase.ErrEmailAlreadyExists):
			slog.Info("user already exists, skipped", "email", u.email)
		default:
			slog.Error("failed to create user", "email", u.email, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
