package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"simpeg_backend/internal/feature/auth/domain/entity"
	"simpeg_backend/internal/feature/auth/usecase"
	"simpeg_backend/internal/shared/access"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.User{}), "failed to migrate table")
	return db
}

func TestNewUserRepository(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)

	repo := NewUserRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Parallel()

	t.Run("successful user creation", func(t *testing.T) {
		t.Parallel()
		repo := NewUserRepository(setupTestDB(t))

		user := &entity.User{Name: "Admin", Email: "admin@example.com", Role: access.RoleAdmin, Password: "hashed"}
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt is not set")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		t.Parallel()
		repo := NewUserRepository(setupTestDB(t))

		first := &entity.User{Name: "A", Email: "dup@example.com", Role: access.RoleUser, Password: "x"}
		require.NoError(t, repo.Create(context.Background(), first))

		second := &entity.User{Name: "B", Email: "dup@example.com", Role: access.RoleUser, Password: "y"}
		err := repo.Create(context.Background(), second)

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})

	t.Run("nil user error", func(t *testing.T) {
		t.Parallel()
		repo := NewUserRepository(setupTestDB(t))

		err := repo.Create(context.Background(), nil)

		assert.ErrorIs(t, err, usecase.ErrInvalidUser)
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(setupTestDB(t))

	users := []*entity.User{
		{Name: "One", Email: "user1@example.com", Role: access.RoleUser, Password: "pass1"},
		{Name: "Two", Email: "user2@example.com", Role: access.RolePengelola, Password: "pass2"},
		{Name: "Three", Email: "user3@example.com", Role: access.RoleSuperadmin, Password: "pass3"},
	}
	for _, u := range users {
		require.NoError(t, repo.Create(context.Background(), u), "failed to create test data")
	}

	found, err := repo.FindByEmail(context.Background(), "user2@example.com")
	require.NoError(t, err)
	assert.Equal(t, users[1].ID, found.ID)
	assert.Equal(t, "Two", found.Name)
	assert.Equal(t, access.RolePengelola, found.Role)
	assert.Equal(t, "pass2", found.Password)

	found, err = repo.FindByEmail(context.Background(), "notfound@example.com")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	assert.Nil(t, found)
}

func TestUserGorm_FindByID(t *testing.T) {
	t.Parallel()
	repo := NewUserRepository(setupTestDB(t))

	user := &entity.User{Name: "Find", Email: "findbyid@example.com", Role: access.RoleAdmin, Password: "hashed"}
	require.NoError(t, repo.Create(context.Background(), user))

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)
	assert.Equal(t, access.RoleAdmin, found.Role)

	tests := []struct {
		name string
		id   uint
	}{
		{"unknown id", 999},
		{"zero id", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByID(context.Background(), tt.id)
			assert.ErrorIs(t, err, usecase.ErrUserNotFound)
			assert.Nil(t, found)
		})
	}
}

func TestUserGorm_DefaultRole(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	// ロール未指定の行はデフォルト値 user になる
	require.NoError(t, db.Exec(
		"INSERT INTO users (name, email, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		"Plain", "plain@example.com", "hashed", time.Now(), time.Now(),
	).Error)

	found, err := repo.FindByEmail(context.Background(), "plain@example.com")
	require.NoError(t, err)
	assert.Equal(t, access.RoleUser, found.Role)
}
