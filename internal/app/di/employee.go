// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	employeeadapters "simpeg_backend/internal/feature/employee/adapters"
	"simpeg_backend/internal/feature/employee/usecase"
	"simpeg_backend/internal/platform/cache"
)

// NewEmployeeRepository creates an EmployeeRepository implementation.
// If Redis is available, the unit_kerja facet is cached in Redis.
// Otherwise, every call goes to the database.
func NewEmployeeRepository(db *gorm.DB, rdb *redis.Client, unitsTTL time.Duration) usecase.EmployeeRepository {
	repo := employeeadapters.NewEmployeeRepository(db)
	if rdb != nil {
		return cache.NewCachingEmployeeRepository(rdb, unitsTTL, repo, "employees")
	}
	return repo
}
