// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"simpeg_backend/internal/feature/employee/domain/entity"
	"simpeg_backend/internal/feature/employee/usecase"
)

// CachingEmployeeRepository decorates an EmployeeRepository with a Redis
// cache for the unit_kerja facet. The facet is read on every list request
// but only changes when an employee is written. Cached values are stored
// under a generation number and every successful write bumps it, so a value
// computed before a write can never be served after that write.
type CachingEmployeeRepository struct {
	usecase.EmployeeRepository

	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.EmployeeRepository = (*CachingEmployeeRepository)(nil)

// NewCachingEmployeeRepository decorates an EmployeeRepository with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "employees".
// A nil rdb disables caching.
func NewCachingEmployeeRepository(rdb *redis.Client, ttl time.Duration, inner usecase.EmployeeRepository, namespace string) *CachingEmployeeRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "employees"
	}
	return &CachingEmployeeRepository{
		EmployeeRepository: inner,
		rdb:                rdb,
		ttl:                ttl,
		namespace:          namespace,
	}
}

// DistinctUnits returns the unit_kerja facet, checking the cache first.
func (c *CachingEmployeeRepository) DistinctUnits(ctx context.Context) ([]string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.EmployeeRepository.DistinctUnits(ctx)
	}

	// The generation must be read before the database so that a write
	// committing in between moves readers to a new key.
	gen, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return c.EmployeeRepository.DistinctUnits(ctx)
	}
	key := c.unitsKey(gen)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []string
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.EmployeeRepository.DistinctUnits(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create inserts the employee and invalidates the facet cache.
func (c *CachingEmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	if err := c.EmployeeRepository.Create(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update replaces the employee and invalidates the facet cache.
func (c *CachingEmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	if err := c.EmployeeRepository.Update(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes the employee and invalidates the facet cache.
func (c *CachingEmployeeRepository) Delete(ctx context.Context, id uint) error {
	if err := c.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate moves readers to a new generation. Entries of older
// generations are never read again and expire after ttl.
func (c *CachingEmployeeRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Incr(ctx, c.generationKey()).Err()
}

func (c *CachingEmployeeRepository) generationKey() string {
	return c.namespace + ":unit_kerja_options:gen"
}

func (c *CachingEmployeeRepository) unitsKey(gen int64) string {
	return c.namespace + ":unit_kerja_options:" + strconv.FormatInt(gen, 10)
}
