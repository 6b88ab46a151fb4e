package employeeservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// DirectoryCache кэш полного справочника сотрудников
type DirectoryCache interface {
	// Get возвращает справочник и false, если кэш пуст или устарел
	Get(ctx context.Context) ([]domain.Employee, bool, error)
	Set(ctx context.Context, employees []domain.Employee, ttl time.Duration) error
}

// Directory источник справочника
type Directory interface {
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FetchAllEmployees(ctx context.Context) ([]domain.Employee, error)
}

// CachedDirectory справочник с кэшированием FetchAllEmployees
// Допустимая устарелость данных: ttl (по умолчанию 5 минут)
type CachedDirectory struct {
	next  Directory
	cache DirectoryCache
	ttl   time.Duration
	log   Logger
}

// NewCachedDirectory оборачивает справочник кэшем
func NewCachedDirectory(next Directory, cache DirectoryCache, ttl time.Duration, log Logger) *CachedDirectory {
	return &CachedDirectory{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// FindEmployeeByEmail всегда идёт в справочник: поиск по email точечный и дешёвый
func (d *CachedDirectory) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return d.next.FindEmployeeByEmail(ctx, email)
}

// FetchAllEmployees возвращает справочник из кэша, при промахе загружает и кэширует
func (d *CachedDirectory) FetchAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees, ok, err := d.cache.Get(ctx)
	if err != nil {
		// Кэш не критичен: идём в справочник напрямую
		d.log.Warn("EmployeeDirectory: cache read failed: %v", err)
	}
	if ok {
		return employees, nil
	}

	employees, err = d.next.FetchAllEmployees(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.cache.Set(ctx, employees, d.ttl); err != nil {
		d.log.Warn("EmployeeDirectory: cache write failed: %v", err)
	}

	return employees, nil
}

// MemoryCache кэш справочника в памяти процесса
type MemoryCache struct {
	mu        sync.Mutex
	employees []domain.Employee
	expiresAt time.Time
	now       func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context) ([]domain.Employee, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.employees == nil || !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	return append([]domain.Employee(nil), c.employees...), true, nil
}

func (c *MemoryCache) Set(_ context.Context, employees []domain.Employee, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.employees = append([]domain.Employee{}, employees...)
	c.expiresAt = c.now().Add(ttl)
	return nil
}

// RedisCache кэш справочника в Redis: один JSON-ключ с TTL
type RedisCache struct {
	client *redis.Client
	key    string
}

// NewRedisCache создает кэш; key: имя ключа в Redis
func NewRedisCache(client *redis.Client, key string) *RedisCache {
	return &RedisCache{client: client, key: key}
}

func (c *RedisCache) Get(ctx context.Context) ([]domain.Employee, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: redis get %s: %v", ErrCache, c.key, err)
	}

	var employees []domain.Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return nil, false, fmt.Errorf("%w: decode %s: %v", ErrCache, c.key, err)
	}
	return employees, true, nil
}

func (c *RedisCache) Set(ctx context.Context, employees []domain.Employee, ttl time.Duration) error {
	data, err := json.Marshal(employees)
	if err != nil {
		return fmt.Errorf("%w: encode directory: %v", ErrCache, err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", ErrCache, c.key, err)
	}
	return nil
}
