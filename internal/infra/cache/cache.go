package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss возвращается, когда ключ отсутствует в кеше
var ErrCacheMiss = errors.New("cache: key not found")

// Cache read-through кеш на Redis для выдачи поиска и справочников
// Любая недоступность Redis деградирует до похода в БД и не фатальна
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient создает новый клиент Redis
func NewClient(addr string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
}

// New создает новый экземпляр кеша
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get читает значение по ключу и десериализует его в dest
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheMiss
	}

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache: get %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("cache: unmarshal %q: %w", key, err)
	}

	return nil
}

// Set сериализует значение в JSON и кладет по ключу с TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %q: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %q: %w", key, err)
	}

	return nil
}

// SearchKey ключ кеша для результатов поиска ресторанов
// Пустые значения фильтров включаются в ключ как "-"
func SearchKey(city, cuisine, price string) string {
	if city == "" {
		city = "-"
	}
	if cuisine == "" {
		cuisine = "-"
	}
	if price == "" {
		price = "-"
	}
	return fmt.Sprintf("search:%s:%s:%s", city, cuisine, price)
}

// Ключи кеша для справочников
const (
	KeyLocations = "directory:locations"
	KeyCuisines  = "directory:cuisines"
)

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("cache: failed to ping redis: %w", err)
	}
	return nil
}
