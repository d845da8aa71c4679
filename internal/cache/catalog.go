package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storedispatch/backend-go/internal/config"
	"github.com/storedispatch/backend-go/internal/domain"
)

const (
	productsKey          = "catalog:products"
	availableProductsKey = "catalog:products:available"
	categoriesKey        = "catalog:categories"
	defaultCatalogTTL    = time.Minute
)

// CatalogCache fronts the cloud catalog reads. Misses are reported, never
// fatal: a cache outage degrades to direct database reads.
type CatalogCache interface {
	GetProducts(ctx context.Context, availableOnly bool) ([]*domain.Product, bool, error)
	SetProducts(ctx context.Context, availableOnly bool, products []*domain.Product) error
	GetCategories(ctx context.Context) ([]*domain.Category, bool, error)
	SetCategories(ctx context.Context, categories []*domain.Category) error
}

type redisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopCatalogCache struct{}

// NewCatalogCache returns a redis-backed cache when enabled, a noop cache
// otherwise.
func NewCatalogCache(cfg config.CacheConfig) (CatalogCache, error) {
	if !cfg.Enabled {
		return &noopCatalogCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.CatalogTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}

	return &redisCatalogCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// NewNoopCatalogCache returns a cache that never hits.
func NewNoopCatalogCache() CatalogCache {
	return &noopCatalogCache{}
}

func (c *redisCatalogCache) GetProducts(ctx context.Context, availableOnly bool) ([]*domain.Product, bool, error) {
	var products []*domain.Product
	hit, err := c.get(ctx, productKey(availableOnly), &products)
	return products, hit, err
}

func (c *redisCatalogCache) SetProducts(ctx context.Context, availableOnly bool, products []*domain.Product) error {
	return c.set(ctx, productKey(availableOnly), products)
}

func (c *redisCatalogCache) GetCategories(ctx context.Context) ([]*domain.Category, bool, error) {
	var categories []*domain.Category
	hit, err := c.get(ctx, categoriesKey, &categories)
	return categories, hit, err
}

func (c *redisCatalogCache) SetCategories(ctx context.Context, categories []*domain.Category) error {
	return c.set(ctx, categoriesKey, categories)
}

func (c *redisCatalogCache) get(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode catalog cache: %w", err)
	}
	return true, nil
}

func (c *redisCatalogCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode catalog cache: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopCatalogCache) GetProducts(ctx context.Context, availableOnly bool) ([]*domain.Product, bool, error) {
	return nil, false, nil
}

func (n *noopCatalogCache) SetProducts(ctx context.Context, availableOnly bool, products []*domain.Product) error {
	return nil
}

func (n *noopCatalogCache) GetCategories(ctx context.Context) ([]*domain.Category, bool, error) {
	return nil, false, nil
}

func (n *noopCatalogCache) SetCategories(ctx context.Context, categories []*domain.Category) error {
	return nil
}

func productKey(availableOnly bool) string {
	if availableOnly {
		return availableProductsKey
	}
	return productsKey
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
