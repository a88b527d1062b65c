package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ironhall/gymhub/internal/domain/membership"
	"github.com/redis/go-redis/v9"
)

const packagesKey = "packages:list:v1"

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// PackageCache keeps the public package listing in redis for a short TTL.
// A nil *PackageCache is a valid no-op cache, so the router can run without
// redis configured.
type PackageCache struct {
	redisdb *redis.Client
	ttl     time.Duration
}

func New(cfg Config) *PackageCache {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}

	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &PackageCache{redisdb: redisdb, ttl: cfg.TTL}
}

func (c *PackageCache) GetList(ctx context.Context) ([]membership.Package, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.redisdb.Get(ctx, packagesKey).Bytes()

	if err != nil {
		// redis.Nil (miss) and connectivity errors are both treated as a miss
		return nil, false
	}

	var pkgs []membership.Package

	if err := json.Unmarshal(raw, &pkgs); err != nil {
		return nil, false
	}

	return pkgs, true
}

func (c *PackageCache) SetList(ctx context.Context, pkgs []membership.Package) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(pkgs)

	if err != nil {
		return
	}

	// best effort, the listing stays correct without the cache
	_ = c.redisdb.Set(ctx, packagesKey, raw, c.ttl).Err()
}

// Invalidate drops the cached listing after an admin write.
func (c *PackageCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	_ = c.redisdb.Del(ctx, packagesKey).Err()
}

// Ping checks redis connectivity.
func (c *PackageCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}

	return c.redisdb.Ping(ctx).Err()
}

func (c *PackageCache) Close() error {
	if c == nil {
		return nil
	}

	return c.redisdb.Close()
}
