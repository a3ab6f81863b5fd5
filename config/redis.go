package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Cache is the Redis client used for short-lived analytics snapshots.
// Nil when REDIS_URL is unset; callers must treat the cache as
// optional.
var Cache *redis.Client

// InitCache connects to Redis when REDIS_URL is configured. The cache
// is an accelerator, not a dependency, so a missing URL is not fatal.
func InitCache() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, analytics caching disabled")
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: invalid REDIS_URL, analytics caching disabled: %v", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Warning: Redis unreachable, analytics caching disabled: %v", err)
		return
	}

	Cache = client
	log.Println("Redis connected successfully")
}
