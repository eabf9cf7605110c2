package utils

import (
	"busfleet/config"
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// LockClient is the Redis client holding cross-process trip locks.
var LockClient *redis.Client

// InitLockClient connects to the Redis DB reserved for trip locks.
func InitLockClient() {
	LockClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := LockClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Locks): %v", err)
	}
}

// GetLockClient returns the trip lock client, connecting on first use.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockClient()
	}
	return LockClient
}
