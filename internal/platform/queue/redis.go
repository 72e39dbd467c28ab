package queue

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

func ConnectRedis(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", opts.Addr, err)
	}
	log.Println("Successfully connected to Redis!")
	return rdb, nil
}

func CloseRedis(rdb *redis.Client) {
	if rdb != nil {
		rdb.Close()
		log.Println("Redis connection closed.")
	}
}
