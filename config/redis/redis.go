package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"MediLink/config"

	goredis "github.com/redis/go-redis/v9"
)

var Client *goredis.Client

// ErrCacheUnavailable is returned when redis never came up; callers treat
// cache failures as non-fatal and fall through to mongo.
var ErrCacheUnavailable = errors.New("redis cache unavailable")

const cacheTTL = 30 * time.Minute

/*
* Dial redis with a few retries, the container may come up after us
* Leave Client nil on failure, reads fall through to mongo
 */
func InitRedis() error {
	maxRetries := 5
	retryDelay := 2 * time.Second

	var err error
	for i := 0; i < maxRetries; i++ {
		client := goredis.NewClient(&goredis.Options{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
			DB:       0,
		})
		_, err = client.Ping(context.Background()).Result()
		if err == nil {
			Client = client
			log.Println("Connected to Redis")
			return nil
		}
		log.Printf("Failed to connect to Redis (attempt %d/%d): %s", i+1, maxRetries, err.Error())
		time.Sleep(retryDelay)
	}
	return err
}

func SetCache(ctx context.Context, key string, value interface{}) error {
	if Client == nil {
		return ErrCacheUnavailable
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Client.Set(ctx, key, payload, cacheTTL).Err()
}

func GetCache(ctx context.Context, key string) (map[string]interface{}, bool, error) {
	if Client == nil {
		return nil, false, ErrCacheUnavailable
	}
	raw, err := Client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	doc := make(map[string]interface{})
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func DeleteCache(ctx context.Context, key string) error {
	if Client == nil {
		return ErrCacheUnavailable
	}
	return Client.Del(ctx, key).Err()
}
