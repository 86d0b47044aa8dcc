package config

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisClient is nil when Redis is disabled or unreachable; callers fall
// back to recomputing.
var RedisClient *redis.Client

func ConnectRedis(cfg RedisConfig) error {
	if !cfg.Enabled {
		logrus.Warn("redis disabled, facet cache and rate limiting are off")
		return nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)
	ctx, cancel := WithTimeout()
	defer cancel()
	res, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	RedisClient = client
	logrus.WithField("ping", res).Info("connected to redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
