// Package redisconn provides Redis connection infrastructure shared by the
// lead cache and the job queue. This is part of the platform layer and
// contains no business logic.
package redisconn

import (
	"crypto/tls"

	"leadsync_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Options parses the configured connection string into go-redis options.
// A rediss:// URL enables the TLS profile; the insecure flag relaxes
// certificate verification for managed instances.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	opt.TLSConfig = tlsConfig(opt.TLSConfig, cfg.GetRedisTLSInsecure())
	return opt, nil
}

// NewClient creates a Redis client from the configured connection string.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	opt, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// AsynqOpt converts the configured connection string into asynq client options,
// sharing the TLS handling with the cache client.
func AsynqOpt(cfg config.RedisConfig) (asynq.RedisClientOpt, error) {
	opt, err := Options(cfg)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

func tlsConfig(existing *tls.Config, insecure bool) *tls.Config {
	if existing != nil {
		clone := existing.Clone()
		if insecure {
			clone.InsecureSkipVerify = true
		}
		return clone
	}
	if insecure {
		return &tls.Config{InsecureSkipVerify: true}
	}
	return nil
}
