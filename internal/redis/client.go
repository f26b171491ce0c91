package redis

import (
	"context"
	"time"

	"github.com/gymflow/gymflow/internal/config"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client with our configuration
type Client struct {
	client *redis.Client
	log    *logger.Logger
}

// NewClient creates a new Redis client and verifies connectivity
func NewClient(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to Redis").
			WithReportableDetails(map[string]interface{}{
				"address": cfg.Redis.Address,
			}).
			Mark(ierr.ErrSystem)
	}

	log.Infow("connected to redis", "address", cfg.Redis.Address)
	return &Client{client: client, log: log}, nil
}

// GetClient returns the underlying go-redis client
func (c *Client) GetClient() *redis.Client {
	return c.client
}

// Close releases the connection pool
func (c *Client) Close() error {
	return c.client.Close()
}
