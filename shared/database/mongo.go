package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoConfig holds the connection settings for MongoDB.
type MongoConfig struct {
	URI      string        `env:"URI,required,notEmpty"`
	Database string        `env:"DATABASE"               envDefault:"upsy"`
	Timeout  time.Duration `env:"TIMEOUT"                envDefault:"10s"`
	MaxPool  uint64        `env:"MAX_POOL_SIZE"          envDefault:"50"`
}

// Connect opens a client, verifies it with a ping and returns it. The client
// owns its connection pool and is safe for concurrent use; the caller owns its
// lifetime and must call Disconnect.
func Connect(ctx context.Context, logger *zerolog.Logger, cfg MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPool).
		SetTimeout(cfg.Timeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info().Str("database", cfg.Database).Msg("connected to mongodb")

	return client, nil
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type clientPinger struct {
	client *mongo.Client
}

// NewPinger wraps client as a Pinger.
func NewPinger(client *mongo.Client) Pinger {
	return &clientPinger{client: client}
}

func (p *clientPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}
