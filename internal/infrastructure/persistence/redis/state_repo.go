// Package redis stores state documents in Redis, one string per key plus
// a set indexing the keys in use.
package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/logging"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the repository writes.
const DefaultPrefix = "bezier:state:"

// Options configure the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string

	// ConnectTimeout bounds the initial ping retries.
	ConnectTimeout time.Duration
}

type stateRepo struct {
	client *redis.Client
	prefix string
}

// NewStateRepository wraps an existing client.
func NewStateRepository(client *redis.Client, prefix string) repository.StateRepository {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &stateRepo{client: client, prefix: prefix}
}

// Open connects to Redis, retrying the initial ping with backoff until
// ConnectTimeout elapses.
func Open(ctx context.Context, opts Options) (repository.StateRepository, error) {
	log := logging.FromContext(ctx)
	if opts.Addr == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := ping(ctx, client, opts.ConnectTimeout); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unavailable at %s: %w", opts.Addr, err)
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected to redis")
	return NewStateRepository(client, opts.Prefix), nil
}

func ping(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	const maxWait = 2 * time.Second
	log := logging.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	wait := 100 * time.Millisecond
	for attempt := 1; ; attempt++ {
		err := client.Ping(ctx).Err()
		if err == nil {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
			log.Warn().Err(err).Int("attempt", attempt).Dur("next_retry_in", wait).Msg("redis connection failed, retrying")
			wait = min(wait*2, maxWait)
		}
	}
}

func (r *stateRepo) docKey(key string) string {
	return r.prefix + key
}

func (r *stateRepo) indexKey() string {
	return r.prefix + "keys"
}

func (r *stateRepo) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.docKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return data, nil
}

func (r *stateRepo) Save(ctx context.Context, key string, doc []byte) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.docKey(key), doc, 0)
		pipe.SAdd(ctx, r.indexKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *stateRepo) Delete(ctx context.Context, key string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.docKey(key))
		pipe.SRem(ctx, r.indexKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *stateRepo) Keys(ctx context.Context) ([]string, error) {
	keys, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	slices.SortFunc(keys, strings.Compare)
	return keys, nil
}

func (r *stateRepo) Close() error {
	return r.client.Close()
}
