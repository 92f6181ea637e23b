package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/logging"
)

// RedisStore keeps each collection in a Redis hash keyed by document id, with
// the document serialized as JSON. Writes additionally publish the document id
// on a per-collection channel so subscribers know to re-read the tree.
type RedisStore struct {
	client *redis.Client
	logger *logrus.Entry
}

var (
	newRedisClient = redis.NewClient
	redisPing      = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := newRedisClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisPing(ctx, client); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logging.Log.WithField("component", "store"),
	}
}

func (s *RedisStore) Read(ctx context.Context, path string) (json.RawMessage, error) {
	collection, id, err := SplitPath(path)
	if err != nil {
		return nil, err
	}

	val, err := s.client.HGet(ctx, collection, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return json.RawMessage(val), nil
}

func (s *RedisStore) ReadTree(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	vals, err := s.client.HGetAll(ctx, collection).Result()
	if err != nil {
		return nil, fmt.Errorf("reading %s tree: %w", collection, err)
	}

	docs := make(map[string]json.RawMessage, len(vals))
	for id, val := range vals {
		docs[id] = json.RawMessage(val)
	}
	return docs, nil
}

func (s *RedisStore) Write(ctx context.Context, path string, doc any) error {
	collection, id, err := SplitPath(path)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := s.client.HSet(ctx, collection, id, payload).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	// The write itself succeeded; a failed publish only delays subscribers
	// until the next change.
	if err := s.client.Publish(ctx, changeChannel(collection), id).Err(); err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("publishing change event failed")
	}
	return nil
}

func (s *RedisStore) Subscribe(ctx context.Context, collection string, fn SnapshotFunc) (*Subscription, error) {
	pubsub := s.client.Subscribe(ctx, changeChannel(collection))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", collection, err)
	}

	sub := NewSubscription(func() { _ = pubsub.Close() })
	if err := sub.Activate(); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	go s.pump(ctx, collection, pubsub, fn)
	return sub, nil
}

func (s *RedisStore) pump(ctx context.Context, collection string, pubsub *redis.PubSub, fn SnapshotFunc) {
	deliver := func() {
		docs, err := s.ReadTree(ctx, collection)
		if err != nil {
			s.logger.WithError(err).WithField("collection", collection).Warn("snapshot read failed")
			return
		}
		fn(Snapshot{Collection: collection, Docs: docs})
	}

	// Initial snapshot, then one per change event. The channel closes when
	// the subscription handle is closed.
	deliver()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			deliver()
		}
	}
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func changeChannel(collection string) string {
	return "store:changed:" + collection
}
