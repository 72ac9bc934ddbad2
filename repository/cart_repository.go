package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Vinayyy19/Furnista/models"
	"github.com/redis/go-redis/v9"
)

const maxCartTxRetries = 5

var ErrCartContention = errors.New("cart update contention")

// CartRepository stores carts as JSON documents in Redis.
type CartRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewCartRepository creates a repository; ttl 0 keeps carts forever.
func NewCartRepository(client redis.UniversalClient, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CartRepository) getKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// Get returns the user's cart, or an empty one if none was stored yet.
func (r *CartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.getKey(userID)).Bytes()
	return decodeCart(userID, data, err)
}

// Update applies fn under WATCH so concurrent writers to the same cart
// retry instead of overwriting each other.
func (r *CartRepository) Update(ctx context.Context, userID string, fn func(cart *models.Cart) error) (*models.Cart, error) {
	key := r.getKey(userID)
	var result *models.Cart

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		cart, err := decodeCart(userID, data, err)
		if err != nil {
			return err
		}

		if err := fn(cart); err != nil {
			return err
		}

		cart.UpdatedAt = time.Now().UTC()
		payload, err := json.Marshal(cart)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err == nil {
			result = cart
		}
		return err
	}

	for i := 0; i < maxCartTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, ErrCartContention
}

func decodeCart(userID string, data []byte, err error) (*models.Cart, error) {
	if errors.Is(err, redis.Nil) {
		return models.NewCart(userID), nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.UserID = userID
	return &cart, nil
}

// IdempotencyRepository caches checkout results by key.
type IdempotencyRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewIdempotencyRepository(client redis.UniversalClient, prefix string) *IdempotencyRepository {
	return &IdempotencyRepository{client: client, prefix: prefix}
}

func (r *IdempotencyRepository) getIdemKey(key string) string {
	return "idem:" + r.prefix + ":" + key
}

// Get returns "" when the key is unknown.
func (r *IdempotencyRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.getIdemKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *IdempotencyRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.getIdemKey(key), value, ttl).Err()
}
