package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeebo/blake3"

	"moneroreq/internal/domain/request"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// CodeKey returns the cache key for a payment request code. Codes can be
// several kilobytes, so the key carries a blake3 digest instead.
func (s *CacheService) CodeKey(code string) string {
	return s.GenerateKey("payment_request", "code", CodeDigest(code))
}

// CodeDigest is the hex blake3-256 digest of code.
func CodeDigest(code string) string {
	sum := blake3.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Decoded payment request caching
func (s *CacheService) CachePaymentRequest(ctx context.Context, code string, req *request.PaymentRequest) error {
	if req == nil {
		return errors.New("cannot cache nil payment request")
	}
	return s.Set(ctx, s.CodeKey(code), req)
}

// GetPaymentRequest reports a miss as (nil, false, nil).
func (s *CacheService) GetPaymentRequest(ctx context.Context, code string) (*request.PaymentRequest, bool, error) {
	var req request.PaymentRequest
	found, err := s.Get(ctx, s.CodeKey(code), &req)
	if err != nil || !found {
		return nil, false, err
	}
	return &req, true, nil
}

func (s *CacheService) InvalidatePaymentRequest(ctx context.Context, code string) error {
	return s.Delete(ctx, s.CodeKey(code))
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
