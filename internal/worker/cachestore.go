package worker

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-redis/redis/v8"
)

const bucketRegistry = "rebirth:cache:buckets"

// RedisCacheStore Redis承载的响应缓存
// 每个条目一个键（cache:<bucket>:<path>），桶名记录在一个注册集合里
type RedisCacheStore struct {
	rdb *redis.Client
}

func NewRedisCacheStore(rdb *redis.Client) *RedisCacheStore {
	return &RedisCacheStore{rdb: rdb}
}

func cacheKey(bucket, key string) string {
	return "cache:" + bucket + ":" + key
}

func (s *RedisCacheStore) Put(ctx context.Context, bucket, key string, resp *CachedResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, cacheKey(bucket, key), raw, 0)
	pipe.SAdd(ctx, bucketRegistry, bucket)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisCacheStore) Match(ctx context.Context, bucket, key string) (*CachedResponse, error) {
	raw, err := s.rdb.Get(ctx, cacheKey(bucket, key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp CachedResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		// 脏条目当作未命中
		return nil, nil
	}
	return &resp, nil
}

func (s *RedisCacheStore) Buckets(ctx context.Context) ([]string, error) {
	return s.rdb.SMembers(ctx, bucketRegistry).Result()
}

func (s *RedisCacheStore) DeleteBucket(ctx context.Context, bucket string) error {
	iter := s.rdb.Scan(ctx, 0, cacheKey(bucket, "*"), 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.SRem(ctx, bucketRegistry, bucket)
	_, err := pipe.Exec(ctx)
	return err
}

// MemoryCacheStore 进程内响应缓存，用于无Redis部署和测试
type MemoryCacheStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string]*CachedResponse
}

func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{buckets: make(map[string]map[string]*CachedResponse)}
}

func (s *MemoryCacheStore) Put(_ context.Context, bucket, key string, resp *CachedResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buckets[bucket] == nil {
		s.buckets[bucket] = make(map[string]*CachedResponse)
	}
	s.buckets[bucket][key] = resp
	return nil
}

func (s *MemoryCacheStore) Match(_ context.Context, bucket, key string) (*CachedResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.buckets[bucket]
	if !ok {
		return nil, nil
	}
	return entries[key], nil
}

func (s *MemoryCacheStore) Buckets(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.buckets))
	for name := range s.buckets {
		out = append(out, name)
	}
	return out, nil
}

func (s *MemoryCacheStore) DeleteBucket(_ context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, bucket)
	return nil
}
