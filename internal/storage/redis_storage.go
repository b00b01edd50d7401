package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/charging-platform/ochp-roaming/internal/config"
	"github.com/charging-platform/ochp-roaming/internal/metrics"
)

// 写入：仅当新时间戳不早于已有时间戳时覆盖
var putScript = redis.NewScript(`
local cur = redis.call('ZSCORE', KEYS[2], ARGV[1])
if cur and tonumber(cur) > tonumber(ARGV[3]) then return 0 end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[1])
return 1
`)

var deleteScript = redis.NewScript(`
redis.call('HDEL', KEYS[1], ARGV[1])
redis.call('ZREM', KEYS[2], ARGV[1])
return 1
`)

// 替换：ARGV 为 (key, value, score) 三元组
var replaceScript = redis.NewScript(`
redis.call('DEL', KEYS[1], KEYS[2])
for i = 1, #ARGV, 3 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i+1])
  redis.call('ZADD', KEYS[2], ARGV[i+2], ARGV[i])
end
return #ARGV / 3
`)

// NewRedisClient 创建 Redis 客户端并验证连接
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisStore 基于 Redis 的存储
//
// 值以 JSON 存放在哈希 <prefix>:<name> 中，时间戳(微秒)存放在有序集合 <prefix>:<name>:ts 中。
type RedisStore[V any] struct {
	Client *redis.Client
	name   string
	hash   string
	index  string
}

// NewRedisStore 在 client 上创建名为 name 的存储
func NewRedisStore[V any](client *redis.Client, prefix, name string) *RedisStore[V] {
	if prefix == "" {
		prefix = "ochp"
	}
	hash := prefix + ":" + name
	return &RedisStore[V]{
		Client: client,
		name:   name,
		hash:   hash,
		index:  hash + ":ts",
	}
}

type redisEntry[V any] struct {
	Value     V         `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

func score(ts time.Time) int64 {
	return ts.UnixMicro()
}

func (s *RedisStore[V]) encode(value V, ts time.Time) (string, error) {
	data, err := json.Marshal(redisEntry[V]{Value: value, Timestamp: ts.UTC()})
	if err != nil {
		return "", fmt.Errorf("failed to encode %s record: %w", s.name, err)
	}
	return string(data), nil
}

func (s *RedisStore[V]) decode(key, raw string) (Record[V], error) {
	var entry redisEntry[V]
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return Record[V]{}, fmt.Errorf("failed to decode %s record %s: %w", s.name, key, err)
	}
	return Record[V]{Key: key, Value: entry.Value, Timestamp: entry.Timestamp}, nil
}

func (s *RedisStore[V]) Put(ctx context.Context, key string, value V, ts time.Time) (bool, error) {
	metrics.StoreOperations.WithLabelValues(s.name, "put").Inc()

	raw, err := s.encode(value, ts)
	if err != nil {
		return false, err
	}
	n, err := putScript.Run(ctx, s.Client, []string{s.hash, s.index}, key, raw, score(ts)).Int()
	if err != nil {
		return false, fmt.Errorf("failed to put %s record %s: %w", s.name, key, err)
	}
	return n == 1, nil
}

func (s *RedisStore[V]) Get(ctx context.Context, key string) (Record[V], error) {
	metrics.StoreOperations.WithLabelValues(s.name, "get").Inc()

	raw, err := s.Client.HGet(ctx, s.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return Record[V]{}, ErrNotFound
	}
	if err != nil {
		return Record[V]{}, fmt.Errorf("failed to get %s record %s: %w", s.name, key, err)
	}
	return s.decode(key, raw)
}

func (s *RedisStore[V]) Delete(ctx context.Context, key string) error {
	metrics.StoreOperations.WithLabelValues(s.name, "delete").Inc()

	if err := deleteScript.Run(ctx, s.Client, []string{s.hash, s.index}, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s record %s: %w", s.name, key, err)
	}
	return nil
}

func (s *RedisStore[V]) List(ctx context.Context) ([]Record[V], error) {
	metrics.StoreOperations.WithLabelValues(s.name, "list").Inc()

	all, err := s.Client.HGetAll(ctx, s.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", s.name, err)
	}
	result := make([]Record[V], 0, len(all))
	for key, raw := range all {
		record, err := s.decode(key, raw)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	sortByKey(result)
	return result, nil
}

func (s *RedisStore[V]) ListSince(ctx context.Context, since time.Time) ([]Record[V], error) {
	if since.IsZero() {
		return s.List(ctx)
	}
	metrics.StoreOperations.WithLabelValues(s.name, "list").Inc()

	keys, err := s.Client.ZRangeByScore(ctx, s.index, &redis.ZRangeBy{
		Min: strconv.FormatInt(score(since), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records since %s: %w", s.name, since.Format(time.RFC3339), err)
	}
	if len(keys) == 0 {
		return []Record[V]{}, nil
	}

	values, err := s.Client.HMGet(ctx, s.hash, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s records: %w", s.name, err)
	}
	result := make([]Record[V], 0, len(keys))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// 索引与哈希之间的删除竞争
			continue
		}
		record, err := s.decode(keys[i], raw)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	sortByKey(result)
	return result, nil
}

func (s *RedisStore[V]) Replace(ctx context.Context, records []Record[V]) error {
	metrics.StoreOperations.WithLabelValues(s.name, "replace").Inc()

	// 同一键出现多次时保留时间戳最晚的一条
	latest := make(map[string]int, len(records))
	for i, record := range records {
		if j, ok := latest[record.Key]; ok && records[j].Timestamp.After(record.Timestamp) {
			continue
		}
		latest[record.Key] = i
	}

	args := make([]interface{}, 0, 3*len(latest))
	for i, record := range records {
		if latest[record.Key] != i {
			continue
		}
		raw, err := s.encode(record.Value, record.Timestamp)
		if err != nil {
			return err
		}
		args = append(args, record.Key, raw, score(record.Timestamp))
	}

	if err := replaceScript.Run(ctx, s.Client, []string{s.hash, s.index}, args...).Err(); err != nil {
		return fmt.Errorf("failed to replace %s records: %w", s.name, err)
	}
	return nil
}

func (s *RedisStore[V]) Clear(ctx context.Context) error {
	metrics.StoreOperations.WithLabelValues(s.name, "clear").Inc()

	if err := s.Client.Del(ctx, s.hash, s.index).Err(); err != nil {
		return fmt.Errorf("failed to clear %s records: %w", s.name, err)
	}
	return nil
}

func (s *RedisStore[V]) Len(ctx context.Context) (int, error) {
	n, err := s.Client.HLen(ctx, s.hash).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", s.name, err)
	}
	return int(n), nil
}

// Close 关闭与存储后端的连接
func (s *RedisStore[V]) Close() error {
	return s.Client.Close()
}
