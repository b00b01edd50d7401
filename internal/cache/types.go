package cache

import (
	"time"
)

// Config 缓存配置
type Config struct {
	// 容量配置
	MaxSize       int `json:"max_size" mapstructure:"max_size"`             // 最大条目数，<=0 表示不限
	EvictionBatch int `json:"eviction_batch" mapstructure:"eviction_batch"` // 超出容量时每次淘汰数量

	// TTL配置
	DefaultTTL      time.Duration `json:"default_ttl" mapstructure:"default_ttl"`           // Set 未指定TTL时使用，0 表示永不过期
	CleanupInterval time.Duration `json:"cleanup_interval" mapstructure:"cleanup_interval"` // 后台清理间隔

	ShardCount int `json:"shard_count" mapstructure:"shard_count"` // 分片数量(减少锁竞争)
}

// DefaultConfig 默认缓存配置
func DefaultConfig() *Config {
	return &Config{
		MaxSize:         10000,
		EvictionBatch:   16,
		DefaultTTL:      15 * time.Minute,
		CleanupInterval: time.Minute,
		ShardCount:      16,
	}
}

// Stats 缓存统计信息
type Stats struct {
	Items       int64     `json:"items"`
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	HitRate     float64   `json:"hit_rate"`
	Sets        int64     `json:"sets"`
	Deletes     int64     `json:"deletes"`
	Evictions   int64     `json:"evictions"`   // 容量淘汰次数
	Expirations int64     `json:"expirations"` // 过期清理次数
	CreatedAt   time.Time `json:"created_at"`
}

// item 缓存项
type item[V any] struct {
	key       string
	value     V
	expiresAt time.Time

	prev, next *item[V]
}

func (i *item[V]) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// lruList LRU双向链表，head 侧为最近使用
type lruList[V any] struct {
	head, tail *item[V]
	size       int
}

func newLRUList[V any]() *lruList[V] {
	head, tail := &item[V]{}, &item[V]{}
	head.next = tail
	tail.prev = head
	return &lruList[V]{head: head, tail: tail}
}

func (l *lruList[V]) pushFront(n *item[V]) {
	n.prev = l.head
	n.next = l.head.next
	l.head.next.prev = n
	l.head.next = n
	l.size++
}

func (l *lruList[V]) remove(n *item[V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.size--
}

func (l *lruList[V]) moveToFront(n *item[V]) {
	l.remove(n)
	l.pushFront(n)
}

// back 最久未使用的节点，链表为空时返回 nil
func (l *lruList[V]) back() *item[V] {
	if l.size == 0 {
		return nil
	}
	return l.tail.prev
}
