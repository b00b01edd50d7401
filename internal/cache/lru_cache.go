package cache

import (
	"errors"
	"hash/fnv"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAlreadyRunning 后台清理已启动
var ErrAlreadyRunning = errors.New("cache: already running")

// shard 缓存分片
type shard[V any] struct {
	mu    sync.Mutex
	items map[string]*item[V]
	lru   *lruList[V]
}

// LRU 分片的带TTL的LRU缓存
//
// 过期项在读取时即视为不存在，后台清理只负责释放内存。
type LRU[V any] struct {
	shards []*shard[V]
	config Config
	now    func() time.Time

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	createdAt time.Time
	stats     struct {
		hits, misses, sets, deletes, evictions, expirations atomic.Int64
	}
}

// NewLRU 创建缓存，config 为 nil 时使用默认配置
func NewLRU[V any](config *Config) *LRU[V] {
	cfg := *DefaultConfig()
	if config != nil {
		cfg = *config
	}
	if cfg.ShardCount <= 0 {
		cfg.ShardCount = 1
	}
	if cfg.EvictionBatch <= 0 {
		cfg.EvictionBatch = 1
	}

	c := &LRU[V]{
		shards:    make([]*shard[V], cfg.ShardCount),
		config:    cfg,
		now:       time.Now,
		stopCh:    make(chan struct{}),
		createdAt: time.Now(),
	}
	for i := range c.shards {
		c.shards[i] = &shard[V]{items: make(map[string]*item[V]), lru: newLRUList[V]()}
	}
	return c
}

func (c *LRU[V]) getShard(key string) *shard[V] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.shards[h.Sum32()%uint32(len(c.shards))]
}

// Get 读取缓存项并标记为最近使用
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V
	s := c.getShard(key)
	now := c.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.items[key]
	if !ok {
		c.stats.misses.Add(1)
		return zero, false
	}
	if n.expired(now) {
		delete(s.items, key)
		s.lru.remove(n)
		c.stats.expirations.Add(1)
		c.stats.misses.Add(1)
		return zero, false
	}
	s.lru.moveToFront(n)
	c.stats.hits.Add(1)
	return n.value, true
}

// Set 写入缓存项；ttl 为 0 时使用默认TTL，为负时永不过期
func (c *LRU[V]) Set(key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = c.config.DefaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.SetUntil(key, value, expiresAt)
}

// SetUntil 写入缓存项，expiresAt 为零值时永不过期
func (c *LRU[V]) SetUntil(key string, value V, expiresAt time.Time) {
	s := c.getShard(key)
	s.mu.Lock()
	if n, ok := s.items[key]; ok {
		n.value = value
		n.expiresAt = expiresAt
		s.lru.moveToFront(n)
	} else {
		n = &item[V]{key: key, value: value, expiresAt: expiresAt}
		s.items[key] = n
		s.lru.pushFront(n)
	}
	s.mu.Unlock()
	c.stats.sets.Add(1)

	if c.config.MaxSize <= 0 {
		return
	}
	for c.Len() > c.config.MaxSize {
		if c.EvictLRU(c.config.EvictionBatch) == 0 {
			break
		}
	}
}

// Delete 删除缓存项，返回键是否存在
func (c *LRU[V]) Delete(key string) bool {
	s := c.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.items[key]
	if !ok {
		return false
	}
	delete(s.items, key)
	s.lru.remove(n)
	c.stats.deletes.Add(1)
	return true
}

// Keys 未过期的键，按字典序
func (c *LRU[V]) Keys() []string {
	now := c.now()
	var keys []string
	for _, s := range c.shards {
		s.mu.Lock()
		for key, n := range s.items {
			if !n.expired(now) {
				keys = append(keys, key)
			}
		}
		s.mu.Unlock()
	}
	sort.Strings(keys)
	return keys
}

// Len 缓存项数量，包括尚未清理的过期项
func (c *LRU[V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.items)
		s.mu.Unlock()
	}
	return total
}

// Clear 清空所有缓存项，统计不重置
func (c *LRU[V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.items = make(map[string]*item[V])
		s.lru = newLRUList[V]()
		s.mu.Unlock()
	}
}

// EvictLRU 从各分片淘汰最久未使用的项，返回淘汰数量
func (c *LRU[V]) EvictLRU(count int) int {
	perShard := count / len(c.shards)
	if perShard == 0 {
		perShard = 1
	}

	evicted := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for i := 0; i < perShard; i++ {
			n := s.lru.back()
			if n == nil {
				break
			}
			delete(s.items, n.key)
			s.lru.remove(n)
			evicted++
		}
		s.mu.Unlock()
		if evicted >= count {
			break
		}
	}
	c.stats.evictions.Add(int64(evicted))
	return evicted
}

// EvictExpired 清理过期项，返回清理数量
func (c *LRU[V]) EvictExpired() int {
	now := c.now()
	expired := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for key, n := range s.items {
			if n.expired(now) {
				delete(s.items, key)
				s.lru.remove(n)
				expired++
			}
		}
		s.mu.Unlock()
	}
	c.stats.expirations.Add(int64(expired))
	return expired
}

// Stats 统计快照
func (c *LRU[V]) Stats() Stats {
	stats := Stats{
		Items:       int64(c.Len()),
		Hits:        c.stats.hits.Load(),
		Misses:      c.stats.misses.Load(),
		Sets:        c.stats.sets.Load(),
		Deletes:     c.stats.deletes.Load(),
		Evictions:   c.stats.evictions.Load(),
		Expirations: c.stats.expirations.Load(),
		CreatedAt:   c.createdAt,
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}

// Start 启动后台过期清理，CleanupInterval<=0 时不启动
func (c *LRU[V]) Start() error {
	if c.config.CleanupInterval <= 0 {
		return nil
	}
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	c.wg.Add(1)
	go c.cleanupWorker()
	return nil
}

// Stop 停止后台清理，可重复调用
func (c *LRU[V]) Stop() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	close(c.stopCh)
	c.wg.Wait()
}

func (c *LRU[V]) cleanupWorker() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.EvictExpired()
		case <-c.stopCh:
			return
		}
	}
}
