package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/charging-platform/ochp-roaming/internal/metrics"
)

// MemoryStore 进程内存储
type MemoryStore[V any] struct {
	name    string
	mu      sync.RWMutex
	records map[string]Record[V]
}

// NewMemoryStore 创建内存存储，name 用于指标标签
func NewMemoryStore[V any](name string) *MemoryStore[V] {
	return &MemoryStore[V]{
		name:    name,
		records: make(map[string]Record[V]),
	}
}

func (s *MemoryStore[V]) Put(_ context.Context, key string, value V, ts time.Time) (bool, error) {
	metrics.StoreOperations.WithLabelValues(s.name, "put").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.records[key]; ok && current.Timestamp.After(ts) {
		return false, nil
	}
	s.records[key] = Record[V]{Key: key, Value: value, Timestamp: ts}
	return true, nil
}

func (s *MemoryStore[V]) Get(_ context.Context, key string) (Record[V], error) {
	metrics.StoreOperations.WithLabelValues(s.name, "get").Inc()

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return Record[V]{}, ErrNotFound
	}
	return record, nil
}

func (s *MemoryStore[V]) Delete(_ context.Context, key string) error {
	metrics.StoreOperations.WithLabelValues(s.name, "delete").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

func (s *MemoryStore[V]) List(ctx context.Context) ([]Record[V], error) {
	return s.ListSince(ctx, time.Time{})
}

func (s *MemoryStore[V]) ListSince(_ context.Context, since time.Time) ([]Record[V], error) {
	metrics.StoreOperations.WithLabelValues(s.name, "list").Inc()

	s.mu.RLock()
	result := make([]Record[V], 0, len(s.records))
	for _, record := range s.records {
		if !record.Timestamp.Before(since) {
			result = append(result, record)
		}
	}
	s.mu.RUnlock()

	sortByKey(result)
	return result, nil
}

func (s *MemoryStore[V]) Replace(_ context.Context, records []Record[V]) error {
	metrics.StoreOperations.WithLabelValues(s.name, "replace").Inc()

	next := make(map[string]Record[V], len(records))
	for _, record := range records {
		if current, ok := next[record.Key]; ok && current.Timestamp.After(record.Timestamp) {
			continue
		}
		next[record.Key] = record
	}

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore[V]) Clear(_ context.Context) error {
	metrics.StoreOperations.WithLabelValues(s.name, "clear").Inc()

	s.mu.Lock()
	s.records = make(map[string]Record[V])
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore[V]) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore[V]) Close() error {
	return nil
}

func sortByKey[V any](records []Record[V]) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key < records[j].Key
	})
}
