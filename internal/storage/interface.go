package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound 键不存在
var ErrNotFound = errors.New("storage: not found")

// Record 带时间戳的记录，时间戳决定写入先后
type Record[V any] struct {
	Key       string    `json:"key"`
	Value     V         `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// Store 按键保存记录，单键上后写入者胜出
//
// 清算中心的每类数据(充电点、状态、白名单、详单、资费、端点)各使用一个 Store。
type Store[V any] interface {
	// Put 写入记录；已有记录的时间戳更晚时不覆盖并返回 false
	Put(ctx context.Context, key string, value V, ts time.Time) (bool, error)

	// Get 读取记录，不存在时返回 ErrNotFound
	Get(ctx context.Context, key string) (Record[V], error)

	// Delete 删除记录，键不存在时不报错
	Delete(ctx context.Context, key string) error

	// List 按键排序返回全部记录
	List(ctx context.Context) ([]Record[V], error)

	// ListSince 返回时间戳不早于 since 的记录，按键排序
	ListSince(ctx context.Context, since time.Time) ([]Record[V], error)

	// Replace 原子地用 records 替换全部内容
	Replace(ctx context.Context, records []Record[V]) error

	// Clear 删除全部记录
	Clear(ctx context.Context) error

	// Len 记录数量
	Len(ctx context.Context) (int, error)

	// Close 关闭与存储后端的连接
	Close() error
}
