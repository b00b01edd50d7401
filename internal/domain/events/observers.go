package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Observer 事件观察者，返回的错误只会被记录，不会中断调用
type Observer[E any] func(ctx context.Context, event E) error

type observerEntry[E any] struct {
	id uint64
	fn Observer[E]
}

// Observers 并发安全的观察者列表
//
// Notify 在快照上迭代，迭代期间的 Add/remove 只影响后续通知。
// 每个观察者在独立的失败边界内执行，panic 会被恢复为错误。
type Observers[E any] struct {
	mu      sync.RWMutex
	nextID  uint64
	entries []observerEntry[E]
}

// NewObservers 创建观察者列表
func NewObservers[E any]() *Observers[E] {
	return &Observers[E]{}
}

// Add 注册观察者，返回注销函数；注销函数可重复调用
func (o *Observers[E]) Add(fn Observer[E]) (remove func()) {
	if fn == nil {
		return func() {}
	}

	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.entries = append(o.entries, observerEntry[E]{id: id, fn: fn})
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

func (o *Observers[E]) remove(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, entry := range o.entries {
		if entry.id == id {
			// 复制而非原地修改，正在迭代的快照不受影响
			entries := make([]observerEntry[E], 0, len(o.entries)-1)
			entries = append(entries, o.entries[:i]...)
			o.entries = append(entries, o.entries[i+1:]...)
			return
		}
	}
}

// Len 当前观察者数量
func (o *Observers[E]) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entries)
}

// Notify 按注册顺序通知所有观察者，返回所有失败的合并错误
func (o *Observers[E]) Notify(ctx context.Context, event E) error {
	o.mu.RLock()
	snapshot := o.entries
	o.mu.RUnlock()

	var errs []error
	for i, entry := range snapshot {
		if err := invoke(ctx, entry.fn, event); err != nil {
			errs = append(errs, fmt.Errorf("observer %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Forward 将本列表的事件转发到 target，返回断开转发的函数
func (o *Observers[E]) Forward(target *Observers[E]) (remove func()) {
	return o.Add(func(ctx context.Context, event E) error {
		return target.Notify(ctx, event)
	})
}

func invoke[E any](ctx context.Context, fn Observer[E], event E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, event)
}

// Lifecycle 一次调用的四个生命周期观察点，触发顺序为
// OnRequest -> OnSOAPRequest -> OnSOAPResponse -> OnResponse
type Lifecycle struct {
	OnRequest      *Observers[*RequestEvent]
	OnSOAPRequest  *Observers[*SOAPRequestEvent]
	OnSOAPResponse *Observers[*SOAPResponseEvent]
	OnResponse     *Observers[*ResponseEvent]
}

// NewLifecycle 创建空的生命周期观察点
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		OnRequest:      NewObservers[*RequestEvent](),
		OnSOAPRequest:  NewObservers[*SOAPRequestEvent](),
		OnSOAPResponse: NewObservers[*SOAPResponseEvent](),
		OnResponse:     NewObservers[*ResponseEvent](),
	}
}

// Forward 将四个观察点全部转发到 target
func (l *Lifecycle) Forward(target *Lifecycle) (remove func()) {
	removers := []func(){
		l.OnRequest.Forward(target.OnRequest),
		l.OnSOAPRequest.Forward(target.OnSOAPRequest),
		l.OnSOAPResponse.Forward(target.OnSOAPResponse),
		l.OnResponse.Forward(target.OnResponse),
	}
	return func() {
		for _, r := range removers {
			r()
		}
	}
}
