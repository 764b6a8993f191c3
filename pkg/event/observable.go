// Package event 提供类型化的发布/订阅通道
//
// 每种事件使用独立的 Observable[T]，订阅返回 Handle，通过 Handle 取消订阅。
//
// 本包不是线程安全的：所有调用都应发生在游戏主循环（或协程步进）中。
package event

// Handle 订阅句柄，由 Add/AddOnce 返回，用于 Remove
type Handle uint64

type subscriber[T any] struct {
	handle  Handle
	fn      func(T)
	once    bool
	removed bool
}

// Observable 单一事件类型的多订阅者通道
//
// 通知顺序 = 注册顺序。
// 通知过程中新增的订阅者从下一次 Notify 开始生效；
// 通知过程中被移除的订阅者（尚未被通知的）不会再收到本次通知。
//
// 零值可直接使用。
type Observable[T any] struct {
	lastHandle  Handle
	subscribers []*subscriber[T]
}

// New 创建一个新的 Observable
func New[T any]() *Observable[T] {
	return &Observable[T]{}
}

// Add 注册订阅者，返回用于取消订阅的句柄
func (o *Observable[T]) Add(fn func(T)) Handle {
	return o.add(fn, false)
}

// AddOnce 注册只触发一次的订阅者，触发前自动移除
func (o *Observable[T]) AddOnce(fn func(T)) Handle {
	return o.add(fn, true)
}

func (o *Observable[T]) add(fn func(T), once bool) Handle {
	o.lastHandle++
	o.subscribers = append(o.subscribers, &subscriber[T]{
		handle: o.lastHandle,
		fn:     fn,
		once:   once,
	})
	return o.lastHandle
}

// Remove 按句柄取消订阅
// 返回 false 表示句柄不存在（已移除或从未注册）
func (o *Observable[T]) Remove(h Handle) bool {
	for i, s := range o.subscribers {
		if s.handle == h {
			s.removed = true
			o.subscribers = append(o.subscribers[:i:i], o.subscribers[i+1:]...)
			return true
		}
	}
	return false
}

// Notify 按注册顺序通知所有订阅者
func (o *Observable[T]) Notify(v T) {
	if len(o.subscribers) == 0 {
		return
	}
	snapshot := make([]*subscriber[T], len(o.subscribers))
	copy(snapshot, o.subscribers)

	for _, s := range snapshot {
		if s.removed {
			continue
		}
		if s.once {
			o.Remove(s.handle)
		}
		s.fn(v)
	}
}

// Len 返回当前订阅者数量
func (o *Observable[T]) Len() int {
	return len(o.subscribers)
}

// Clear 移除所有订阅者
func (o *Observable[T]) Clear() {
	for _, s := range o.subscribers {
		s.removed = true
	}
	o.subscribers = nil
}
