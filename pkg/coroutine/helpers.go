package coroutine

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Delay 返回一个按帧间隔倒计时的协程
// 每个 Tick 减去实测的帧间隔，直到倒计时不大于零，与渲染帧严格同步
func Delay(d time.Duration) Func {
	return func(co *Co) {
		remaining := d
		for remaining > 0 {
			remaining -= co.Delta()
			co.Yield()
		}
	}
}

// WaitUntil 返回一个每个 Tick 检查一次条件、条件成立后返回的协程
func WaitUntil(cond func() bool) Func {
	return func(co *Co) {
		for !cond() {
			co.Yield()
		}
	}
}

// Frames 返回一个执行固定 Tick 数的协程，每个 Tick 调用一次 step(i)
func Frames(n int, step func(i int)) Func {
	return func(co *Co) {
		for i := 0; i < n; i++ {
			step(i)
			co.Yield()
		}
	}
}

// Future 在 goroutine 中执行的异步操作结果
// 用于资源加载等耗时操作：等待方协程通过 Co.Await 挂起，不阻塞 tick 源
type Future[T any] struct {
	done  atomic.Bool
	value T
	err   error
}

// Go 在新的 goroutine 中执行 fn，返回其 Future
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("coroutine: async panic: %v", r)
			}
			f.done.Store(true)
		}()
		f.value, f.err = fn()
	}()
	return f
}

// IsDone 异步操作是否已结束
func (f *Future[T]) IsDone() bool {
	return f.done.Load()
}

// Result 返回结果；未完成时返回零值与 nil
func (f *Future[T]) Result() (T, error) {
	if !f.done.Load() {
		var zero T
		return zero, nil
	}
	return f.value, f.err
}
