// Package coroutine 实现按帧步进的协作式协程调度器
//
// 调度模型：
//   - 单线程语义：调度器由外部的每帧 Tick 驱动，同一时刻只有一个协程步在运行
//   - 每个协程在 Yield 处挂起，每次 Tick 恢复一步
//   - 同一 Tick 内按注册顺序恢复
//   - Tick 期间新注册的协程从下一次 Tick 开始运行
//   - Await 挂起的协程在等待对象完成之前不会被恢复
//
// 实现上每个协程运行在独立的 goroutine 中，与调度器之间通过无缓冲 channel
// 严格交接控制权，因此协程体可以写成普通的顺序代码，同时不会与调度器并发执行。
package coroutine

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

// ErrClosed 在已关闭的调度器上 Start 时，返回的 Task 携带此错误
var ErrClosed = errors.New("coroutine: scheduler closed")

// Func 协程体
type Func func(co *Co)

// Awaitable 可等待对象
// Task 与 Future 都实现了该接口
type Awaitable interface {
	IsDone() bool
}

// Task 已注册到调度器的协程
type Task struct {
	fn Func

	resume  chan struct{}
	yielded chan struct{}
	kill    chan struct{}
	exited  chan struct{} // goroutine 返回时关闭

	waiting  Awaitable // 非 nil 时调度器跳过该协程
	finished bool      // 协程 goroutine 写入，交接后由调度器读取
	aborted  bool      // 因 Close 退出
	done     bool
	err      error
}

// IsDone 协程是否已结束（正常返回、失败或被 Close 终止）
func (t *Task) IsDone() bool {
	return t.done
}

// Err 返回协程失败原因（Fail 或 panic）；正常结束时为 nil
func (t *Task) Err() error {
	return t.err
}

// Scheduler 协程调度器（即一个 tick 源）
type Scheduler struct {
	tasks  []*Task
	delta  time.Duration
	ticks  uint64
	closed bool
	wg     sync.WaitGroup
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Start 注册协程，第一步在下一次 Tick 时执行
func (s *Scheduler) Start(fn Func) *Task {
	t := &Task{
		fn:      fn,
		resume:  make(chan struct{}),
		yielded: make(chan struct{}),
		kill:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	if s.closed {
		t.done = true
		t.err = ErrClosed
		return t
	}

	s.wg.Add(1)
	go s.run(t)
	s.tasks = append(s.tasks, t)
	return t
}

func (s *Scheduler) run(t *Task) {
	defer s.wg.Done()
	defer close(t.exited)

	select {
	case <-t.resume:
	case <-t.kill:
		return
	}

	defer func() {
		if r := recover(); r != nil {
			t.err = fmt.Errorf("coroutine: panic: %v\n%s", r, debug.Stack())
		}
		if t.aborted {
			return
		}
		t.finished = true
		t.yielded <- struct{}{}
	}()

	t.fn(&Co{s: s, t: t})
}

// Tick 以帧间隔 delta 推进所有可运行协程各一步
// 返回本次 Tick 中失败协程的错误（errors.Join）
func (s *Scheduler) Tick(delta time.Duration) error {
	if s.closed {
		return nil
	}
	s.delta = delta
	s.ticks++

	var errs []error
	runnable := s.tasks[:len(s.tasks):len(s.tasks)]
	for _, t := range runnable {
		if t.done {
			continue
		}
		if t.waiting != nil {
			if !t.waiting.IsDone() {
				continue
			}
			t.waiting = nil
		}
		s.step(t)
		if t.done && t.err != nil {
			errs = append(errs, t.err)
		}
	}

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live

	return errors.Join(errs...)
}

func (s *Scheduler) step(t *Task) {
	t.resume <- struct{}{}
	<-t.yielded
	if t.finished {
		t.done = true
	}
}

// Close 按注册顺序逐个终止未完成的协程
// 前一个协程的 goroutine（包括 defer）完全退出后才终止下一个，
// 所以终止过程同样不会有两个协程同时运行
// 不能在本调度器自己的协程内调用
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, t := range s.tasks {
		if t.done {
			continue
		}
		t.aborted = true
		t.done = true
		close(t.kill)
		<-t.exited
	}
	s.tasks = nil
	s.wg.Wait()
}

// Len 返回未完成的协程数量
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Ticks 返回已执行的 Tick 次数
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Closed 调度器是否已关闭
func (s *Scheduler) Closed() bool {
	return s.closed
}

// Co 协程体内使用的控制句柄
type Co struct {
	s *Scheduler
	t *Task
}

// Yield 结束当前步，等待下一次 Tick
func (co *Co) Yield() {
	co.t.yielded <- struct{}{}
	select {
	case <-co.t.resume:
	case <-co.t.kill:
		runtime.Goexit()
	}
}

// Delta 返回当前 Tick 的帧间隔
func (co *Co) Delta() time.Duration {
	return co.s.delta
}

// Scheduler 返回协程所在的调度器
func (co *Co) Scheduler() *Scheduler {
	return co.s
}

// Call 内联运行嵌套协程：子协程的每次 Yield 都消耗父协程的 Tick，
// 子协程返回后父协程才继续执行
func (co *Co) Call(fn Func) {
	fn(co)
}

// Await 挂起直到 a 完成
// 挂起期间调度器不会恢复本协程；a 已完成时立即返回
func (co *Co) Await(a Awaitable) {
	if a.IsDone() {
		return
	}
	co.t.waiting = a
	co.Yield()
}

// Fail 以 err 结束本协程，err 由本次 Tick 返回
func (co *Co) Fail(err error) {
	co.t.err = err
	runtime.Goexit()
}
