package coroutine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

func tickN(t *testing.T, s *Scheduler, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, s.Tick(frame))
	}
}

func TestScheduler_OneStepPerTick(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	steps := 0
	task := s.Start(func(co *Co) {
		for i := 0; i < 3; i++ {
			steps++
			co.Yield()
		}
	})

	assert.Equal(t, 0, steps, "first step runs on the next tick, not on Start")
	tickN(t, s, 1)
	assert.Equal(t, 1, steps)
	tickN(t, s, 2)
	assert.Equal(t, 3, steps)
	assert.False(t, task.IsDone())

	tickN(t, s, 1)
	assert.True(t, task.IsDone())
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_ResumesInRegistrationOrder(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		s.Start(func(co *Co) {
			for {
				order = append(order, name)
				co.Yield()
			}
		})
	}

	tickN(t, s, 2)
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, order)
}

func TestScheduler_StartDuringTickRunsNextTick(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var order []string
	s.Start(func(co *Co) {
		order = append(order, "parent")
		co.Scheduler().Start(func(co *Co) {
			order = append(order, "child")
		})
		co.Yield()
		order = append(order, "parent-2")
	})

	tickN(t, s, 1)
	assert.Equal(t, []string{"parent"}, order)

	tickN(t, s, 1)
	assert.Equal(t, []string{"parent", "parent-2", "child"}, order)
}

func TestCo_CallRunsChildToCompletionFirst(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var order []string
	task := s.Start(func(co *Co) {
		order = append(order, "before")
		co.Call(func(co *Co) {
			order = append(order, "child-1")
			co.Yield()
			order = append(order, "child-2")
			co.Yield()
		})
		order = append(order, "after")
	})

	tickN(t, s, 1)
	assert.Equal(t, []string{"before", "child-1"}, order)
	tickN(t, s, 1)
	assert.Equal(t, []string{"before", "child-1", "child-2"}, order)
	tickN(t, s, 1)
	assert.Equal(t, []string{"before", "child-1", "child-2", "after"}, order)
	assert.True(t, task.IsDone())
}

func TestCo_AwaitParksUntilTaskDone(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	release := false
	child := s.Start(WaitUntil(func() bool { return release }))

	parentSteps := 0
	parent := s.Start(func(co *Co) {
		parentSteps++
		co.Await(child)
		parentSteps++
	})

	tickN(t, s, 5)
	assert.Equal(t, 1, parentSteps, "parent must stay parked while child runs")

	release = true
	tickN(t, s, 1)
	assert.True(t, child.IsDone())
	// 子协程在本 Tick 内结束，父协程排在其后，同一 Tick 内被恢复
	assert.True(t, parent.IsDone())
	assert.Equal(t, 2, parentSteps)
}

func TestDelay_CountsDownByFrameDelta(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	task := s.Start(Delay(100 * time.Millisecond))

	// 16ms * 7 = 112ms，第 8 次 Tick 时检测到倒计时结束
	ticks := 0
	for !task.IsDone() {
		require.NoError(t, s.Tick(frame))
		ticks++
		require.Less(t, ticks, 100)
	}
	assert.Equal(t, 8, ticks)
}

func TestDelay_ZeroFinishesOnFirstTick(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	task := s.Start(Delay(0))
	tickN(t, s, 1)
	assert.True(t, task.IsDone())
}

func TestFrames_RunsFixedTickCount(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var seen []int
	task := s.Start(Frames(3, func(i int) { seen = append(seen, i) }))
	tickN(t, s, 3)
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.False(t, task.IsDone())
	tickN(t, s, 1)
	assert.True(t, task.IsDone())
}

func TestCo_FailReportsError(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	boom := errors.New("boom")
	task := s.Start(func(co *Co) {
		co.Yield()
		co.Fail(boom)
	})

	require.NoError(t, s.Tick(frame))
	err := s.Tick(frame)
	require.ErrorIs(t, err, boom)
	assert.True(t, task.IsDone())
	assert.ErrorIs(t, task.Err(), boom)
}

func TestScheduler_PanicBecomesError(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	task := s.Start(func(co *Co) {
		panic("kaboom")
	})

	err := s.Tick(frame)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
	assert.True(t, task.IsDone())
}

func TestScheduler_CloseTerminatesSuspendedTasks(t *testing.T) {
	s := NewScheduler()

	cleaned := 0
	var tasks []*Task
	for i := 0; i < 3; i++ {
		tasks = append(tasks, s.Start(func(co *Co) {
			defer func() { cleaned++ }()
			for {
				co.Yield()
			}
		}))
	}
	tickN(t, s, 1)
	// 注册后尚未运行过的协程
	neverRan := s.Start(func(co *Co) { cleaned += 100 })

	s.Close()
	assert.Equal(t, 3, cleaned, "suspended tasks unwind their defers, unstarted tasks never run")
	for _, task := range tasks {
		assert.True(t, task.IsDone())
	}
	assert.True(t, neverRan.IsDone())
	assert.Equal(t, 0, s.Len())

	late := s.Start(func(co *Co) {})
	assert.ErrorIs(t, late.Err(), ErrClosed)
	assert.NoError(t, s.Tick(frame))
}

func TestScheduler_CloseUnwindsTasksOneAtATimeInOrder(t *testing.T) {
	s := NewScheduler()

	var order []int
	for i := 0; i < 8; i++ {
		s.Start(func(co *Co) {
			defer func() { order = append(order, i) }()
			for {
				co.Yield()
			}
		})
	}
	tickN(t, s, 1)

	s.Close()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, order)
}

func TestFuture_AwaitInsideCoroutine(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	gate := make(chan struct{})
	f := Go(func() (string, error) {
		<-gate
		return "loaded", nil
	})

	var got string
	task := s.Start(func(co *Co) {
		co.Await(f)
		got, _ = f.Result()
	})

	tickN(t, s, 3)
	assert.False(t, task.IsDone())

	close(gate)
	deadline := time.Now().Add(2 * time.Second)
	for !task.IsDone() && time.Now().Before(deadline) {
		require.NoError(t, s.Tick(frame))
		time.Sleep(time.Millisecond)
	}
	require.True(t, task.IsDone())
	assert.Equal(t, "loaded", got)
}
