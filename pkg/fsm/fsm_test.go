package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder 记录状态机事件顺序
type recorder struct {
	events []string
}

func (r *recorder) watch(m *FiniteStateMachine, key int, name string) {
	m.OnEnter(key).Add(func(int) { r.events = append(r.events, "enter "+name) })
	m.OnExit(key).Add(func(int) { r.events = append(r.events, "exit "+name) })
}

func TestSignalBeforeSetStateFails(t *testing.T) {
	m := New()
	m.AddEdge(1, 2, 5)

	err := m.Signal(5)
	require.ErrorIs(t, err, ErrNotInitialized)

	_, ok := m.Current()
	assert.False(t, ok)
}

func TestAddEdgeSetStateSignal(t *testing.T) {
	m := New()
	r := &recorder{}
	r.watch(m, 1, "1")
	r.watch(m, 2, "2")

	m.AddEdge(1, 2, 5)

	m.SetState(1)
	assert.Equal(t, []string{"enter 1"}, r.events)

	require.NoError(t, m.Signal(5))
	assert.Equal(t, []string{"enter 1", "exit 1", "enter 2"}, r.events)

	// 节点 2 没有条件 99 的出边：空操作
	require.NoError(t, m.Signal(99))
	assert.Equal(t, []string{"enter 1", "exit 1", "enter 2"}, r.events)

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, 2, cur)
}

func TestSubscriptionBeforeNodeCreation(t *testing.T) {
	m := New()
	entered := 0
	// 节点 7 尚未通过 AddEdge 创建
	m.OnEnter(7).Add(func(key int) {
		assert.Equal(t, 7, key)
		entered++
	})

	m.AddEdge(3, 7, 1)
	m.SetState(3)
	require.NoError(t, m.Signal(1))
	assert.Equal(t, 1, entered)
}

func TestSetStateExitsCurrent(t *testing.T) {
	m := New()
	r := &recorder{}
	r.watch(m, 1, "1")
	r.watch(m, 4, "4")

	m.SetState(1)
	m.SetState(4) // 节点 4 由 SetState 创建
	assert.Equal(t, []string{"enter 1", "exit 1", "enter 4"}, r.events)
	assert.True(t, m.Is(4))
}

func TestSelfLoop(t *testing.T) {
	m := New()
	r := &recorder{}
	r.watch(m, 1, "1")

	m.AddEdge(1, 1, 0)
	m.SetState(1)
	require.NoError(t, m.Signal(0))
	assert.Equal(t, []string{"enter 1", "exit 1", "enter 1"}, r.events)
}

func TestEdgeOverwrite(t *testing.T) {
	m := New()
	m.AddEdge(1, 2, 5)
	m.AddEdge(1, 3, 5)
	m.SetState(1)
	require.NoError(t, m.Signal(5))
	assert.True(t, m.Is(3))
}
