// Package fsm 提供通用的有向标记图状态机
//
// 状态与条件都用整数标识。节点在第一次被引用时惰性创建，
// 因此可以在节点被 AddEdge/SetState 创建之前订阅其进入/离开事件。
package fsm

import (
	"errors"

	"github.com/decker502/acclimation/pkg/event"
)

// ErrNotInitialized 在调用 SetState 之前调用 Signal 时返回
var ErrNotInitialized = errors.New("fsm: state machine must be set to a valid state before signaling")

type state struct {
	key       int
	neighbors map[int]int // condition -> destination
	onEnter   event.Observable[int]
	onExit    event.Observable[int]
}

// FiniteStateMachine 有限状态机
type FiniteStateMachine struct {
	graph   map[int]*state
	current *state
}

// New 创建空状态机（未初始化，没有当前状态）
func New() *FiniteStateMachine {
	return &FiniteStateMachine{
		graph: make(map[int]*state),
	}
}

func (m *FiniteStateMachine) node(key int) *state {
	s, ok := m.graph[key]
	if !ok {
		s = &state{key: key, neighbors: make(map[int]int)}
		m.graph[key] = s
	}
	return s
}

// AddEdge 记录 from --condition--> to 的转移，两个节点不存在时自动创建
// 同一 from 上重复的 condition 会覆盖之前的目标
func (m *FiniteStateMachine) AddEdge(from, to, condition int) {
	m.node(to)
	m.node(from).neighbors[condition] = to
}

// SetState 强制切换到指定状态
// 先触发当前状态（如有）的离开事件，再触发目标状态的进入事件
func (m *FiniteStateMachine) SetState(key int) {
	m.transition(m.node(key))
}

// Signal 以 condition 驱动一次转移
// 当前状态没有该条件的出边时为空操作（不触发任何事件）
func (m *FiniteStateMachine) Signal(condition int) error {
	if m.current == nil {
		return ErrNotInitialized
	}
	next, ok := m.current.neighbors[condition]
	if !ok {
		return nil
	}
	m.transition(m.graph[next])
	return nil
}

func (m *FiniteStateMachine) transition(to *state) {
	if m.current != nil {
		m.current.onExit.Notify(m.current.key)
	}
	m.current = to
	to.onEnter.Notify(to.key)
}

// Current 返回当前状态；未初始化时 ok 为 false
func (m *FiniteStateMachine) Current() (key int, ok bool) {
	if m.current == nil {
		return 0, false
	}
	return m.current.key, true
}

// Is 判断当前状态是否为 key
func (m *FiniteStateMachine) Is(key int) bool {
	return m.current != nil && m.current.key == key
}

// OnEnter 返回进入指定状态的事件通道（节点不存在时创建）
func (m *FiniteStateMachine) OnEnter(key int) *event.Observable[int] {
	return &m.node(key).onEnter
}

// OnExit 返回离开指定状态的事件通道（节点不存在时创建）
func (m *FiniteStateMachine) OnExit(key int) *event.Observable[int] {
	return &m.node(key).onExit
}
