package scenes

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/acclimation/pkg/coroutine"
	"github.com/decker502/acclimation/pkg/fsm"
	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/types"
)

// DoorState 门（包括电梯门）的状态
type DoorState int

const (
	DoorClosed DoorState = iota
	DoorAnimating
	DoorOpen
)

func (d DoorState) String() string {
	switch d {
	case DoorClosed:
		return "closed"
	case DoorAnimating:
		return "animating"
	case DoorOpen:
		return "open"
	}
	return fmt.Sprintf("DoorState(%d)", int(d))
}

// 门状态机的转移条件
const (
	doorSignalOpen = iota
	doorSignalOpened
	doorSignalClose
	doorSignalClosed
)

// newDoorStateMachine Closed → Animating → Open → Animating → Closed
func newDoorStateMachine() *fsm.FiniteStateMachine {
	m := fsm.New()
	m.AddEdge(int(DoorClosed), int(DoorAnimating), doorSignalOpen)
	m.AddEdge(int(DoorAnimating), int(DoorOpen), doorSignalOpened)
	m.AddEdge(int(DoorOpen), int(DoorAnimating), doorSignalClose)
	m.AddEdge(int(DoorAnimating), int(DoorClosed), doorSignalClosed)
	m.SetState(int(DoorClosed))
	return m
}

// door 由状态机控制的门
//
// 开关动画：播放音效 → Animating → 等待 delay → 每 tick 调用一次 step，
// 共 frames 次 → Open / Closed。动画中的开关请求被忽略。
type door struct {
	name   string
	states *fsm.FiniteStateMachine
	sounds *game.SoundEffects

	sound  types.SoundEffectTrack
	volume float64
	delay  time.Duration
	frames int
	step   func(opening bool)
}

// State 当前状态
func (d *door) State() DoorState {
	key, _ := d.states.Current()
	return DoorState(key)
}

func (d *door) signal(condition int) error {
	if err := d.states.Signal(condition); err != nil {
		return fmt.Errorf("door %s: %w", d.name, err)
	}
	return nil
}

// Toggle 关闭时开门、打开时关门，动画中返回 nil
func (d *door) Toggle(s *coroutine.Scheduler) *coroutine.Task {
	switch d.State() {
	case DoorClosed:
		return s.Start(d.Open)
	case DoorOpen:
		return s.Start(d.Close)
	}
	return nil
}

// Open 开门协程，门不处于关闭状态时直接返回
func (d *door) Open(co *coroutine.Co) {
	if d.State() != DoorClosed {
		return
	}
	d.animate(co, true)
}

// Close 关门协程，门不处于打开状态时直接返回
func (d *door) Close(co *coroutine.Co) {
	if d.State() != DoorOpen {
		return
	}
	d.animate(co, false)
}

func (d *door) animate(co *coroutine.Co, opening bool) {
	start, done := doorSignalOpen, doorSignalOpened
	if !opening {
		start, done = doorSignalClose, doorSignalClosed
	}

	d.sounds.Play(d.sound, d.volume)
	if err := d.signal(start); err != nil {
		co.Fail(err)
	}
	log.Printf("[Level1] %s: %s", d.name, d.State())

	if d.delay > 0 {
		co.Call(coroutine.Delay(d.delay))
	}
	co.Call(coroutine.Frames(d.frames, func(int) { d.step(opening) }))

	if err := d.signal(done); err != nil {
		co.Fail(err)
	}
	log.Printf("[Level1] %s: %s", d.name, d.State())
}
