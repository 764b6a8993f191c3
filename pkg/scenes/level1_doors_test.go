package scenes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/acclimation/pkg/coroutine"
	"github.com/decker502/acclimation/pkg/game"
	"github.com/decker502/acclimation/pkg/types"
)

func TestDoorStateMachine_Cycle(t *testing.T) {
	m := newDoorStateMachine()
	assert.True(t, m.Is(int(DoorClosed)))

	require.NoError(t, m.Signal(doorSignalOpen))
	assert.True(t, m.Is(int(DoorAnimating)))
	require.NoError(t, m.Signal(doorSignalOpened))
	assert.True(t, m.Is(int(DoorOpen)))
	require.NoError(t, m.Signal(doorSignalClose))
	assert.True(t, m.Is(int(DoorAnimating)))
	require.NoError(t, m.Signal(doorSignalClosed))
	assert.True(t, m.Is(int(DoorClosed)))
}

func TestDoorStateMachine_IgnoresSignalWithoutEdge(t *testing.T) {
	m := newDoorStateMachine()
	require.NoError(t, m.Signal(doorSignalOpened))
	require.NoError(t, m.Signal(doorSignalClose))
	assert.True(t, m.Is(int(DoorClosed)))
}

func TestDoorState_String(t *testing.T) {
	assert.Equal(t, "closed", DoorClosed.String())
	assert.Equal(t, "animating", DoorAnimating.String())
	assert.Equal(t, "open", DoorOpen.String())
	assert.Equal(t, "DoorState(7)", DoorState(7).String())
}

func newTestDoor(delay time.Duration, frames int, pos *int) (*door, *game.SoundEffects) {
	sfx := game.NewSoundEffects(nil)
	return &door{
		name:   "test",
		states: newDoorStateMachine(),
		sounds: sfx,
		sound:  types.SoundEffectElevator,
		volume: 1,
		delay:  delay,
		frames: frames,
		step: func(opening bool) {
			if opening {
				*pos++
			} else {
				*pos--
			}
		},
	}, sfx
}

func TestDoor_OpenAfterDelayAndFrames(t *testing.T) {
	pos := 0
	d, sfx := newTestDoor(time.Second, 3, &pos)
	sched := coroutine.NewScheduler()
	defer sched.Close()

	task := d.Toggle(sched)
	require.NotNil(t, task)

	tick := func() { require.NoError(t, sched.Tick(500*time.Millisecond)) }

	tick()
	assert.Equal(t, DoorAnimating, d.State())
	assert.True(t, sfx.IsPlaying(types.SoundEffectElevator))
	tick()
	assert.Zero(t, pos, "门在延迟结束前不动")

	tick()
	tick()
	tick()
	assert.Equal(t, 3, pos)
	assert.Equal(t, DoorAnimating, d.State())

	tick()
	assert.Equal(t, DoorOpen, d.State())
	assert.True(t, task.IsDone())
}

func TestDoor_ToggleIgnoredWhileAnimating(t *testing.T) {
	pos := 0
	d, _ := newTestDoor(0, 2, &pos)
	sched := coroutine.NewScheduler()
	defer sched.Close()

	d.Toggle(sched)
	require.NoError(t, sched.Tick(time.Millisecond))
	assert.Nil(t, d.Toggle(sched))

	for d.State() == DoorAnimating {
		require.NoError(t, sched.Tick(time.Millisecond))
	}
	assert.Equal(t, DoorOpen, d.State())
	assert.Equal(t, 2, pos)

	require.NotNil(t, d.Toggle(sched))
	for i := 0; i < 10 && d.State() != DoorClosed; i++ {
		require.NoError(t, sched.Tick(time.Millisecond))
	}
	assert.Equal(t, DoorClosed, d.State())
	assert.Zero(t, pos)
}

func TestDoor_CloseOnClosedDoorIsNoop(t *testing.T) {
	pos := 0
	d, _ := newTestDoor(0, 2, &pos)
	sched := coroutine.NewScheduler()
	defer sched.Close()

	task := sched.Start(d.Close)
	require.NoError(t, sched.Tick(time.Millisecond))
	assert.True(t, task.IsDone())
	assert.Equal(t, DoorClosed, d.State())
	assert.Zero(t, pos)
}
