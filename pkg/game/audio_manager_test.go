package game

import (
	"testing"

	"github.com/decker502/acclimation/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrack struct {
	playing bool
	plays   int
	rewinds int
	volume  float64
}

func (f *fakeTrack) Play() {
	f.playing = true
	f.plays++
}

func (f *fakeTrack) Pause() { f.playing = false }

func (f *fakeTrack) Rewind() error {
	f.rewinds++
	return nil
}

func (f *fakeTrack) IsPlaying() bool { return f.playing }

func (f *fakeTrack) SetVolume(v float64) { f.volume = v }

func (f *fakeTrack) finish() { f.playing = false }

func newTestVoiceOver() (*VoiceOver, map[types.VoiceOverTrack]*fakeTrack) {
	fakes := map[types.VoiceOverTrack]*fakeTrack{}
	tracks := map[types.VoiceOverTrack]Track{}
	for _, tr := range []types.VoiceOverTrack{
		types.VoiceOverPleaseRemainCalm,
		types.VoiceOverMouseLook,
		types.VoiceOverApply,
	} {
		f := &fakeTrack{}
		fakes[tr] = f
		tracks[tr] = f
	}
	return NewVoiceOver(tracks), fakes
}

func TestVoiceOver_StartAndNaturalFinish(t *testing.T) {
	v, fakes := newTestVoiceOver()
	var started, finished []types.VoiceOverTrack
	v.OnTrackStarted().Add(func(tr types.VoiceOverTrack) { started = append(started, tr) })
	v.OnTrackFinished().Add(func(tr types.VoiceOverTrack) { finished = append(finished, tr) })

	v.Play(types.VoiceOverPleaseRemainCalm)
	require.Equal(t, []types.VoiceOverTrack{types.VoiceOverPleaseRemainCalm}, started)
	assert.Equal(t, 1, fakes[types.VoiceOverPleaseRemainCalm].rewinds)

	require.NoError(t, v.Update())
	assert.Empty(t, finished)

	fakes[types.VoiceOverPleaseRemainCalm].finish()
	require.NoError(t, v.Update())
	require.NoError(t, v.Update())
	assert.Equal(t, []types.VoiceOverTrack{types.VoiceOverPleaseRemainCalm}, finished)

	_, ok := v.Current()
	assert.False(t, ok)
}

func TestVoiceOver_PlayStopsCurrentWithoutFinishEvent(t *testing.T) {
	v, fakes := newTestVoiceOver()
	finished := 0
	v.OnTrackFinished().Add(func(types.VoiceOverTrack) { finished++ })

	v.Play(types.VoiceOverPleaseRemainCalm)
	v.Play(types.VoiceOverMouseLook)

	assert.False(t, fakes[types.VoiceOverPleaseRemainCalm].playing)
	require.NoError(t, v.Update())
	assert.Zero(t, finished)

	cur, ok := v.Current()
	require.True(t, ok)
	assert.Equal(t, types.VoiceOverMouseLook, cur)
}

func TestVoiceOver_FinishHandlerCanChain(t *testing.T) {
	v, fakes := newTestVoiceOver()
	v.OnTrackFinished().Add(func(tr types.VoiceOverTrack) {
		if tr == types.VoiceOverPleaseRemainCalm {
			v.Play(types.VoiceOverApply)
		}
	})

	v.Play(types.VoiceOverPleaseRemainCalm)
	fakes[types.VoiceOverPleaseRemainCalm].finish()
	require.NoError(t, v.Update())

	cur, ok := v.Current()
	require.True(t, ok)
	assert.Equal(t, types.VoiceOverApply, cur)
	assert.True(t, fakes[types.VoiceOverApply].playing)
}

func TestVoiceOver_PausedTrackIsNotFinished(t *testing.T) {
	v, fakes := newTestVoiceOver()
	finished := 0
	v.OnTrackFinished().Add(func(types.VoiceOverTrack) { finished++ })

	v.Play(types.VoiceOverMouseLook)
	v.Pause()
	assert.True(t, v.Paused())
	require.NoError(t, v.Update())
	assert.Zero(t, finished)

	v.Resume()
	assert.True(t, fakes[types.VoiceOverMouseLook].playing)
	assert.Equal(t, 1, fakes[types.VoiceOverMouseLook].rewinds, "resume must not rewind")
}

func TestVoiceOver_MissingTrackUsesPlaceholder(t *testing.T) {
	v, _ := newTestVoiceOver()
	finished := 0
	v.OnTrackFinished().Add(func(types.VoiceOverTrack) { finished++ })

	v.Play(types.VoiceOverDvorak)
	for i := 0; i < PlaceholderFrames-1; i++ {
		require.NoError(t, v.Update())
	}
	assert.Zero(t, finished)
	require.NoError(t, v.Update())
	assert.Equal(t, 1, finished)
}

func TestVoiceOver_StaleTrackReportsError(t *testing.T) {
	v, _ := newTestVoiceOver()
	v.Play(types.VoiceOverMouseLook)
	v.started[types.VoiceOverApply] = true

	err := v.Update()
	assert.ErrorIs(t, err, ErrTrackNotPlaying)
}

func TestSoundEffects_PauseResumesOnlyPlayingTracks(t *testing.T) {
	music := &fakeTrack{}
	click := &fakeTrack{}
	s := NewSoundEffects(map[types.SoundEffectTrack]Track{
		types.SoundEffectMusic: music,
		types.SoundEffectClick: click,
	})

	s.Play(types.SoundEffectMusic, 1)
	s.Pause()
	assert.False(t, music.playing)

	s.Resume()
	assert.True(t, music.playing)
	assert.False(t, click.playing)
	assert.Equal(t, 1, music.rewinds)
}

func TestSoundEffects_Volume(t *testing.T) {
	hinge := &fakeTrack{}
	s := NewSoundEffects(map[types.SoundEffectTrack]Track{types.SoundEffectHinge: hinge})

	s.Play(types.SoundEffectHinge, 0.5)
	assert.InDelta(t, 0.5, hinge.volume, 1e-9)

	s.SetMasterVolume(0.5)
	s.Play(types.SoundEffectHinge, 0.5)
	assert.InDelta(t, 0.25, hinge.volume, 1e-9)
	assert.Equal(t, 2, hinge.plays)
}

func TestSoundEffects_PlaceholderStopsAfterFrames(t *testing.T) {
	s := NewSoundEffects(nil)
	s.Play(types.SoundEffectElevator, 1)
	assert.True(t, s.IsPlaying(types.SoundEffectElevator))
	for i := 0; i < PlaceholderFrames; i++ {
		s.Update()
	}
	assert.False(t, s.IsPlaying(types.SoundEffectElevator))
}
