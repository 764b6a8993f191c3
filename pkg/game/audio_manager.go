package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/acclimation/pkg/event"
	"github.com/decker502/acclimation/pkg/types"
)

// ErrTrackNotPlaying 非当前旁白音轨播放结束
var ErrTrackNotPlaying = errors.New("voice-over track finished while not current")

// PlaceholderFrames 缺失音轨的静音占位长度（Tick 数）
const PlaceholderFrames = 120

// Track 可播放的音轨
// *audio.Player 满足该接口
type Track interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
}

// placeholderTrack 清单中缺失的音轨：静音播放固定 Tick 数后结束
type placeholderTrack struct {
	remaining int
	playing   bool
}

func (p *placeholderTrack) Play() {
	if p.remaining == 0 {
		p.remaining = PlaceholderFrames
	}
	p.playing = true
}

func (p *placeholderTrack) Pause() { p.playing = false }

func (p *placeholderTrack) Rewind() error {
	p.remaining = PlaceholderFrames
	return nil
}

func (p *placeholderTrack) IsPlaying() bool { return p.playing && p.remaining > 0 }

func (p *placeholderTrack) SetVolume(float64) {}

func (p *placeholderTrack) tick() {
	if !p.playing || p.remaining == 0 {
		return
	}
	p.remaining--
	if p.remaining == 0 {
		p.playing = false
	}
}

func tickPlaceholder(t Track) {
	if p, ok := t.(*placeholderTrack); ok {
		p.tick()
	}
}

// VoiceOver 旁白播放器
// 同一时刻只有一条当前音轨；播放新音轨会停止当前音轨，被停止的音轨不发出结束事件
type VoiceOver struct {
	tracks [types.VoiceOverTrackCount]Track

	current types.VoiceOverTrack
	active  bool
	paused  bool
	started [types.VoiceOverTrackCount]bool

	onStarted  *event.Observable[types.VoiceOverTrack]
	onFinished *event.Observable[types.VoiceOverTrack]
}

// NewVoiceOver 创建旁白播放器，缺失的音轨使用静音占位
func NewVoiceOver(tracks map[types.VoiceOverTrack]Track) *VoiceOver {
	v := &VoiceOver{
		onStarted:  event.New[types.VoiceOverTrack](),
		onFinished: event.New[types.VoiceOverTrack](),
	}
	for i := range v.tracks {
		track := types.VoiceOverTrack(i)
		if t, ok := tracks[track]; ok && t != nil {
			v.tracks[i] = t
			continue
		}
		log.Printf("[VoiceOver] Warning: 音轨 %s 缺失，使用静音占位", track)
		v.tracks[i] = &placeholderTrack{}
	}
	return v
}

// LoadVoiceOver 通过资源管理器加载全部旁白音轨
// 清单中缺失的音轨被容忍，其他加载错误直接返回
func LoadVoiceOver(rm *ResourceManager) (*VoiceOver, error) {
	tracks := make(map[types.VoiceOverTrack]Track, types.VoiceOverTrackCount)
	for i := 0; i < int(types.VoiceOverTrackCount); i++ {
		track := types.VoiceOverTrack(i)
		player, err := rm.LoadAudioByID(track.Asset(), false)
		if errors.Is(err, ErrAssetNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("voice-over %s: %w", track, err)
		}
		tracks[track] = player
	}
	return NewVoiceOver(tracks), nil
}

// OnTrackStarted 音轨开始播放
func (v *VoiceOver) OnTrackStarted() *event.Observable[types.VoiceOverTrack] {
	return v.onStarted
}

// OnTrackFinished 当前音轨自然播放结束
func (v *VoiceOver) OnTrackFinished() *event.Observable[types.VoiceOverTrack] {
	return v.onFinished
}

// Play 从头播放 track，停止当前音轨
func (v *VoiceOver) Play(track types.VoiceOverTrack) {
	v.Stop()
	t := v.tracks[track]
	if err := t.Rewind(); err != nil {
		log.Printf("[VoiceOver] 音轨 %s 重置失败: %v", track, err)
	}
	t.Play()
	v.current = track
	v.active = true
	v.paused = false
	v.started[track] = true
	log.Printf("[VoiceOver] 播放 %s", track)
	v.onStarted.Notify(track)
}

// Stop 停止当前音轨，不发出结束事件
func (v *VoiceOver) Stop() {
	if !v.active {
		return
	}
	t := v.tracks[v.current]
	t.Pause()
	if err := t.Rewind(); err != nil {
		log.Printf("[VoiceOver] 音轨 %s 重置失败: %v", v.current, err)
	}
	v.started[v.current] = false
	v.active = false
	v.paused = false
}

// Pause 暂停当前音轨
func (v *VoiceOver) Pause() {
	if !v.active || v.paused {
		return
	}
	v.tracks[v.current].Pause()
	v.paused = true
}

// Resume 继续播放暂停的音轨
func (v *VoiceOver) Resume() {
	if !v.active || !v.paused {
		return
	}
	v.tracks[v.current].Play()
	v.paused = false
}

// Current 当前音轨
func (v *VoiceOver) Current() (types.VoiceOverTrack, bool) {
	return v.current, v.active
}

// Paused 当前音轨是否暂停
func (v *VoiceOver) Paused() bool {
	return v.paused
}

// SetVolume 设置全部旁白音轨的音量
func (v *VoiceOver) SetVolume(volume float64) {
	for _, t := range v.tracks {
		t.SetVolume(volume)
	}
}

// Update 检测播放结束的音轨，每帧调用一次
// 当前音轨结束时发出 OnTrackFinished；非当前音轨结束返回 ErrTrackNotPlaying
func (v *VoiceOver) Update() error {
	for _, t := range v.tracks {
		tickPlaceholder(t)
	}

	var errs []error
	for i := range v.started {
		if !v.started[i] {
			continue
		}
		track := types.VoiceOverTrack(i)
		if v.tracks[i].IsPlaying() || (v.paused && track == v.current) {
			continue
		}
		v.started[i] = false
		if !v.active || track != v.current {
			errs = append(errs, fmt.Errorf("%w: %s", ErrTrackNotPlaying, track))
			continue
		}
		v.active = false
		log.Printf("[VoiceOver] 结束 %s", track)
		v.onFinished.Notify(track)
	}
	return errors.Join(errs...)
}

// SoundEffects 音效与背景音乐
// 支持整体暂停与恢复：暂停时记录正在播放的音轨，恢复时只继续这些音轨
type SoundEffects struct {
	tracks [types.SoundEffectTrackCount]Track
	paused [types.SoundEffectTrackCount]bool
	master float64
}

// NewSoundEffects 创建音效播放器，缺失的音轨使用静音占位
func NewSoundEffects(tracks map[types.SoundEffectTrack]Track) *SoundEffects {
	s := &SoundEffects{master: 1}
	for i := range s.tracks {
		track := types.SoundEffectTrack(i)
		if t, ok := tracks[track]; ok && t != nil {
			s.tracks[i] = t
			continue
		}
		log.Printf("[SoundEffects] Warning: 音轨 %s 缺失，使用静音占位", track)
		s.tracks[i] = &placeholderTrack{}
	}
	return s
}

// loopingEffects 循环播放的音轨
var loopingEffects = map[types.SoundEffectTrack]bool{
	types.SoundEffectMusic:        true,
	types.SoundEffectCreditsMusic: true,
}

// LoadSoundEffects 通过资源管理器加载全部音效，背景音乐循环播放
func LoadSoundEffects(rm *ResourceManager) (*SoundEffects, error) {
	tracks := make(map[types.SoundEffectTrack]Track, types.SoundEffectTrackCount)
	for i := 0; i < int(types.SoundEffectTrackCount); i++ {
		track := types.SoundEffectTrack(i)
		player, err := rm.LoadAudioByID(track.Asset(), loopingEffects[track])
		if errors.Is(err, ErrAssetNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sound effect %s: %w", track, err)
		}
		tracks[track] = player
	}
	return NewSoundEffects(tracks), nil
}

// SetMasterVolume 设置总音量（来自 SettingsManager），作用于之后的 Play
func (s *SoundEffects) SetMasterVolume(volume float64) {
	s.master = clampVolume(volume)
}

// Play 以 volume 从头播放 track
func (s *SoundEffects) Play(track types.SoundEffectTrack, volume float64) {
	t := s.tracks[track]
	if err := t.Rewind(); err != nil {
		log.Printf("[SoundEffects] 音轨 %s 重置失败: %v", track, err)
	}
	t.SetVolume(clampVolume(volume) * s.master)
	t.Play()
	s.paused[track] = false
}

// Stop 停止 track
func (s *SoundEffects) Stop(track types.SoundEffectTrack) {
	s.tracks[track].Pause()
	s.paused[track] = false
}

// IsPlaying track 是否正在播放
func (s *SoundEffects) IsPlaying(track types.SoundEffectTrack) bool {
	return s.tracks[track].IsPlaying()
}

// Pause 暂停所有正在播放的音轨
func (s *SoundEffects) Pause() {
	for i, t := range s.tracks {
		if t.IsPlaying() {
			t.Pause()
			s.paused[i] = true
		}
	}
}

// Resume 继续 Pause 时暂停的音轨
func (s *SoundEffects) Resume() {
	for i, t := range s.tracks {
		if s.paused[i] {
			t.Play()
			s.paused[i] = false
		}
	}
}

// StopAll 停止所有音轨，场景释放时调用
func (s *SoundEffects) StopAll() {
	for i := range s.tracks {
		s.Stop(types.SoundEffectTrack(i))
	}
}

// Update 推进占位音轨，每帧调用一次
func (s *SoundEffects) Update() {
	for _, t := range s.tracks {
		tickPlaceholder(t)
	}
}
