package game

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/decker502/acclimation/pkg/embedded"
	"github.com/decker502/acclimation/pkg/types"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ErrAssetNotFound 资源清单中没有该标识
var ErrAssetNotFound = errors.New("asset not listed in manifest")

// ErrNoAudioContext 未提供音频上下文
var ErrNoAudioContext = errors.New("audio context unavailable")

// ResourceManager is responsible for centralized management of game assets.
// It resolves asset identifiers through the manifest and loads and caches
// audio players, so each file is decoded only once and reused by every scene.
//
// Supported audio formats: MP3 (.mp3), OGG Vorbis (.ogg) and WAV (.wav).
//
// Scene factories run on a background goroutine, so the caches are guarded
// by a mutex.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext, assetToURL)
//	player, err := rm.LoadAudioByID(types.SoundEffectClick.Asset(), false)
type ResourceManager struct {
	audioContext *audio.Context
	assets       map[types.AssetID]string

	mu         sync.Mutex
	audioCache map[string]*audio.Player // "loop:" / "once:" + path -> Player
}

// NewResourceManager creates a ResourceManager.
//
// Parameters:
//   - audioContext: the global audio context; nil disables audio loading.
//   - assets: asset identifier -> path, usually from LoadAssetManifest.
func NewResourceManager(audioContext *audio.Context, assets map[types.AssetID]string) *ResourceManager {
	if assets == nil {
		assets = make(map[types.AssetID]string)
	}
	return &ResourceManager{
		audioContext: audioContext,
		assets:       assets,
		audioCache:   make(map[string]*audio.Player),
	}
}

// Assets 返回资源清单映射
func (rm *ResourceManager) Assets() map[types.AssetID]string {
	return rm.assets
}

// ReadAsset 读取资源标识对应文件的全部内容
func (rm *ResourceManager) ReadAsset(id types.AssetID) ([]byte, error) {
	p, ok := rm.assets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	data, err := embedded.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", id, err)
	}
	return data, nil
}

// LoadAudioByID 按资源标识加载音频
// loop 为 true 时循环播放（背景音乐），否则单次播放（音效、旁白）
func (rm *ResourceManager) LoadAudioByID(id types.AssetID, loop bool) (*audio.Player, error) {
	p, ok := rm.assets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if loop {
		return rm.LoadAudio(p)
	}
	return rm.LoadSoundEffect(p)
}

// LoadAudio loads an audio file and wraps it in an infinite loop,
// suitable for background music. The player is cached by path.
//
// Example:
//
//	player, err := rm.LoadAudio("data/audio/music.ogg")
//	if err != nil {
//	    log.Printf("Failed to load audio: %v", err)
//	    return err
//	}
//	player.Play()
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	return rm.loadPlayer(path, true)
}

// LoadSoundEffect loads an audio file for one-shot playback.
// Unlike LoadAudio, the stream is NOT wrapped in an infinite loop.
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	return rm.loadPlayer(path, false)
}

// GetAudioPlayer retrieves a previously loaded one-shot player, or nil.
func (rm *ResourceManager) GetAudioPlayer(path string) *audio.Player {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.audioCache[cacheKey(path, false)]
}

func cacheKey(path string, loop bool) string {
	if loop {
		return "loop:" + path
	}
	return "once:" + path
}

func (rm *ResourceManager) loadPlayer(path string, loop bool) (*audio.Player, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	key := cacheKey(path, loop)
	if cachedPlayer, exists := rm.audioCache[key]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("load %s: %w", path, ErrNoAudioContext)
	}

	// Read the entire file into memory so the stream can seek freely
	audioData, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	stream, err := decodeAudio(path, bytes.NewReader(audioData))
	if err != nil {
		return nil, err
	}

	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, stream.Length())
	}

	player, err := rm.audioContext.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[key] = player
	return player, nil
}

type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// decodeAudio 按扩展名解码
func decodeAudio(path string, r io.ReadSeeker) (audioStream, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithoutResampling(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}
}
