// Package audio synthesises launch and detonation sounds and plays them
// through the system speaker.
package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/fireworks/config"
)

const (
	launchDuration = 600 * time.Millisecond
	burstDuration  = 900 * time.Millisecond

	// Cap on sounds started per PlayBursts/PlayLaunches call
	maxVoicesPerCall = 4
)

// SoundManager plays synthesised effects through one beep mixer.
// All methods are safe to call before Initialize or after Cleanup; they do nothing.
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	master      *beep.Ctrl
	rng         *rand.Rand
	muted       bool
	initialized bool
}

// NewSoundManager creates a sound manager from the audio config section.
func NewSoundManager(cfg config.AudioConfig, rng *rand.Rand) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		mixer:  mixer,
		master: &beep.Ctrl{Streamer: mixer},
		rng:    rng,
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup silences and drops all playing sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	sm.master.Paused = true
	speaker.Unlock()

	sm.initialized = false
}

// ToggleMute pauses or resumes all output and returns the new muted state.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.initialized {
		speaker.Lock()
		sm.master.Paused = sm.muted
		speaker.Unlock()
	}
	return sm.muted
}

// Muted reports whether output is muted.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// PlayLaunch plays a rising whistle. height in [0, 1] raises the final pitch.
func (sm *SoundManager) PlayLaunch(height float64) {
	sm.PlayLaunches([]float64{height})
}

// PlayLaunches plays one whistle per height, up to a small cap.
func (sm *SoundManager) PlayLaunches(heights []float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	var voices []beep.Streamer
	for i, h := range heights {
		if i >= maxVoicesPerCall {
			break
		}
		end := 900 + 900*clamp01(h) + sm.rng.Float64()*150
		voices = append(voices, newVolume(NewWhistle(sm.rate, 300, end, launchDuration), sm.volume*0.25))
	}
	sm.add(voices...)
}

// PlayBurst plays a crackle. size in [0, 1] scales its loudness.
func (sm *SoundManager) PlayBurst(size float64) {
	sm.PlayBursts([]float64{size})
}

// PlayBursts plays one crackle per size, up to a small cap.
func (sm *SoundManager) PlayBursts(sizes []float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	var voices []beep.Streamer
	for i, s := range sizes {
		if i >= maxVoicesPerCall {
			break
		}
		// Each crackle gets its own source: the mixer streams on the speaker goroutine
		rng := rand.New(rand.NewSource(sm.rng.Int63()))
		vol := sm.volume * (0.3 + 0.7*clamp01(s))
		voices = append(voices, newVolume(NewCrackle(sm.rate, burstDuration, rng), vol))
	}
	sm.add(voices...)
}

// add must be called with sm.mu held.
func (sm *SoundManager) add(voices ...beep.Streamer) {
	if len(voices) == 0 {
		return
	}
	speaker.Lock()
	sm.mixer.Add(voices...)
	speaker.Unlock()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
