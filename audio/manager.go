package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/config"
)

// Sound identifies a gameplay effect
type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
	SoundHit
	SoundRescue
	SoundWaveClear
	soundCount
)

var soundNames = [soundCount]string{"shot", "explosion", "hit", "rescue", "wave_clear"}

func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

// Manager plays one-shot effects through a shared mixer
// A disabled or uninitialized manager only counts requests
type Manager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	initialized bool
	mixer       *beep.Mixer
	played      [soundCount]int
	log         *zap.Logger
}

func NewManager(cfg config.AudioConfig, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		rate:    beep.SampleRate(cfg.SampleRate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		mixer:   &beep.Mixer{},
		log:     log,
	}
}

// Init opens the speaker; failure leaves the game silent but running
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || m.initialized {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(50*time.Millisecond)); err != nil {
		m.enabled = false
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.rate)))
	return nil
}

// Play mixes the effect in; it never blocks the frame loop on the device
func (m *Manager) Play(s Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s < 0 || s >= soundCount {
		return
	}
	m.played[s]++
	if !m.initialized {
		return
	}

	st := m.build(s)
	speaker.Lock()
	m.mixer.Add(st)
	speaker.Unlock()
}

// Played returns how often an effect was requested
func (m *Manager) Played(s Sound) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s < 0 || s >= soundCount {
		return 0
	}
	return m.played[s]
}

// Close silences the mixer and releases the device
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.initialized = false
}

// build synthesizes the streamer for an effect
func (m *Manager) build(s Sound) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundShot:
		d := 60 * time.Millisecond
		st = newDecay(newOscillator(1200, -9000, d, WaveSquare, m.rate), d, m.rate)
	case SoundExplosion:
		d := 350 * time.Millisecond
		st = newDecay(newOscillator(0, 0, d, WaveNoise, m.rate), d, m.rate)
	case SoundHit:
		d := 200 * time.Millisecond
		st = newDecay(newOscillator(160, -300, d, WaveSaw, m.rate), d, m.rate)
	case SoundRescue:
		d := 90 * time.Millisecond
		st = beep.Seq(
			newDecay(newOscillator(660, 0, d, WaveSine, m.rate), d, m.rate),
			newDecay(newOscillator(990, 0, d, WaveSine, m.rate), d, m.rate),
		)
	case SoundWaveClear:
		d := 120 * time.Millisecond
		st = beep.Seq(
			newOscillator(523, 0, d, WaveSquare, m.rate),
			newOscillator(659, 0, d, WaveSquare, m.rate),
			newDecay(newOscillator(784, 0, 2*d, WaveSquare, m.rate), 2*d, m.rate),
		)
	}
	return gain(st, m.volume*0.5)
}
