package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/starfall/config"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestDisabledManagerCountsOnly(t *testing.T) {
	m := NewManager(config.AudioConfig{Enabled: false, SampleRate: 44100, Volume: 1}, nil)

	assert.NoError(t, m.Init())
	m.Play(SoundShot)
	m.Play(SoundShot)
	m.Play(Sound(99))
	m.Close()

	assert.Equal(t, 2, m.Played(SoundShot))
	assert.Equal(t, 0, m.Played(SoundExplosion))
	assert.Equal(t, 0, m.Played(Sound(99)))
}

func TestEffectsHaveFiniteLength(t *testing.T) {
	m := NewManager(config.AudioConfig{SampleRate: 1000, Volume: 1}, nil)

	tests := []struct {
		sound Sound
		want  int
	}{
		{SoundShot, 60},
		{SoundExplosion, 350},
		{SoundHit, 200},
		{SoundRescue, 180},
		{SoundWaveClear, 480},
	}
	for _, tt := range tests {
		t.Run(tt.sound.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, drain(m.build(tt.sound)))
		})
	}
}

func TestDecayFadesToSilence(t *testing.T) {
	rate := beep.SampleRate(100)
	s := newDecay(newOscillator(0, 0, 1e9, WaveSquare, rate), 1e9, rate)

	buf := make([][2]float64, 100)
	n, ok := s.Stream(buf)

	assert.True(t, ok)
	assert.Equal(t, 100, n)
	assert.InDelta(t, 1.0, buf[0][0], 1e-9)
	assert.InDelta(t, 0.01, buf[99][0], 1e-9)
}

func TestGainZeroIsSilent(t *testing.T) {
	rate := beep.SampleRate(100)
	s := gain(newOscillator(0, 0, 1e8, WaveSquare, rate), 0)

	buf := make([][2]float64, 10)
	s.Stream(buf)
	for _, sample := range buf {
		assert.Zero(t, sample[0])
	}
}
