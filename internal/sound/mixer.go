package sound

import (
	"encoding/binary"
	"math"
	"sync"
)

const (
	sampleRate   = 48000
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes
	frameSize    = channelCount * bitDepth
	maxVoices    = 8
)

type voice struct {
	pos    float64
	step   float64
	gain   float64
	active bool
}

// mixer sums up to maxVoices overlapping copies of one mono sample into a
// stereo s16le stream. Read is called from the audio device goroutine.
type mixer struct {
	mu     sync.Mutex
	sample []int16
	voices [maxVoices]voice
	next   int // circular overwrite index when every voice is busy
	muted  bool
}

func newMixer(sample []int16) *mixer {
	return &mixer{sample: sample}
}

// trigger starts a voice. step is the playback rate relative to the sample.
func (m *mixer) trigger(gain, step float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.muted || len(m.sample) == 0 {
		return
	}
	idx := -1
	for i := range m.voices {
		if !m.voices[i].active {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = m.next
		m.next = (m.next + 1) % maxVoices
	}
	m.voices[idx] = voice{step: step, gain: gain, active: true}
}

func (m *mixer) setMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	if muted {
		for i := range m.voices {
			m.voices[i].active = false
		}
	}
}

func (m *mixer) activeVoices() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, v := range m.voices {
		if v.active {
			n++
		}
	}
	return n
}

// Read fills p with whole stereo frames. The stream never ends; silence is
// written while no voice plays.
func (m *mixer) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frames := len(p) / frameSize
	last := float64(len(m.sample) - 1)
	for f := range frames {
		var sum float64
		for i := range m.voices {
			v := &m.voices[i]
			if !v.active {
				continue
			}
			if v.pos > last {
				v.active = false
				continue
			}
			lo := int(v.pos)
			frac := v.pos - float64(lo)
			s := float64(m.sample[lo])
			if lo+1 < len(m.sample) {
				s += (float64(m.sample[lo+1]) - s) * frac
			}
			sum += s * v.gain
			v.pos += v.step
		}
		out := int16(math.Max(-32768, math.Min(32767, sum)))
		base := f * frameSize
		for ch := range channelCount {
			binary.LittleEndian.PutUint16(p[base+ch*bitDepth:], uint16(out))
		}
	}
	return frames * frameSize, nil
}
