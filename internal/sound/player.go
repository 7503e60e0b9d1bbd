package sound

import (
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/olivier-w/fluidtype/internal/fluid"
)

// Gain and playback rate per weight class. Heavier drops are louder and lower.
var (
	weightGain = [...]float64{fluid.Light: 0.35, fluid.Mild: 0.6, fluid.Heavy: 0.9}
	weightRate = [...]float64{fluid.Light: 1.25, fluid.Mild: 1.0, fluid.Heavy: 0.8}
)

// Player plays a voice for every impact.
type Player struct {
	mixer     *mixer
	otoPlayer *oto.Player
	title     string
	mu        sync.Mutex
	muted     bool
	closed    bool
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// New opens the audio device. samplePath selects a decoded audio file as the
// impact voice; an empty path uses the built-in plink.
func New(samplePath string) (*Player, error) {
	sample := synthPlink(sampleRate)
	title := "plink"
	if samplePath != "" {
		s, err := loadSample(samplePath)
		if err != nil {
			return nil, err
		}
		sample = s
		title = SampleTitle(samplePath)
	}

	ctx, err := initOto()
	if err != nil {
		return nil, err
	}

	p := &Player{
		mixer: newMixer(sample),
		title: title,
	}
	p.otoPlayer = ctx.NewPlayer(p.mixer)
	p.otoPlayer.SetBufferSize(sampleRate * frameSize / 20)
	p.otoPlayer.Play()
	return p, nil
}

// Play starts a voice for a drop of weight w.
func (p *Player) Play(w fluid.WeightClass) {
	if int(w) >= len(weightGain) {
		w = fluid.Heavy
	}
	p.mixer.trigger(weightGain[w], weightRate[w])
}

// ToggleMute flips the mute state and returns the new value.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	p.mixer.setMuted(p.muted)
	return p.muted
}

// Muted reports whether impacts are silent.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Title names the impact voice.
func (p *Player) Title() string { return p.title }

// Close releases the audio player.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.otoPlayer.Pause()
	p.otoPlayer.Close()
}
