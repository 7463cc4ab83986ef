// Package cue plays short procedural sounds alongside fx recipes.
package cue

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

type Kind int

const (
	Burst Kind = iota
	Trail
	Ring
	Explosion
	Heal
	Aura
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Burst:
		return "burst"
	case Trail:
		return "trail"
	case Ring:
		return "ring"
	case Explosion:
		return "explosion"
	case Heal:
		return "heal"
	case Aura:
		return "aura"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Generate renders kind as interleaved stereo float32 LE. Equal seeds give
// identical buffers.
func Generate(kind Kind, seed uint64) []byte {
	switch kind {
	case Burst:
		return genSparkle(seed, 0.12)
	case Trail:
		return genSparkle(seed, 0.07)
	case Ring:
		return genChime([]float64{392, 523.25, 659.25}, 0.06, 0.25, 3.5)
	case Explosion:
		return genExplosion(seed)
	case Heal:
		return genChime([]float64{523.25, 659.25, 783.99, 1046.5}, 0.075, 0.18, 2.756)
	case Aura:
		return genHum()
	}
	return nil
}

// maxExplosions caps overlapping explosion cues; more clips the speakers.
const maxExplosions = 2

// Player owns the oto context. A nil *Player plays nothing, so callers need
// no audio checks when initialisation fails.
type Player struct {
	ctx        *oto.Context
	ready      chan struct{}
	volume     atomic.Uint64 // percent
	enabled    atomic.Bool
	explosions atomic.Int32
	variant    atomic.Uint64
	ambient    [numKinds][]byte
}

func NewPlayer(volume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	p := &Player{ctx: ctx, ready: ready}
	p.SetVolume(volume)
	p.enabled.Store(true)
	// Seed-independent cues are rendered once.
	for _, k := range []Kind{Ring, Heal, Aura} {
		p.ambient[k] = Generate(k, 0)
	}
	return p, nil
}

// Switch turns audio on or off. Turning it on with a nil p opens a player
// first, so an app started muted can still be unmuted. If open fails the
// result is nil.
func Switch(p *Player, on bool, volume float64, open func(float64) (*Player, error)) (*Player, error) {
	if on && p == nil {
		np, err := open(volume)
		if err != nil {
			return nil, err
		}
		p = np
	}
	p.SetEnabled(on)
	return p, nil
}

func (p *Player) SetVolume(v float64) {
	if p == nil {
		return
	}
	p.volume.Store(uint64(clampF(v, 0, 1)*100 + 0.5))
}

func (p *Player) SetEnabled(on bool) {
	if p == nil {
		return
	}
	p.enabled.Store(on)
}

func (p *Player) Enabled() bool { return p != nil && p.enabled.Load() }

// Play starts kind in the background. It never blocks the frame loop and
// silently skips while the device is not ready.
func (p *Player) Play(kind Kind) {
	if !p.Enabled() || kind < 0 || kind >= numKinds {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	if kind == Explosion {
		if p.explosions.Add(1) > maxExplosions {
			p.explosions.Add(-1)
			return
		}
	}
	samples := p.ambient[kind]
	if samples == nil {
		samples = Generate(kind, p.variant.Add(1)^uint64(time.Now().UnixNano()))
	}
	vol := float64(p.volume.Load()) / 100
	go func() {
		if kind == Explosion {
			defer p.explosions.Add(-1)
		}
		player := p.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(vol)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
