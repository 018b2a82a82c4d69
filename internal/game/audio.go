package game

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundWhooshForward SoundKind = iota
	SoundWhooshBack
	SoundReset
)

// AudioSystem plays the city ambience and row-recycle effects. A nil
// *AudioSystem is silent.
type AudioSystem struct {
	ctx     *oto.Context
	ready   chan struct{}
	ambient oto.Player
	volume  float64
	active  int32
}

// maxVoices limits simultaneous effects to avoid clipping when rows
// recycle on consecutive frames.
const maxVoices = 3

// InitAudio opens the audio device.
func InitAudio(volume float64) (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &AudioSystem{ctx: ctx, ready: ready, volume: clampF(volume, 0, 1)}, nil
}

func (a *AudioSystem) isReady() bool {
	if a == nil {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// StartAmbience waits for the device and loops the traffic hum until
// Close.
func (a *AudioSystem) StartAmbience() {
	if a == nil || a.ambient != nil {
		return
	}
	select {
	case <-a.ready:
	case <-time.After(time.Second):
		return
	}
	player := a.ctx.NewPlayer(&humReader{seed: uint64(time.Now().UnixNano())})
	player.SetVolume(a.volume * 0.35)
	a.ambient = player
	player.Play()
}

// Play plays a procedurally generated effect.
func (a *AudioSystem) Play(kind SoundKind) {
	if !a.isReady() {
		return
	}
	if atomic.LoadInt32(&a.active) >= maxVoices {
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	atomic.AddInt32(&a.active, 1)
	go func() {
		defer atomic.AddInt32(&a.active, -1)
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// Close stops the ambience.
func (a *AudioSystem) Close() {
	if a == nil || a.ambient == nil {
		return
	}
	a.ambient.Close()
	a.ambient = nil
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundWhooshForward:
		return genWhoosh(900, 250, 0x5EED)
	case SoundWhooshBack:
		return genWhoosh(250, 900, 0xBAC4)
	case SoundReset:
		return genReset()
	}
	return nil
}

// genWhoosh is band-limited noise whose one-pole cutoff sweeps from
// fromHz to toHz: the sound of a block passing the camera.
func genWhoosh(fromHz, toHz float64, seed uint64) []byte {
	const dur = 0.35
	n := int(SampleRate * dur)
	buf := makeBuf(n)
	var lp, lp2 float64
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		cutoff := fromHz + (toHz-fromHz)*p
		alpha := 1 - math.Exp(-2*math.Pi*cutoff/SampleRate)
		lp += alpha * (lcg(&seed) - lp)
		lp2 += alpha * (lp - lp2)
		env := adsr(p, 0.3, 0.2, 0.6, 0.5)
		putStereoF32(buf, i, softSat(lp2*env*2.2))
	}
	return buf
}

// genReset is a soft two-note chime played when the city is rebuilt.
func genReset() []byte {
	const dur = 0.5
	n := int(SampleRate * dur)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 523.25
		if p > 0.4 {
			freq = 783.99
		}
		s := math.Sin(2*math.Pi*freq*t) * adsr(p, 0.02, 0.3, 0.4, 0.4) * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// ---- Ambience ------------------------------------------------------------

// humReader streams an endless low city hum: brown noise with a slow
// swell and a faint mains drone.
type humReader struct {
	t     float64
	seed  uint64
	brown float64
	lp    float64
}

func (h *humReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	for i := 0; i < samples; i++ {
		h.brown = clampF(h.brown+lcg(&h.seed)*0.02, -1, 1) * 0.998
		h.lp += 0.05 * (h.brown - h.lp)
		swell := 0.7 + 0.3*math.Sin(2*math.Pi*0.07*h.t)
		drone := math.Sin(2*math.Pi*55*h.t) * 0.05
		putStereoF32(p, i, softSat((h.lp*1.5+drone)*swell))
		h.t += 1.0 / SampleRate
	}
	return samples * 8, nil
}
