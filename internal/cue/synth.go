package cue

import "math"

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
	frameBytes   = 8
)

func makeBuf(n int) []byte { return make([]byte, n*frameBytes) }

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < ChannelCount; c++ {
		o := i*frameBytes + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat is a gentle saturator that never hard clips.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns the envelope at progress in [0,1]. attack, decay and release
// are fractions of the total duration.
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

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// genSparkle is a short bright noise tick for bursts and trails.
func genSparkle(seed uint64, dur float64) []byte {
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	hp := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		raw := lcg(&seed)
		hp = hp*0.4 + raw*0.6
		t := float64(i) / SampleRate
		ping := math.Sin(2*math.Pi*(3200-1400*p)*t) * 0.12
		env := math.Exp(-p * 9)
		putStereoF32(buf, i, softSat((raw-hp)*0.45*env+ping*env))
	}
	return buf
}

// genExplosion is a sub boom under a bandpassed noise body.
func genExplosion(seed uint64) []byte {
	const dur = 0.6
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	lp1, lp2, rumLP := 0.0, 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subFreq := 120 * math.Pow(24.0/120.0, p*2.2)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*5) * 0.6

		crack := 0.0
		if p < 0.03 {
			crack = lcg(&seed) * (1 - p/0.03) * 0.7
		}

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*5) * 0.4

		rumLP = rumLP*0.95 + lcg(&seed)*0.05
		rumble := rumLP * math.Exp(-p*2.2) * 0.18

		putStereoF32(buf, i, softSat((sub+crack+body+rumble)*0.86))
	}
	return buf
}

// genChime is a rising FM bell arpeggio.
func genChime(freqs []float64, noteSec, tailSec, modRatio float64) []byte {
	noteLen := int(noteSec * SampleRate)
	total := len(freqs)*noteLen + int(tailSec*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, modRatio, 4.0*env) * env * 0.3
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genHum is a slow swelling drone for the aura.
func genHum() []byte {
	n := int(0.7 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.3, 0.2, 0.6, 0.4)
		wob := 1 + 0.01*math.Sin(2*math.Pi*5*t)
		s := fm(t, 220*wob, 0.5, 1.2) * env * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
