package sim

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"stepkit/maths"
	"stepkit/rt"
)

const sampleRate = 44100

// sounds plays the UI click/unclick cues through ebiten's audio pipeline.
// The samples are short decaying sine blips generated once at startup.
type sounds struct {
	log     rt.Logger
	ctx     *audio.Context
	click   []byte
	unclick []byte
}

func newSounds(log rt.Logger) *sounds {
	return &sounds{
		log:     log,
		click:   blip(1800, 0.040),
		unclick: blip(1200, 0.050),
	}
}

// blip renders a decaying sine at freq Hz lasting dur seconds as 16-bit
// stereo PCM.
func blip(freq float64, dur float64) []byte {
	n := int(dur * sampleRate)
	buf := bytes.NewBuffer(make([]byte, 0, n*4))
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		env := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*freq*t) * env * env * 0.3 * math.MaxInt16)
		_ = binary.Write(buf, binary.LittleEndian, v) // left
		_ = binary.Write(buf, binary.LittleEndian, v) // right
	}
	return buf.Bytes()
}

func (s *sounds) play(pcm []byte) {
	if s.ctx == nil {
		s.ctx = audio.NewContext(sampleRate)
	}
	p, err := s.ctx.NewPlayer(bytes.NewReader(pcm))
	if err != nil {
		s.log.Warn("audio player unavailable", "err", err)
		return
	}
	p.Play()
}

func (s *sounds) Click(_ maths.Vec3) { s.play(s.click) }

func (s *sounds) Unclick(_ maths.Vec3) { s.play(s.unclick) }
