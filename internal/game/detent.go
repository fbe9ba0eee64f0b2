package game

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/looping-carousel/internal/config"
)

// detent plays a short click whenever a new card settles under the centre of
// the viewport.
type detent struct {
	format beep.Format
	sample *beep.Buffer
	ready  bool
}

// newDetent prepares the tick sample and opens the speaker. path may name a
// wav, mp3 or flac file; "" selects the built-in tone.
func newDetent(path string) (*detent, error) {
	d := prepareDetent(path)

	bufferSize := d.format.SampleRate.N(time.Second / 20)
	if err := speaker.Init(d.format.SampleRate, bufferSize); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	d.ready = true
	return d, nil
}

// prepareDetent fills the tick sample without touching the speaker. A custom
// sample that cannot be loaded falls back to the built-in tone.
func prepareDetent(path string) *detent {
	format := beep.Format{
		SampleRate:  beep.SampleRate(config.TickSampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	d := &detent{format: format, sample: beep.NewBuffer(format)}

	if path != "" {
		err := d.loadSample(path)
		if err == nil {
			return d
		}
		log.Printf("Tick sound %s: %v, using built-in tone", path, err)
		d.sample = beep.NewBuffer(format)
	}
	d.sample.Append(toneStreamer(format.SampleRate, config.TickFrequency,
		format.SampleRate.N(config.TickLengthMs*time.Millisecond), config.TickVolume))
	return d
}

func (d *detent) loadSample(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return errors.New("unsupported tick sound type: " + filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != d.format.SampleRate {
		s = beep.Resample(4, format.SampleRate, d.format.SampleRate, s)
	}
	s = &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(config.TickVolume),
	}
	// Ticks are short; anything longer is cut.
	d.sample.Append(beep.Take(d.format.SampleRate.N(250*time.Millisecond), s))
	return nil
}

func (d *detent) play() {
	if d == nil || !d.ready || d.sample.Len() == 0 {
		return
	}
	speaker.Play(d.sample.Streamer(0, d.sample.Len()))
}

// toneStreamer produces n samples of a sine at freq with a linear fade out.
func toneStreamer(sr beep.SampleRate, freq float64, n int, volume float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			env := 1 - float64(pos)/float64(n)
			v := volume * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i] = [2]float64{v, v}
			pos++
		}
		return i, true
	})
}
