package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

const maxSampleSeconds = 2

// pcmSource yields interleaved 16-bit LE PCM at its own rate and layout.
type pcmSource interface {
	io.Reader
	SampleRate() int
	ChannelCount() int
}

// newDecoder detects format by file extension and returns the appropriate decoder.
func newDecoder(f *os.File) (pcmSource, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
}

// loadSample decodes the start of an audio file into mono samples at the
// output rate.
func loadSample(path string) ([]int16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := newDecoder(f)
	if err != nil {
		return nil, err
	}
	samples, err := decodeMono(src, maxSampleSeconds)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("decoding %s: no audio", filepath.Base(path))
	}
	return samples, nil
}

// decodeMono reads at most limit seconds from src, averages channels and
// resamples to the output rate.
func decodeMono(src pcmSource, limit float64) ([]int16, error) {
	channels := src.ChannelCount()
	rate := src.SampleRate()
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("invalid stream layout: %d channels at %d Hz", channels, rate)
	}

	maxFrames := int(limit * float64(rate))
	mono := make([]int16, 0, maxFrames)
	buf := make([]byte, 4096*channels*2)
	var carry []byte
	for len(mono) < maxFrames {
		n, err := src.Read(buf)
		data := append(carry, buf[:n]...)
		frameBytes := channels * 2
		whole := len(data) / frameBytes * frameBytes
		for off := 0; off < whole && len(mono) < maxFrames; off += frameBytes {
			var sum int
			for ch := range channels {
				sum += int(int16(binary.LittleEndian.Uint16(data[off+ch*2:])))
			}
			mono = append(mono, int16(sum/channels))
		}
		carry = append(carry[:0], data[whole:]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return resample(mono, rate, sampleRate), nil
}

// resample converts mono samples between rates by linear interpolation.
func resample(in []int16, from, to int) []int16 {
	if from == to || len(in) == 0 {
		return in
	}
	n := int(int64(len(in)) * int64(to) / int64(from))
	out := make([]int16, n)
	step := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * step
		lo := int(pos)
		if lo >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := pos - float64(lo)
		a, b := float64(in[lo]), float64(in[lo+1])
		out[i] = int16(a + (b-a)*frac)
	}
	return out
}

func clampSample(s int) int16 {
	if s > 32767 {
		return 32767
	} else if s < -32768 {
		return -32768
	}
	return int16(s)
}

// --- MP3 decoder ---

type mp3Decoder struct {
	dec *mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) SampleRate() int            { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int          { return 2 }

// --- WAV decoder ---

type wavDecoder struct {
	file        io.Reader
	sampleRate  int
	channels    int
	srcBitDepth int
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}

	// FwdToPCM positions the reader at the start of PCM data
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported WAV bit depth: %d", bitDepth)
	}

	return &wavDecoder{
		file:        io.LimitReader(f, dec.PCMLen()),
		sampleRate:  int(dec.SampleRate),
		channels:    int(dec.NumChans),
		srcBitDepth: bitDepth,
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	srcBytesPerSample := d.srcBitDepth / 8
	// Each output sample is 2 bytes (16-bit)
	numOutputSamples := len(p) / 2
	if numOutputSamples == 0 {
		return 0, nil
	}
	srcBytes := make([]byte, numOutputSamples*srcBytesPerSample)
	n, err := io.ReadFull(d.file, srcBytes)
	samplesRead := n / srcBytesPerSample
	if samplesRead == 0 {
		return 0, io.EOF
	}

	for i := range samplesRead {
		var sample int
		off := i * srcBytesPerSample
		switch d.srcBitDepth {
		case 8:
			// 8-bit WAV is unsigned
			sample = (int(srcBytes[off]) - 128) << 8
		case 16:
			sample = int(int16(binary.LittleEndian.Uint16(srcBytes[off:])))
		case 24:
			s := int32(srcBytes[off]) | int32(srcBytes[off+1])<<8 | int32(srcBytes[off+2])<<16
			if s&0x800000 != 0 {
				s |= ^0xFFFFFF // sign extend
			}
			sample = int(s >> 8)
		case 32:
			sample = int(int32(binary.LittleEndian.Uint32(srcBytes[off:])) >> 16)
		}
		binary.LittleEndian.PutUint16(p[i*2:], uint16(clampSample(sample)))
	}

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return samplesRead * 2, err
}

func (d *wavDecoder) SampleRate() int   { return d.sampleRate }
func (d *wavDecoder) ChannelCount() int { return d.channels }

// --- FLAC decoder ---

type flacDecoder struct {
	stream     *flac.Stream
	buf        []byte
	sampleRate int
	channels   int
	bps        int
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}

	info := stream.Info
	return &flacDecoder{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bps:        int(info.BitsPerSample),
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	// Drain buffered data first
	if len(d.buf) > 0 {
		n := copy(p, d.buf)
		d.buf = d.buf[n:]
		return n, nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	nSamples := int(frame.Subframes[0].NSamples)
	raw := make([]byte, nSamples*d.channels*2)
	for i := range nSamples {
		for ch := range d.channels {
			sample := int(frame.Subframes[ch].Samples[i])
			switch {
			case d.bps > 16:
				sample >>= (d.bps - 16)
			case d.bps < 16:
				sample <<= (16 - d.bps)
			}
			offset := (i*d.channels + ch) * 2
			binary.LittleEndian.PutUint16(raw[offset:], uint16(clampSample(sample)))
		}
	}

	written := copy(p, raw)
	if written < len(raw) {
		d.buf = raw[written:]
	}
	return written, nil
}

func (d *flacDecoder) SampleRate() int   { return d.sampleRate }
func (d *flacDecoder) ChannelCount() int { return d.channels }

// --- OGG Vorbis decoder ---

type oggDecoder struct {
	reader *oggvorbis.Reader
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggDecoder{reader: reader}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	// Read float32 samples (interleaved)
	samples := make([]float32, len(p)/2)
	n, err := d.reader.Read(samples)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := range n {
		s := max(-1, min(1, samples[i]))
		binary.LittleEndian.PutUint16(p[i*2:], uint16(int16(s*32767)))
	}
	return n * 2, err
}

func (d *oggDecoder) SampleRate() int   { return d.reader.SampleRate() }
func (d *oggDecoder) ChannelCount() int { return d.reader.Channels() }
