// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/swarantara/audio"
)

// createWAVFile builds a canonical PCM file with interleaved 16-bit samples.
func createWAVFile(sampleRate, channels int, samples []int16) []byte {
	out := make([]byte, HeaderSize+len(samples)*2)
	PutHeader(out, Header{
		SampleRate:  sampleRate,
		NumChannels: channels,
		BitDepth:    16,
		DataSize:    uint32(len(samples) * 2),
	})
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[HeaderSize+i*2:], uint16(s))
	}
	return out
}

// onlyReader hides the Seek method of its reader.
type onlyReader struct{ r io.Reader }

func (o onlyReader) Read(p []byte) (int, error) { return o.r.Read(p) }

func TestDecoder_Mono(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768}
	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 8000 || src.Channels() != 1 {
		t.Fatalf("got %d Hz %d ch, want 8000 Hz 1 ch", src.SampleRate(), src.Channels())
	}

	buf, err := audio.ReadBuffer(src)
	if err != nil {
		t.Fatalf("ReadBuffer() error = %v", err)
	}
	if buf.NumFrames() != len(samples) {
		t.Fatalf("frames = %d, want %d", buf.NumFrames(), len(samples))
	}

	for i, s := range samples {
		want := float32(s) / 32768
		if math.Abs(float64(buf.Data[0][i]-want)) > 1e-6 {
			t.Errorf("sample[%d] = %v, want %v", i, buf.Data[0][i], want)
		}
	}
}

func TestDecoder_StereoFromPlainReader(t *testing.T) {
	t.Parallel()

	samples := []int16{100, -100, 200, -200, 300, -300}
	src, err := Decoder{}.Decode(onlyReader{bytes.NewReader(createWAVFile(44100, 2, samples))})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadBuffer(src)
	if err != nil {
		t.Fatalf("ReadBuffer() error = %v", err)
	}
	if buf.NumChannels() != 2 || buf.NumFrames() != 3 {
		t.Fatalf("got %d x %d, want 2 x 3", buf.NumChannels(), buf.NumFrames())
	}
	if buf.Data[1][2] >= 0 {
		t.Errorf("right channel sample = %v, want negative", buf.Data[1][2])
	}
}

func TestDecoder_EncodeRoundTrip(t *testing.T) {
	t.Parallel()

	in := &audio.Buffer{SampleRate: 16000, Data: [][]float32{{0.1, -0.2, 0.3, -0.4, 0.5}}}
	out, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got, err := audio.ReadBuffer(src)
	if err != nil {
		t.Fatalf("ReadBuffer() error = %v", err)
	}

	for i, want := range in.Data[0] {
		if diff := math.Abs(float64(got.Data[0][i] - want)); diff > 2.0/32768 {
			t.Errorf("sample[%d] = %v, want ≈%v", i, got.Data[0][i], want)
		}
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("NOT A WAV FILE DATA AT ALL, REALLY"))); !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode(garbage) error = %v, want ErrNotWavFile", err)
	}

	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode(empty) error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_Sniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   bool
	}{
		{"RIFF\x10\x00\x00\x00WAVEfmt ", true},
		{"RIFF\x10\x00\x00\x00AVI ", false},
		{"OggS", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := (Decoder{}).Sniff([]byte(tt.header)); got != tt.want {
			t.Errorf("Sniff(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v, depth int
		want     float32
	}{
		{128, 8, 0},
		{0, 8, -1},
		{-32768, 16, -1},
		{16384, 16, 0.5},
		{-8388608, 24, -1},
		{1 << 30, 32, 0.5},
	}

	for _, tt := range tests {
		if got := normalize(tt.v, tt.depth); got != tt.want {
			t.Errorf("normalize(%d, %d) = %v, want %v", tt.v, tt.depth, got, tt.want)
		}
	}
}
