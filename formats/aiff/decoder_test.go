// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/swarantara/audio"
)

// fakePCM serves ints up to max values per call.
type fakePCM struct {
	samples []int
	off     int
	max     int
	err     error
}

func (f *fakePCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.off >= len(f.samples) {
		return 0, nil
	}

	dst := buf.Data
	if f.max > 0 && len(dst) > f.max {
		dst = dst[:f.max]
	}
	n := copy(dst, f.samples[f.off:])
	f.off += n

	return n, nil
}

func newTestSource(f *fakePCM, channels, bitDepth int) *source {
	return &source{
		dec:        f,
		format:     &goaudio.Format{NumChannels: channels, SampleRate: 8000},
		sampleRate: 8000,
		channels:   channels,
		scale:      fullScale(bitDepth),
	}
}

func TestFullScale(t *testing.T) {
	t.Parallel()

	tests := map[int]float32{8: 128, 16: 32768, 24: 8388608, 32: 2147483648}
	for depth, want := range tests {
		if got := fullScale(depth); got != want {
			t.Errorf("fullScale(%d) = %v, want %v", depth, got, want)
		}
	}
}

func TestSource_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		in    []int
		want  []float32
	}{
		{8, []int{-128, 64, 0}, []float32{-1, 0.5, 0}},
		{16, []int{-32768, 16384, -8192}, []float32{-1, 0.5, -0.25}},
		{24, []int{-8388608, 4194304}, []float32{-1, 0.5}},
	}

	for _, tt := range tests {
		src := newTestSource(&fakePCM{samples: tt.in}, 1, tt.depth)
		dst := make([]float32, len(tt.in))

		n, err := src.ReadSamples(dst)
		if err != nil {
			t.Fatalf("%d-bit ReadSamples() error = %v", tt.depth, err)
		}
		if n != len(tt.want) {
			t.Fatalf("%d-bit ReadSamples() n = %d, want %d", tt.depth, n, len(tt.want))
		}
		for i := range tt.want {
			if dst[i] != tt.want[i] {
				t.Errorf("%d-bit dst[%d] = %v, want %v", tt.depth, i, dst[i], tt.want[i])
			}
		}
	}
}

func TestSource_ShortReadIsEOF(t *testing.T) {
	t.Parallel()

	src := newTestSource(&fakePCM{samples: []int{1, 2, 3}}, 1, 16)

	n, err := src.ReadSamples(make([]float32, 8))
	if n != 3 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (3, EOF)", n, err)
	}

	n, err = src.ReadSamples(make([]float32, 8))
	if n != 0 || err != io.EOF {
		t.Errorf("drained ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReusesBuffer(t *testing.T) {
	t.Parallel()

	src := newTestSource(&fakePCM{samples: make([]int, 100)}, 2, 16)
	dst := make([]float32, 20)

	if _, err := src.ReadSamples(dst); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	first := src.intBuf

	if _, err := src.ReadSamples(dst[:10]); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if src.intBuf != first {
		t.Error("smaller read reallocated the int buffer")
	}
	if src.BufSize() != 20 {
		t.Errorf("BufSize() = %d, want 20", src.BufSize())
	}
}

func TestSource_ErrorWrapped(t *testing.T) {
	t.Parallel()

	src := newTestSource(&fakePCM{err: io.ErrUnexpectedEOF}, 1, 16)

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range [][]byte{nil, []byte("This is not AIFF data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(in)); !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("Decode(%q) error = %v, want ErrNotAiffFile", in, err)
		}
	}
}

func TestDecoder_Sniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   bool
	}{
		{"FORM\x00\x00\x00\x00AIFF", true},
		{"FORM\x00\x00\x00\x00AIFC", true},
		{"FORM\x00\x00\x00\x008SVX", false},
		{"RIFF\x00\x00\x00\x00WAVE", false},
		{"FORM", false},
	}

	for _, tt := range tests {
		if got := (Decoder{}).Sniff([]byte(tt.header)); got != tt.want {
			t.Errorf("Sniff(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	ints := []int{0, 8192, -8192, 16384, -16384, 32767, -32768, 0}
	enc := goaiff.NewEncoder(f, 22050, 16, 1)
	if err := enc.Write(&goaudio.IntBuffer{
		Data:           ints,
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 22050},
		SourceBitDepth: 16,
	}); err != nil {
		t.Fatalf("encoder Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("encoder Close() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !(Decoder{}).Sniff(data[:audio.SniffLen]) {
		t.Error("Sniff() rejected an encoded AIFF header")
	}

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 22050 || src.Channels() != 1 {
		t.Fatalf("got %d Hz %d ch, want 22050 Hz 1 ch", src.SampleRate(), src.Channels())
	}

	buf, err := audio.ReadBuffer(src)
	if err != nil {
		t.Fatalf("ReadBuffer() error = %v", err)
	}
	if buf.NumFrames() != len(ints) {
		t.Fatalf("frames = %d, want %d", buf.NumFrames(), len(ints))
	}
	for i, v := range ints {
		if want := float32(v) / 32768; buf.Data[0][i] != want {
			t.Errorf("sample[%d] = %v, want %v", i, buf.Data[0][i], want)
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	f := &fakePCM{samples: make([]int, 44100)}
	src := newTestSource(f, 2, 16)
	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		f.off = 0
		_, _ = src.ReadSamples(dst)
	}
}
