// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"testing"
)

func TestPutHeader_ParseHeader(t *testing.T) {
	t.Parallel()

	tests := []Header{
		{SampleRate: 16000, NumChannels: 1, BitDepth: 16, DataSize: 6},
		{SampleRate: 44100, NumChannels: 2, BitDepth: 16, DataSize: 0},
		{SampleRate: 48000, NumChannels: 2, BitDepth: 24, DataSize: 1 << 20},
	}

	for _, h := range tests {
		b := make([]byte, HeaderSize)
		PutHeader(b, h)

		got, err := ParseHeader(b)
		if err != nil {
			t.Fatalf("ParseHeader() error = %v", err)
		}
		if got != h {
			t.Errorf("ParseHeader() = %+v, want %+v", got, h)
		}
	}
}

func TestHeader_DerivedFields(t *testing.T) {
	t.Parallel()

	h := Header{SampleRate: 16000, NumChannels: 1, BitDepth: 16, DataSize: 6}

	if h.BlockAlign() != 2 {
		t.Errorf("BlockAlign() = %d, want 2", h.BlockAlign())
	}
	if h.ByteRate() != 32000 {
		t.Errorf("ByteRate() = %d, want 32000", h.ByteRate())
	}
	if h.RIFFSize() != 42 {
		t.Errorf("RIFFSize() = %d, want 42", h.RIFFSize())
	}
}

func TestPutHeader_ShortBufferPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("PutHeader() on a short buffer did not panic")
		}
	}()

	PutHeader(make([]byte, HeaderSize-1), Header{})
}

func TestParseHeader_Errors(t *testing.T) {
	t.Parallel()

	valid := make([]byte, HeaderSize)
	PutHeader(valid, Header{SampleRate: 8000, NumChannels: 1, BitDepth: 16})

	mutate := func(off int, v string) []byte {
		b := append([]byte(nil), valid...)
		copy(b[off:], v)
		return b
	}

	tests := []struct {
		name string
		in   []byte
		want error
	}{
		{"short", valid[:20], ErrNotWavFile},
		{"bad riff", mutate(0, "RIFX"), ErrNotWavFile},
		{"bad wave", mutate(8, "AVI "), ErrNotWavFile},
		{"bad fmt", mutate(12, "junk"), ErrUnsupportedWavLayout},
		{"bad data", mutate(36, "LIST"), ErrUnsupportedWavLayout},
		{"extensible fmt", mutate(16, "\x28\x00"), ErrUnsupportedWavLayout},
		{"float format", mutate(20, "\x03\x00"), ErrOnlyPCMSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseHeader(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("ParseHeader() error = %v, want %v", err, tt.want)
			}
		})
	}
}
