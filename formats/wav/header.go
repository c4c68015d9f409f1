// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// HeaderSize is the length of the canonical RIFF/WAVE header.
const HeaderSize = 44

const (
	fmtChunkSize = 16
	formatPCM    = 1
)

// Header describes a canonical PCM WAV header.
type Header struct {
	SampleRate  int
	NumChannels int
	BitDepth    int
	DataSize    uint32
}

func (h Header) BlockAlign() int { return h.NumChannels * h.BitDepth / 8 }
func (h Header) ByteRate() int   { return h.SampleRate * h.BlockAlign() }

// RIFFSize is the value of the RIFF chunk size field.
func (h Header) RIFFSize() uint32 { return HeaderSize - 8 + h.DataSize }

// headerWriter writes fixed-width little-endian fields at a moving offset.
type headerWriter struct {
	b   []byte
	off int
}

func (w *headerWriter) str(s string) {
	w.off += copy(w.b[w.off:w.off+len(s)], s)
}

func (w *headerWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.b[w.off:], v)
	w.off += 4
}

func (w *headerWriter) u16(v uint16) {
	binary.LittleEndian.PutUint16(w.b[w.off:], v)
	w.off += 2
}

// PutHeader writes h into the first HeaderSize bytes of dst.
// It panics if dst is shorter than HeaderSize.
func PutHeader(dst []byte, h Header) {
	_ = dst[HeaderSize-1]

	w := headerWriter{b: dst}

	// RIFF header (12 bytes)
	w.str("RIFF")
	w.u32(h.RIFFSize())
	w.str("WAVE")

	// fmt chunk (24 bytes)
	w.str("fmt ")
	w.u32(fmtChunkSize)
	w.u16(formatPCM)
	w.u16(uint16(h.NumChannels))
	w.u32(uint32(h.SampleRate))
	w.u32(uint32(h.ByteRate()))
	w.u16(uint16(h.BlockAlign()))
	w.u16(uint16(h.BitDepth))

	// data chunk header (8 bytes)
	w.str("data")
	w.u32(h.DataSize)
}

// ParseHeader reads a canonical 44-byte PCM header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize || !bytes.Equal(b[0:4], []byte("RIFF")) || !bytes.Equal(b[8:12], []byte("WAVE")) {
		return Header{}, ErrNotWavFile
	}
	if !bytes.Equal(b[12:16], []byte("fmt ")) || !bytes.Equal(b[36:40], []byte("data")) {
		return Header{}, ErrUnsupportedWavLayout
	}
	if size := binary.LittleEndian.Uint32(b[16:20]); size != fmtChunkSize {
		return Header{}, fmt.Errorf("%w: fmt chunk size %d", ErrUnsupportedWavLayout, size)
	}
	if format := binary.LittleEndian.Uint16(b[20:22]); format != formatPCM {
		return Header{}, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, format)
	}

	return Header{
		NumChannels: int(binary.LittleEndian.Uint16(b[22:24])),
		SampleRate:  int(binary.LittleEndian.Uint32(b[24:28])),
		BitDepth:    int(binary.LittleEndian.Uint16(b[34:36])),
		DataSize:    binary.LittleEndian.Uint32(b[40:44]),
	}, nil
}
