// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks of the translator.
//
// This package contains:
//   - Source, the streaming interface every decoder returns
//   - Buffer, fully decoded audio held per channel in memory
//   - ChannelPicker, which exposes one channel of a source as mono
//   - Resampler, for sample rate conversion
//   - Registry, which maps format keys to decoders and sniffs containers
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples writes interleaved samples and returns io.EOF once the stream is
// finished. A call may return both n > 0 and io.EOF.
//
// # Buffers
//
// ReadBuffer drains a Source into a Buffer:
//
//	buf, err := audio.ReadBuffer(src)
//	left := buf.Channel(0)
//
// Buffer.Validate reports ErrInvalidAudioBuffer for buffers without channels,
// without a positive sample rate, or with channels of different lengths.
//
// # Capture Chain
//
// Recordings are reduced to channel 0 and resampled before they are encoded:
//
//	left, _ := audio.NewChannelPicker(src, 0)
//	res, _ := audio.NewResampler(left, 16000)
//	buf, _ := audio.ReadBuffer(res)
//
// The resampler uses Catmull-Rom interpolation and computes positions with
// integer arithmetic, so N input frames always yield ceil(N*dst/src) output
// frames.
//
// # Sample Format
//
// Audio samples are float32, nominally in [-1.0, 1.0]. Values outside the range
// are clamped only when they are quantized to integers.
package audio
