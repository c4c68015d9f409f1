// SPDX-License-Identifier: EPL-2.0

// Package wav encodes decoded audio into canonical WAV containers and decodes
// PCM WAV files.
//
// # Encoding
//
// Encode turns an audio.Buffer into the fixed 44-byte-header, mono, 16-bit
// PCM container that the speech-to-text service accepts:
//
//	buf := &audio.Buffer{SampleRate: 16000, Data: [][]float32{samples}}
//	container, err := wav.Encode(buf)
//
// Only channel 0 is encoded. Samples are clamped to [-1, 1] and scaled with
// 32768 below zero and 32767 otherwise. The scaled value is truncated toward
// zero unless WithRounding(utils.RoundNearest) is passed.
//
// Layout of the result (all integers little-endian):
//
//	 0  "RIFF"          4  36+dataSize     8  "WAVE"
//	12  "fmt "         16  16             20  1 (PCM)
//	22  1 (channels)   24  sampleRate     28  sampleRate*2
//	32  2 (align)      34  16 (bits)      36  "data"
//	40  dataSize       44  samples
//
// WriteWAV16 streams already quantized samples with the same header, and
// PutHeader/ParseHeader expose the header on its own.
//
// # Decoding
//
// Decoder uses github.com/go-audio/wav and accepts 8, 16, 24 and 32-bit PCM.
// It returns an audio.Source with samples normalized to [-1, 1).
//
//	src, err := wav.Decoder{}.Decode(file)
//
// # Errors
//
//   - ErrNotWavFile: the input is not RIFF/WAVE
//   - ErrUnsupportedWavLayout: the header is not in canonical form
//   - ErrOnlyPCMSupported: the format tag is not linear PCM
//   - ErrUnsupportedBitDepth: the bit depth is not 8, 16, 24 or 32
//   - ErrDataTooLarge: the data would overflow the 32-bit size fields
package wav
