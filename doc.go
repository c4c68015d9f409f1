// SPDX-License-Identifier: EPL-2.0

// Package swarantara turns recorded speech into the canonical container the
// speech-to-text service accepts, and hosts the helpers the translator
// binary builds on.
//
// A capture is reduced to channel 0, resampled to the service rate when
// needed, and encoded as a 44-byte-header, 16-bit, mono PCM WAV:
//
//	src, format, err := swarantara.Decode(swarantara.NewRegistry(), f)
//	if err != nil {
//	    return err
//	}
//	container, err := swarantara.EncodeSource(src, 16000)
//
// # Formats
//
// NewRegistry knows WAV, AIFF, Ogg Vorbis and MP3. Decode sniffs the first
// bytes of the stream to choose one. The encoder side only ever emits WAV;
// see package formats/wav.
//
// # Pipeline
//
// The speech-to-speech state machine lives in internal/pipeline. It owns one
// recording at a time, encodes it with formats/wav and then runs
// transcription, translation and synthesis strictly in that order.
package swarantara
