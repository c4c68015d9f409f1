// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 recordings into an audio.Source using
// github.com/hajimehoshi/go-mp3.
//
// The decoder always reports two interleaved channels. Callers that feed the
// translation pipeline pick channel 0 and resample it:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	mono, _ := audio.NewChannelPicker(src, 0)
//	pcm, _ := audio.NewResampler(mono, 16000)
package mp3
