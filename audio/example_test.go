// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/internal/audiotest"
)

// Example_captureChain shows the capture path: pick channel 0, resample to
// the recognizer rate and collect the result into a Buffer.
func Example_captureChain() {
	source := audiotest.NewSineSource(48000, 2, 48000, 440.0)

	left, err := audio.NewChannelPicker(source, 0)
	if err != nil {
		fmt.Println(err)
		return
	}

	resampled, err := audio.NewResampler(left, 16000)
	if err != nil {
		fmt.Println(err)
		return
	}

	buf, err := audio.ReadBuffer(resampled)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Channels: %d\n", buf.NumChannels())
	fmt.Printf("Sample rate: %d Hz\n", buf.SampleRate)
	fmt.Printf("Frames: %d\n", buf.NumFrames())
	fmt.Printf("Duration: %v\n", buf.Duration())
	// Output:
	// Channels: 1
	// Sample rate: 16000 Hz
	// Frames: 16000
	// Duration: 1s
}

// Example_registry demonstrates the format registry.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("mock", magicDecoder{magic: "MOCK"})

	format, ok := registry.Detect([]byte("MOCK...."))
	fmt.Println(format, ok)

	_, err := registry.Decode("unknown", nil)
	fmt.Println(err)
	// Output:
	// mock true
	// unknown audio format: "unknown"
}

// Example_validate shows how malformed buffers are reported.
func Example_validate() {
	buf := &audio.Buffer{SampleRate: 16000}
	fmt.Println(buf.Validate())
	// Output:
	// invalid audio buffer: no channels
}
