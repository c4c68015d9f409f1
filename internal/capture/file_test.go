// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ik5/swarantara"
	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/formats/wav"
	"github.com/ik5/swarantara/internal/pipeline"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeWAV(t *testing.T, rate int, samples []int16) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, rate, samples); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileRecorder_StartStop(t *testing.T) {
	t.Parallel()

	path := writeWAV(t, 8000, []int16{0, 16384, -16384, 32767})
	rec := NewFileRecorder(path, nil, 0, quietLogger())

	r, err := rec.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	buf, err := r.Stop()
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if buf.SampleRate != 8000 || buf.NumChannels() != 1 || buf.NumFrames() != 4 {
		t.Fatalf("buffer = %d Hz %d ch %d frames", buf.SampleRate, buf.NumChannels(), buf.NumFrames())
	}
	if buf.Data[0][1] != 0.5 || buf.Data[0][2] != -0.5 {
		t.Errorf("samples = %v", buf.Data[0])
	}

	if _, err := r.Stop(); !errors.Is(err, ErrAlreadyStopped) {
		t.Errorf("second Stop() error = %v, want ErrAlreadyStopped", err)
	}
}

func TestFileRecorder_MaxDuration(t *testing.T) {
	t.Parallel()

	path := writeWAV(t, 1000, make([]int16, 2500))
	rec := NewFileRecorder(path, swarantara.NewRegistry(), 2*time.Second, quietLogger())

	r, err := rec.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	buf, err := r.Stop()
	if err != nil {
		t.Fatal(err)
	}
	if buf.NumFrames() != 2000 {
		t.Errorf("frames = %d, want 2000", buf.NumFrames())
	}
}

func TestFileRecorder_Errors(t *testing.T) {
	t.Parallel()

	missing := NewFileRecorder(filepath.Join(t.TempDir(), "nope.wav"), nil, 0, quietLogger())
	if _, err := missing.Start(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}

	junk := filepath.Join(t.TempDir(), "junk.bin")
	if err := os.WriteFile(junk, []byte("definitely not audio"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileRecorder(junk, nil, 0, quietLogger()).Start(context.Background()); !errors.Is(err, swarantara.ErrUnrecognizedFormat) {
		t.Errorf("junk file error = %v, want ErrUnrecognizedFormat", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := writeWAV(t, 8000, []int16{1})
	if _, err := NewFileRecorder(path, nil, 0, quietLogger()).Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled Start() error = %v, want context.Canceled", err)
	}
}

func TestTrim(t *testing.T) {
	t.Parallel()

	buf := &audio.Buffer{SampleRate: 10, Data: [][]float32{make([]float32, 25), make([]float32, 25)}}

	trim(buf, 0)
	if buf.NumFrames() != 25 {
		t.Errorf("trim(0) frames = %d, want 25", buf.NumFrames())
	}

	trim(buf, 1500*time.Millisecond)
	if len(buf.Data[0]) != 15 || len(buf.Data[1]) != 15 {
		t.Errorf("trim(1.5s) lengths = %d/%d, want 15", len(buf.Data[0]), len(buf.Data[1]))
	}
}

func TestFileRecorder_MissingFileMessage(t *testing.T) {
	t.Parallel()

	rec := NewFileRecorder(filepath.Join(t.TempDir(), "typo.wav"), nil, 0, quietLogger())
	s := pipeline.NewSession(rec, nil, nil, nil, pipeline.WithLogger(quietLogger()))

	err := s.StartRecording(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("StartRecording() error = %v, want os.ErrNotExist", err)
	}
	if errors.Is(err, pipeline.ErrMicrophoneUnavailable) {
		t.Error("file failure reported as microphone failure")
	}
	if s.State() != pipeline.Failed {
		t.Errorf("State() = %s, want failed", s.State())
	}

	msg := pipeline.UserMessage(err)
	if !strings.HasPrefix(msg, "Error: opening recording: ") {
		t.Errorf("UserMessage() = %q", msg)
	}
}
