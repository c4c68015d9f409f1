// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ik5/swarantara"
	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/internal/pipeline"
)

var _ pipeline.Recorder = (*FileRecorder)(nil)

// FileRecorder plays back a recording from disk as if it had just been
// captured. Any format the registry can detect is accepted.
type FileRecorder struct {
	path        string
	registry    *audio.Registry
	maxDuration time.Duration
	logger      *slog.Logger
}

// NewFileRecorder reads path on every Start. A positive maxDuration trims
// longer recordings.
func NewFileRecorder(path string, registry *audio.Registry, maxDuration time.Duration, logger *slog.Logger) *FileRecorder {
	if registry == nil {
		registry = swarantara.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FileRecorder{
		path:        path,
		registry:    registry,
		maxDuration: maxDuration,
		logger:      logger.With("recorder", "file", "path", path),
	}
}

func (r *FileRecorder) Start(ctx context.Context) (pipeline.Recording, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}

	src, format, err := swarantara.Decode(r.registry, f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding %s: %w", r.path, err)
	}

	r.logger.Info("recording opened", "format", format,
		"sample_rate", src.SampleRate(), "channels", src.Channels())

	return &fileRecording{file: f, src: src, maxDuration: r.maxDuration}, nil
}

type fileRecording struct {
	mu          sync.Mutex
	file        *os.File
	src         audio.Source
	maxDuration time.Duration
	stopped     bool
}

func (r *fileRecording) Stop() (*audio.Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return nil, ErrAlreadyStopped
	}
	r.stopped = true

	defer r.file.Close()
	defer r.src.Close()

	buf, err := audio.ReadBuffer(r.src)
	if err != nil {
		return nil, fmt.Errorf("reading recording: %w", err)
	}

	trim(buf, r.maxDuration)
	return buf, nil
}

// trim cuts buf to at most d. Non-positive d leaves it alone.
func trim(buf *audio.Buffer, d time.Duration) {
	if d <= 0 || buf.SampleRate <= 0 {
		return
	}

	limit := int(d.Seconds() * float64(buf.SampleRate))
	for c := range buf.Data {
		if len(buf.Data[c]) > limit {
			buf.Data[c] = buf.Data[c][:limit]
		}
	}
}
