//go:build portaudio

// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/internal/pipeline"
)

const framesPerBuffer = 1024

var _ pipeline.Recorder = (*Microphone)(nil)

// Microphone records mono float32 audio from the default input device.
type Microphone struct {
	sampleRate  int
	maxDuration time.Duration
	logger      *slog.Logger
}

func NewMicrophone(sampleRate int, maxDuration time.Duration, logger *slog.Logger) *Microphone {
	if logger == nil {
		logger = slog.Default()
	}
	return &Microphone{
		sampleRate:  sampleRate,
		maxDuration: maxDuration,
		logger:      logger.With("recorder", "microphone"),
	}
}

func (m *Microphone) Start(ctx context.Context) (pipeline.Recording, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initializing portaudio: %w", pipeline.ErrMicrophoneUnavailable, err)
	}

	frame := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, frame)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("%w: opening stream: %w", pipeline.ErrMicrophoneUnavailable, err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("%w: starting stream: %w", pipeline.ErrMicrophoneUnavailable, err)
	}

	limit := 0
	if m.maxDuration > 0 {
		limit = int(m.maxDuration.Seconds() * float64(m.sampleRate))
	}

	rec := &micRecording{
		stream:     stream,
		frame:      frame,
		sampleRate: m.sampleRate,
		limit:      limit,
		done:       make(chan struct{}),
		stop:       make(chan struct{}),
		logger:     m.logger,
	}
	go rec.capture(ctx)

	m.logger.Info("microphone started", "sample_rate", m.sampleRate, "max_duration", m.maxDuration)
	return rec, nil
}

type micRecording struct {
	stream     *portaudio.Stream
	frame      []float32
	sampleRate int
	limit      int
	logger     *slog.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	samples []float32
	readErr error
}

func (r *micRecording) capture(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := r.stream.Read(); err != nil {
			r.mu.Lock()
			r.readErr = err
			r.mu.Unlock()
			return
		}

		r.mu.Lock()
		r.samples = append(r.samples, r.frame...)
		full := r.limit > 0 && len(r.samples) >= r.limit
		r.mu.Unlock()

		if full {
			r.logger.Info("maximum recording length reached")
			return
		}
	}
}

func (r *micRecording) Stop() (*audio.Buffer, error) {
	stopped := false
	r.stopOnce.Do(func() {
		stopped = true
		close(r.stop)
	})
	if !stopped {
		return nil, ErrAlreadyStopped
	}

	<-r.done

	if err := r.stream.Stop(); err != nil {
		r.logger.Warn("stopping stream", "error", err)
	}
	if err := r.stream.Close(); err != nil {
		r.logger.Warn("closing stream", "error", err)
	}
	if err := portaudio.Terminate(); err != nil {
		r.logger.Warn("terminating portaudio", "error", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	samples := r.samples
	if r.limit > 0 && len(samples) > r.limit {
		samples = samples[:r.limit]
	}

	buf := &audio.Buffer{SampleRate: r.sampleRate, Data: [][]float32{samples}}
	if r.readErr != nil {
		return buf, fmt.Errorf("reading from stream: %w", r.readErr)
	}

	r.logger.Info("microphone stopped", "frames", len(samples))
	return buf, nil
}
