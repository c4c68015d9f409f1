// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/swarantara"
	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/utils"
)

const pollInterval = 20 * time.Millisecond

// Player plays synthesized speech on the default output device.
//
// oto allows one context per process, so the device is opened once at the
// rate of the first clip (or the rate given to NewPlayer) and later clips
// are resampled to it. Playback is always mono.
type Player struct {
	registry *audio.Registry
	logger   *slog.Logger

	mu     sync.Mutex
	rate   int
	otoCtx *oto.Context
}

// NewPlayer returns a player. rate 0 opens the device at the first clip's
// rate.
func NewPlayer(registry *audio.Registry, rate int, logger *slog.Logger) *Player {
	if registry == nil {
		registry = swarantara.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{registry: registry, rate: rate, logger: logger.With("output", "oto")}
}

// decode turns an audio file into mono samples at rate (0 keeps the file
// rate).
func decode(registry *audio.Registry, data []byte, rate int) (*audio.Buffer, error) {
	src, format, err := swarantara.Decode(registry, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf, err := swarantara.CollectSource(src, rate)
	if err != nil {
		return nil, fmt.Errorf("decoding %s clip: %w", format, err)
	}
	return buf, nil
}

func (p *Player) device(rate int) (*oto.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.otoCtx != nil {
		return p.otoCtx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("creating oto context: %w", err)
	}
	<-ready

	p.otoCtx = ctx
	p.rate = rate
	p.logger.Info("audio output initialized", "sample_rate", rate)

	return ctx, nil
}

func (p *Player) deviceRate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate
}

// Play decodes data and blocks until it has been played or ctx is done.
func (p *Player) Play(ctx context.Context, data []byte) error {
	buf, err := decode(p.registry, data, p.deviceRate())
	if err != nil {
		return err
	}

	dev, err := p.device(buf.SampleRate)
	if err != nil {
		return err
	}

	player := dev.NewPlayer(bytes.NewReader(buf.PCM16LE(utils.RoundNearest)))
	defer player.Close()

	p.logger.Debug("playing", "frames", buf.NumFrames(), "duration", buf.Duration())
	player.Play()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("playing clip: %w", err)
	}
	return nil
}

// Close suspends the output device.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.otoCtx == nil {
		return nil
	}
	if err := p.otoCtx.Suspend(); err != nil {
		return fmt.Errorf("suspending oto context: %w", err)
	}
	return nil
}
