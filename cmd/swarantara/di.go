// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"log/slog"

	"github.com/ik5/swarantara"
	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/internal/capture"
	"github.com/ik5/swarantara/internal/config"
	"github.com/ik5/swarantara/internal/metrics"
	"github.com/ik5/swarantara/internal/pipeline"
	"github.com/ik5/swarantara/internal/playback"
	"github.com/ik5/swarantara/internal/remote"
	"github.com/ik5/swarantara/internal/remote/gcp"
	"github.com/samber/do/v2"
)

// runInput is what the translate command adds on top of the config file.
type runInput struct {
	// Path is the recording used when audio.source is "file".
	Path string
}

func setupDI(ctx context.Context, cfg *config.Config, logger *slog.Logger, in runInput) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, in)

	do.Provide(injector, func(do.Injector) (*audio.Registry, error) {
		return swarantara.NewRegistry(), nil
	})

	do.Provide(injector, func(i do.Injector) (pipeline.Recorder, error) {
		c := do.MustInvoke[*config.Config](i)
		l := do.MustInvoke[*slog.Logger](i)
		if c.Audio.Source == "microphone" {
			return capture.NewMicrophone(c.Audio.CaptureRate, c.Audio.MaxDuration, l), nil
		}
		path := do.MustInvoke[runInput](i).Path
		return capture.NewFileRecorder(path, do.MustInvoke[*audio.Registry](i), c.Audio.MaxDuration, l), nil
	})

	do.Provide(injector, func(i do.Injector) (pipeline.SpeechToText, error) {
		c := do.MustInvoke[*config.Config](i)
		l := do.MustInvoke[*slog.Logger](i)
		if c.Service.SpeechBackend == "google" {
			return gcp.New(ctx, gcp.Config{
				ProjectID:       c.Google.ProjectID,
				CredentialsJSON: c.Google.CredentialsJSON,
				Location:        c.Google.Location,
				Model:           c.Google.Model,
				Retry:           retryConfig(c),
			}, l)
		}
		return remote.NewSpeechClient(serviceConfig(c), c.Service.SpeechModel, remote.WithLogger(l))
	})

	do.Provide(injector, func(i do.Injector) (pipeline.Translator, error) {
		c := do.MustInvoke[*config.Config](i)
		return remote.NewTranslateClient(serviceConfig(c), remote.WithLogger(do.MustInvoke[*slog.Logger](i)))
	})

	do.Provide(injector, func(i do.Injector) (pipeline.TextToSpeech, error) {
		c := do.MustInvoke[*config.Config](i)
		return remote.NewSynthesisClient(serviceConfig(c), c.Service.Speaker, remote.WithLogger(do.MustInvoke[*slog.Logger](i)))
	})

	do.Provide(injector, func(do.Injector) (*metrics.Metrics, error) {
		return metrics.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*pipeline.Session, error) {
		c := do.MustInvoke[*config.Config](i)
		l := do.MustInvoke[*slog.Logger](i)

		stt, err := do.Invoke[pipeline.SpeechToText](i)
		if err != nil {
			return nil, err
		}
		translator, err := do.Invoke[pipeline.Translator](i)
		if err != nil {
			return nil, err
		}
		tts, err := do.Invoke[pipeline.TextToSpeech](i)
		if err != nil {
			return nil, err
		}

		s := pipeline.NewSession(
			do.MustInvoke[pipeline.Recorder](i), stt, translator, tts,
			pipeline.WithLogger(l),
			pipeline.WithSampleRate(c.Audio.SampleRate),
			pipeline.WithRounding(c.Rounding()),
			pipeline.WithObserver(func(from, to pipeline.State) {
				l.Debug("state changed", "from", from, "to", to)
			}),
			pipeline.WithObserver(do.MustInvoke[*metrics.Metrics](i).Observe),
		)
		if err := s.SetLanguages(c.Languages.Source, c.Languages.Target); err != nil {
			return nil, err
		}
		return s, nil
	})

	do.Provide(injector, func(i do.Injector) (*playback.Player, error) {
		return playback.NewPlayer(do.MustInvoke[*audio.Registry](i), 0, do.MustInvoke[*slog.Logger](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*playback.FileSink, error) {
		c := do.MustInvoke[*config.Config](i)
		return playback.NewFileSink(c.Output.Dir, do.MustInvoke[*audio.Registry](i), do.MustInvoke[*slog.Logger](i)), nil
	})

	return injector
}

func retryConfig(c *config.Config) remote.RetryConfig {
	return remote.RetryConfig{
		MaxAttempts:  c.Service.Retry.MaxAttempts,
		InitialDelay: c.Service.Retry.InitialDelay,
		MaxDelay:     c.Service.Retry.MaxDelay,
		Multiplier:   c.Service.Retry.Multiplier,
	}
}

func serviceConfig(c *config.Config) remote.Config {
	return remote.Config{
		BaseURL:   c.Service.BaseURL,
		APIKey:    c.Service.APIKey,
		KeyHeader: c.Service.KeyHeader,
		Timeout:   c.Service.Timeout,
		Retry:     retryConfig(c),
	}
}
