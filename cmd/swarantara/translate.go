// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/swarantara/internal/config"
	"github.com/ik5/swarantara/internal/metrics"
	"github.com/ik5/swarantara/internal/pipeline"
	"github.com/ik5/swarantara/internal/playback"
	"github.com/samber/do/v2"
)

func runTranslate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config file")
	input := fs.String("input", "", "recording to translate when audio.source is file")
	source := fs.String("source", "", "source language code (overrides config)")
	target := fs.String("target", "", "target language code (overrides config)")
	swap := fs.Bool("swap", false, "swap source and target languages")
	play := fs.Bool("play", false, "play the synthesized speech")
	outDir := fs.String("out", "", "directory for recordings and transcripts (overrides config)")
	metricsFile := fs.String("metrics", "", "write Prometheus metrics to this file (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *source != "" {
		cfg.Languages.Source = *source
	}
	if *target != "" {
		cfg.Languages.Target = *target
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *metricsFile != "" {
		cfg.Output.MetricsFile = *metricsFile
	}
	cfg.Output.Play = cfg.Output.Play || *play

	if cfg.Audio.Source == "file" && *input == "" {
		fmt.Fprintln(os.Stderr, "translate: -input is required when audio.source is file")
		return errUsage
	}

	logger := setupLogger(cfg.Log)
	injector := setupDI(ctx, cfg, logger, runInput{Path: *input})

	session, err := do.Invoke[*pipeline.Session](injector)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}
	defer session.Close()

	if stt, err := do.Invoke[pipeline.SpeechToText](injector); err == nil {
		if c, ok := stt.(io.Closer); ok {
			defer c.Close()
		}
	}

	if *swap {
		if err := session.SwapLanguages(); err != nil {
			return err
		}
	}

	src, dst := session.Languages()
	logger.Info("starting translation",
		"session", session.ID(),
		"audio_source", cfg.Audio.Source,
		"source", src,
		"target", dst,
	)

	if cfg.Output.MetricsFile != "" {
		m := do.MustInvoke[*metrics.Metrics](injector)
		defer func() {
			if err := m.WriteTextfile(cfg.Output.MetricsFile); err != nil {
				logger.Warn("metrics not written", "error", err)
			}
		}()
	}

	res, err := record(ctx, session, cfg.Audio.Source == "microphone", cfg.Audio.MaxDuration, logger)
	if err != nil {
		logger.Debug("translation failed", "error", err)
		return errors.New(pipeline.UserMessage(err))
	}

	printResult(res)
	return deliver(ctx, injector, cfg, res, logger)
}

// record runs one capture. A microphone recording stops on Enter, when the
// maximum duration is reached or when ctx is done.
func record(ctx context.Context, session *pipeline.Session, live bool, maxDuration time.Duration, logger *slog.Logger) (pipeline.Result, error) {
	if err := session.StartRecording(ctx); err != nil {
		return pipeline.Result{}, err
	}

	if live {
		fmt.Fprintln(os.Stderr, "Recording... press Enter to stop.")
		enter := make(chan struct{})
		go func() {
			_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
			close(enter)
		}()

		var limit <-chan time.Time
		if maxDuration > 0 {
			timer := time.NewTimer(maxDuration)
			defer timer.Stop()
			limit = timer.C
		}

		select {
		case <-enter:
		case <-limit:
			logger.Info("maximum recording duration reached", "max", maxDuration)
		case <-ctx.Done():
			logger.Info("interrupted while recording")
			return pipeline.Result{}, ctx.Err()
		}
	}

	return session.StopRecording(ctx)
}

func printResult(res pipeline.Result) {
	label := func(code string) string {
		if l, ok := pipeline.LookupLanguage(code); ok {
			return l.String()
		}
		return code
	}

	fmt.Printf("%s: %s\n", label(res.SourceLanguage), res.Transcript)
	fmt.Printf("%s: %s\n", label(res.TargetLanguage), res.Translation)
}

func deliver(ctx context.Context, injector do.Injector, cfg *config.Config, res pipeline.Result, logger *slog.Logger) error {
	if cfg.Output.Dir != "" {
		sink := do.MustInvoke[*playback.FileSink](injector)
		paths, err := sink.Save(res)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println("saved", p)
		}
	}

	if !cfg.Output.Play {
		return nil
	}

	player := do.MustInvoke[*playback.Player](injector)
	defer func() {
		if err := player.Close(); err != nil {
			logger.Warn("closing audio output", "error", err)
		}
	}()

	return player.Play(ctx, res.OutputAudio)
}
