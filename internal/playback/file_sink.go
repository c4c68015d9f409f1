// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/swarantara"
	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/internal/pipeline"
)

// FileSink stores each finished translation under a directory:
// <run>-input.wav, <run>-output.<format> and <run>.txt.
type FileSink struct {
	dir      string
	registry *audio.Registry
	logger   *slog.Logger
}

func NewFileSink(dir string, registry *audio.Registry, logger *slog.Logger) *FileSink {
	if registry == nil {
		registry = swarantara.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSink{dir: dir, registry: registry, logger: logger.With("output", "file", "dir", dir)}
}

// Save writes res and returns the created paths.
func (s *FileSink) Save(res pipeline.Result) ([]string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	run := res.RunID
	if run == "" {
		run = "translation"
	}

	files := []struct {
		name string
		data []byte
	}{
		{run + "-input.wav", res.InputAudio},
		{run + "-output." + s.extension(res.OutputAudio), res.OutputAudio},
		{run + ".txt", []byte(transcript(res))},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(s.dir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}

	s.logger.Info("translation saved", "run", run, "files", len(paths))
	return paths, nil
}

func (s *FileSink) extension(data []byte) string {
	header := data
	if len(header) > audio.SniffLen {
		header = header[:audio.SniffLen]
	}
	if format, ok := s.registry.Detect(header); ok {
		return format
	}
	return "bin"
}

func transcript(res pipeline.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", languageLabel(res.SourceLanguage), res.Transcript)
	fmt.Fprintf(&b, "%s: %s\n", languageLabel(res.TargetLanguage), res.Translation)
	return b.String()
}

func languageLabel(code string) string {
	if l, ok := pipeline.LookupLanguage(code); ok {
		return l.String()
	}
	return code
}
