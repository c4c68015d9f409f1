// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/swarantara"
	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/formats/wav"
	"github.com/ik5/swarantara/utils"
)

// Result holds everything a successful run produced. The slices are shared
// with the session and must not be modified.
type Result struct {
	RunID          string
	SourceLanguage string
	TargetLanguage string
	InputAudio     []byte
	Transcript     string
	Translation    string
	OutputAudio    []byte
	Elapsed        time.Duration
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithSampleRate resamples captures to rate before encoding. Zero keeps the
// capture rate.
func WithSampleRate(rate int) Option {
	return func(s *Session) { s.sampleRate = rate }
}

func WithRounding(r utils.Rounding) Option {
	return func(s *Session) { s.rounding = r }
}

// Session drives one speech-to-speech translator through its states.
// Triggers are serialized; State, Result and Err may be called at any time.
type Session struct {
	id         string
	recorder   Recorder
	stt        SpeechToText
	translator Translator
	tts        TextToSpeech
	logger     *slog.Logger
	observers  []Observer
	sampleRate int
	rounding   utils.Rounding

	ops sync.Mutex

	mu        sync.Mutex
	state     State
	source    string
	target    string
	recording Recording
	runID     string
	started   time.Time
	result    *Result
	err       error
}

func NewSession(recorder Recorder, stt SpeechToText, translator Translator, tts TextToSpeech, opts ...Option) *Session {
	s := &Session{
		id:         uuid.NewString(),
		recorder:   recorder,
		stt:        stt,
		translator: translator,
		tts:        tts,
		logger:     slog.Default(),
		source:     DefaultSourceLanguage,
		target:     DefaultTargetLanguage,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)

	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the failure that moved the session to Failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Result returns the last successful run while the session is Ready.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready || s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Languages returns the current source and target codes.
func (s *Session) Languages() (source, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source, s.target
}

// SetLanguages selects the language pair and resets the session.
func (s *Session) SetLanguages(source, target string) error {
	if err := validatePair(source, target); err != nil {
		return err
	}

	s.ops.Lock()
	defer s.ops.Unlock()

	return s.resetWith(func() { s.source, s.target = source, target })
}

// SwapLanguages exchanges source and target and resets the session.
func (s *Session) SwapLanguages() error {
	s.ops.Lock()
	defer s.ops.Unlock()

	return s.resetWith(func() { s.source, s.target = s.target, s.source })
}

// Reset drops the last result or failure and returns to Idle.
func (s *Session) Reset() error {
	s.ops.Lock()
	defer s.ops.Unlock()

	return s.resetWith(nil)
}

func (s *Session) resetWith(update func()) error {
	s.mu.Lock()
	from := s.state
	if !CanTransition(from, Idle) {
		s.mu.Unlock()
		return fmt.Errorf("%w: reset while %s", ErrInvalidTransition, from)
	}
	if update != nil {
		update()
	}
	s.state = Idle
	s.result = nil
	s.err = nil
	s.mu.Unlock()

	s.notify(from, Idle)
	return nil
}

// StartRecording releases any previous result and opens the recorder.
// Recorder errors are returned as is.
func (s *Session) StartRecording(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	from := s.state
	if !CanTransition(from, Listening) {
		s.mu.Unlock()
		return fmt.Errorf("%w: start recording while %s", ErrInvalidTransition, from)
	}
	s.state = Listening
	s.result = nil
	s.err = nil
	s.runID = uuid.NewString()
	s.started = time.Now()
	s.mu.Unlock()

	s.notify(from, Listening)

	rec, err := s.recorder.Start(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.recording = rec
	s.mu.Unlock()

	s.log().Info("recording started")
	return nil
}

// StopRecording closes the recording and runs encoding, transcription,
// translation and synthesis in that order. The first failing step moves the
// session to Failed and its error is returned.
func (s *Session) StopRecording(ctx context.Context) (Result, error) {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	if s.state != Listening {
		from := s.state
		s.mu.Unlock()
		return Result{}, fmt.Errorf("%w: stop recording while %s", ErrInvalidTransition, from)
	}
	rec := s.recording
	s.recording = nil
	source, target := s.source, s.target
	runID, started := s.runID, s.started
	s.mu.Unlock()

	buf, err := rec.Stop()
	if err != nil {
		return Result{}, s.fail(fmt.Errorf("stopping recording: %w", err))
	}

	res := Result{RunID: runID, SourceLanguage: source, TargetLanguage: target}

	s.enter(Encoding)
	if res.InputAudio, err = s.encode(buf); err != nil {
		return Result{}, s.fail(err)
	}
	s.log().Info("encoded recording", "bytes", len(res.InputAudio))

	sourceTag := LocaleTag(source)

	s.enter(Transcribing)
	if err := ctx.Err(); err != nil {
		return Result{}, s.fail(err)
	}
	res.Transcript, err = s.stt.Transcribe(ctx, res.InputAudio, sourceTag)
	if err != nil {
		return Result{}, s.fail(fmt.Errorf("transcribing: %w", err))
	}
	if strings.TrimSpace(res.Transcript) == "" {
		return Result{}, s.fail(ErrEmptyTranscript)
	}
	s.log().Info("transcribed", "language", sourceTag, "text", res.Transcript)

	s.enter(Translating)
	if err := ctx.Err(); err != nil {
		return Result{}, s.fail(err)
	}
	res.Translation, err = s.translator.Translate(ctx, res.Transcript, sourceTag, target)
	if err != nil {
		return Result{}, s.fail(fmt.Errorf("translating: %w", err))
	}
	if strings.TrimSpace(res.Translation) == "" {
		return Result{}, s.fail(ErrEmptyTranslation)
	}
	s.log().Info("translated", "language", target, "text", res.Translation)

	s.enter(Synthesizing)
	if err := ctx.Err(); err != nil {
		return Result{}, s.fail(err)
	}
	res.OutputAudio, err = s.tts.Synthesize(ctx, res.Translation, target)
	if err != nil {
		return Result{}, s.fail(fmt.Errorf("synthesizing: %w", err))
	}
	if len(res.OutputAudio) == 0 {
		return Result{}, s.fail(ErrEmptySpeech)
	}

	res.Elapsed = time.Since(started)

	s.mu.Lock()
	s.result = &res
	s.mu.Unlock()
	s.enter(Ready)

	s.log().Info("translation ready", "audio_bytes", len(res.OutputAudio), "elapsed", res.Elapsed)
	return res, nil
}

// Close releases a recording that is still open. The session ends up Failed
// if it was recording, and is otherwise unchanged.
func (s *Session) Close() error {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	rec := s.recording
	s.recording = nil
	s.mu.Unlock()

	if rec == nil {
		return nil
	}

	_, err := rec.Stop()
	_ = s.fail(fmt.Errorf("recording abandoned: %w", context.Canceled))
	if err != nil {
		return fmt.Errorf("stopping recording: %w", err)
	}
	return nil
}

func (s *Session) encode(buf *audio.Buffer) ([]byte, error) {
	if buf == nil || buf.NumFrames() == 0 {
		return nil, ErrEmptyRecording
	}

	if s.sampleRate > 0 && buf.SampleRate != s.sampleRate {
		resampled, err := swarantara.CollectSource(buf.Source(), s.sampleRate)
		if err != nil {
			return nil, fmt.Errorf("resampling recording: %w", err)
		}
		buf = resampled
	}

	out, err := wav.Encode(buf, wav.WithRounding(s.rounding))
	if err != nil {
		return nil, fmt.Errorf("encoding recording: %w", err)
	}
	return out, nil
}

// enter moves along a pipeline edge. Callers only use edges the table
// allows.
func (s *Session) enter(to State) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.mu.Unlock()

	s.notify(from, to)
}

func (s *Session) fail(err error) error {
	s.mu.Lock()
	from := s.state
	s.state = Failed
	s.err = err
	s.result = nil
	s.mu.Unlock()

	s.log().Error("pipeline failed", "step", from, "error", err)
	s.notify(from, Failed)

	return err
}

func (s *Session) notify(from, to State) {
	s.log().Debug("state change", "from", from, "to", to)
	for _, o := range s.observers {
		o(from, to)
	}
}

func (s *Session) log() *slog.Logger {
	s.mu.Lock()
	run := s.runID
	s.mu.Unlock()

	if run == "" {
		return s.logger
	}
	return s.logger.With("run", run)
}
