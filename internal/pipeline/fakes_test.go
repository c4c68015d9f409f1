// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/ik5/swarantara/audio"
)

var errService = errors.New("service down")

// callLog records the order in which collaborators were used.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeRecorder struct {
	log      *callLog
	buf      *audio.Buffer
	startErr error
	stopErr  error
	open     int
}

func (r *fakeRecorder) Start(context.Context) (Recording, error) {
	r.log.add("start")
	if r.startErr != nil {
		return nil, r.startErr
	}
	r.open++
	return &fakeRecording{r: r}, nil
}

type fakeRecording struct {
	r       *fakeRecorder
	stopped bool
}

func (f *fakeRecording) Stop() (*audio.Buffer, error) {
	f.r.log.add("stop")
	if !f.stopped {
		f.stopped = true
		f.r.open--
	}
	return f.r.buf, f.r.stopErr
}

type fakeSTT struct {
	log  *callLog
	text string
	err  error

	gotTag string
	gotWAV []byte
}

func (f *fakeSTT) Transcribe(_ context.Context, wav []byte, tag string) (string, error) {
	f.log.add("transcribe")
	f.gotTag, f.gotWAV = tag, wav
	return f.text, f.err
}

type fakeTranslator struct {
	log    *callLog
	text   string
	err    error
	cancel context.CancelFunc

	gotSource, gotTarget string
}

func (f *fakeTranslator) Translate(_ context.Context, _, source, target string) (string, error) {
	f.log.add("translate")
	f.gotSource, f.gotTarget = source, target
	if f.cancel != nil {
		f.cancel()
	}
	return f.text, f.err
}

type fakeTTS struct {
	log   *callLog
	audio []byte
	err   error

	gotLang string
}

func (f *fakeTTS) Synthesize(_ context.Context, _, lang string) ([]byte, error) {
	f.log.add("synthesize")
	f.gotLang = lang
	return f.audio, f.err
}

type harness struct {
	log        *callLog
	recorder   *fakeRecorder
	stt        *fakeSTT
	translator *fakeTranslator
	tts        *fakeTTS
}

func newHarness() *harness {
	log := &callLog{}
	return &harness{
		log: log,
		recorder: &fakeRecorder{
			log: log,
			buf: &audio.Buffer{SampleRate: 16000, Data: [][]float32{{0, 0.5, -0.5}}},
		},
		stt:        &fakeSTT{log: log, text: "नमस्ते"},
		translator: &fakeTranslator{log: log, text: "வணக்கம்"},
		tts:        &fakeTTS{log: log, audio: []byte("RIFF-synth")},
	}
}

func (h *harness) session(opts ...Option) *Session {
	return NewSession(h.recorder, h.stt, h.translator, h.tts, opts...)
}
