// Package voice orchestrates microphone acquisition, continuous speech
// transcription and the hand-off to structured extraction.
package voice

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/fintakip/backend/internal/finance"
)

// State is the pipeline's position in its three-state machine.
type State int

const (
	StateIdle State = iota
	StateListening
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	case StateProcessing:
		return "processing"
	default:
		return "idle"
	}
}

const (
	// MinTranscriptChars is the threshold below which a stopped session
	// is treated as "nothing meaningful was said" and no extraction runs.
	MinTranscriptChars = 6

	// DefaultMaxRestarts bounds consecutive recognizer restarts so a
	// persistently failing recognition facility cannot loop forever.
	DefaultMaxRestarts = 5
)

// Extractor converts a raw transcript into a transaction candidate.
// A nil draft with a nil error means the result was malformed and no
// transaction should be produced.
type Extractor interface {
	ExtractTransaction(ctx context.Context, transcript string) (*finance.Draft, error)
}

// Recorder appends confirmed transactions to the transaction list.
type Recorder interface {
	AddTransaction(ctx context.Context, draft finance.Draft) (finance.Transaction, error)
}

// PipelineConfig wires a pipeline's ports.
type PipelineConfig struct {
	Capture     Capture
	Extractor   Extractor
	Recorder    Recorder
	MaxRestarts int
	Logger      *logrus.Logger
}

// Pipeline is the voice-capture state machine. One instance exists per
// session; its events arrive over HTTP, so every transition is guarded
// by the mutex.
type Pipeline struct {
	mu       sync.Mutex
	state    State
	segments []string
	handle   Handle
	restarts int

	capture     Capture
	extractor   Extractor
	recorder    Recorder
	maxRestarts int
	log         *logrus.Entry
}

// NewPipeline creates an idle pipeline.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	if cfg.MaxRestarts <= 0 {
		cfg.MaxRestarts = DefaultMaxRestarts
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Pipeline{
		capture:     cfg.Capture,
		extractor:   cfg.Extractor,
		recorder:    cfg.Recorder,
		maxRestarts: cfg.MaxRestarts,
		log:         cfg.Logger.WithField("component", "voice"),
	}
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Transcript returns the accumulated buffer.
func (p *Pipeline) Transcript() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return strings.Join(p.segments, " ")
}

// Start moves Idle → Listening, acquiring the capture resource. An
// acquisition failure is returned to the caller (surfaced to the user
// as a blocking notice) and the state stays Idle. Starting while
// already listening is a no-op.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateIdle {
		return nil
	}

	handle, err := p.capture.Acquire(ctx)
	if err != nil {
		p.log.WithError(err).Warn("microphone acquisition failed")
		return err
	}

	p.handle = handle
	p.segments = nil
	p.restarts = 0
	p.state = StateListening
	return nil
}

// AddSegment feeds a transcription result event into the buffer. Only
// finalized segments are accumulated; interim segments are discarded.
// Events outside the Listening state are dropped.
func (p *Pipeline) AddSegment(text string, final bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateListening || !final {
		return
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}
	p.segments = append(p.segments, trimmed)
	p.restarts = 0
}

// RecognizerEnded records that the transcription facility terminated
// while still listening and reports whether the caller should restart
// it. Restarts are bounded per consecutive run without a finalized
// segment.
func (p *Pipeline) RecognizerEnded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateListening {
		return false
	}
	p.restarts++
	if p.restarts > p.maxRestarts {
		p.log.WithField("restarts", p.restarts-1).Warn("recognizer restart limit reached")
		return false
	}
	return true
}

// Stop moves Listening → Processing → Idle. The capture resource is
// released immediately and unconditionally on this exit path. A buffer
// shorter than MinTranscriptChars skips extraction entirely. On
// extraction success the candidate is appended to the transaction list
// and returned for confirmation; any failure or malformed result is
// logged and yields (nil, nil); the absence of a confirmation is the
// only signal the user gets.
func (p *Pipeline) Stop(ctx context.Context) (*finance.Transaction, error) {
	p.mu.Lock()
	if p.state != StateListening {
		p.mu.Unlock()
		return nil, nil
	}

	p.releaseLocked()

	transcript := strings.Join(p.segments, " ")
	if utf8.RuneCountInString(transcript) < MinTranscriptChars {
		p.resetLocked()
		p.mu.Unlock()
		return nil, nil
	}

	p.state = StateProcessing
	p.mu.Unlock()

	// Gateway call runs outside the lock; segment events arriving now
	// are dropped by the state guard.
	draft, err := p.extractor.ExtractTransaction(ctx, transcript)

	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.resetLocked()

	if err != nil {
		p.log.WithError(err).Warn("transcript extraction failed")
		return nil, nil
	}
	if draft == nil {
		p.log.WithField("transcript", transcript).Info("no transaction extracted")
		return nil, nil
	}
	if err := draft.Validate(); err != nil {
		p.log.WithError(err).Warn("extracted candidate failed validation")
		return nil, nil
	}

	tx, err := p.recorder.AddTransaction(ctx, *draft)
	if err != nil {
		p.log.WithError(err).Error("recording extracted transaction failed")
		return nil, nil
	}
	return &tx, nil
}

func (p *Pipeline) releaseLocked() {
	if p.handle != nil {
		p.handle.Release()
		p.handle = nil
	}
}

func (p *Pipeline) resetLocked() {
	p.segments = nil
	p.restarts = 0
	p.state = StateIdle
}
