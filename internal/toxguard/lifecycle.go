package toxguard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/toxguard-ai/toxguard/internal/redact"
)

// State describes the session lifecycle.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var errDisposedDuringLoad = errors.New("detector disposed during load")

// Options configures a Detector.
type Options struct {
	// ModelDir holds model.onnx, vocab.txt and the optional tokenizer assets.
	ModelDir string
	// SeqLen overrides the tokenizer config's model_max_length when positive.
	SeqLen int
	// Loader opens the model file. Defaults to LoadONNXModel.
	Loader ModelLoader
}

// Detector owns the lazily loaded tokenizer and model handle. It is safe for
// concurrent use; construct independent instances freely (tests do).
type Detector struct {
	opts Options

	mu        sync.Mutex
	state     State
	gen       int
	tokenizer *WordPieceTokenizer
	model     ModelRunner

	flight singleflight.Group
}

// NewDetector returns an unloaded detector. Nothing is read from disk until
// the first EnsureReady.
func NewDetector(opts Options) *Detector {
	if opts.Loader == nil {
		opts.Loader = LoadONNXModel
	}
	return &Detector{opts: opts, state: StateUnloaded}
}

// State reports the current lifecycle state.
func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// EnsureReady loads the vocabulary, tokenizer config and model exactly once
// across concurrent callers. Callers arriving during an in-flight load share
// its outcome; after a failure the next call retries from scratch. ctx only
// bounds this caller's wait, not the load itself.
func (d *Detector) EnsureReady(ctx context.Context) error {
	d.mu.Lock()
	if d.state == StateReady {
		d.mu.Unlock()
		return nil
	}
	gen := d.gen
	d.mu.Unlock()

	// The generation number keys the flight so a load started before a
	// Dispose cannot satisfy callers arriving after it.
	key := strconv.Itoa(gen)
	ch := d.flight.DoChan(key, func() (any, error) {
		defer d.flight.Forget(key)
		return nil, d.load(gen)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Detector) load(gen int) error {
	d.mu.Lock()
	if d.gen != gen {
		d.mu.Unlock()
		return errDisposedDuringLoad
	}
	if d.state == StateReady {
		d.mu.Unlock()
		return nil
	}
	d.state = StateLoading
	dir := d.opts.ModelDir
	seqLen := d.opts.SeqLen
	loader := d.opts.Loader
	d.mu.Unlock()

	tokenizer, model, err := loadSession(dir, seqLen, loader)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen != gen {
		// Disposed while we were loading; drop the handle.
		if model != nil {
			_ = model.Destroy()
		}
		return errDisposedDuringLoad
	}
	if err != nil {
		d.state = StateFailed
		redact.Logf("toxguard: load failed: %v", err)
		return err
	}
	d.tokenizer = tokenizer
	d.model = model
	d.state = StateReady
	redact.Logf("toxguard: session ready (seq_len=%d, vocab=%d tokens)", tokenizer.MaxSeqLen(), tokenizer.vocab.Size())
	return nil
}

func loadSession(dir string, seqLen int, loader ModelLoader) (*WordPieceTokenizer, ModelRunner, error) {
	tokenizer, err := loadTokenizer(dir, seqLen)
	if err != nil {
		return nil, nil, fmt.Errorf("load tokenizer: %w", err)
	}
	model, err := loader(modelPath(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}
	return tokenizer, model, nil
}

// Dispose releases the model handle and returns the detector to Unloaded.
// A load in flight when Dispose is called cannot commit its result; the next
// EnsureReady performs a fresh load.
func (d *Detector) Dispose() {
	d.mu.Lock()
	model := d.model
	d.model = nil
	d.tokenizer = nil
	d.state = StateUnloaded
	d.gen++
	d.mu.Unlock()

	if model != nil {
		if err := model.Destroy(); err != nil {
			redact.Logf("toxguard: destroy model: %v", err)
		}
	}
}

// session snapshots the ready tokenizer and model, or fails when the
// detector is not Ready.
func (d *Detector) session() (*WordPieceTokenizer, ModelRunner, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateReady || d.model == nil || d.tokenizer == nil {
		return nil, nil, ErrSessionUnavailable
	}
	return d.tokenizer, d.model, nil
}
