package toxguard

import (
	"context"

	"github.com/toxguard-ai/toxguard/internal/redact"
)

// Initialize loads the session and reports success. It never returns an
// error; failures are logged and surface as false.
func (d *Detector) Initialize(ctx context.Context) bool {
	return d.EnsureReady(ctx) == nil
}

// DetectToxicity classifies text. All failures surface as a Result with
// HasError set; no error ever reaches the caller.
func (d *Detector) DetectToxicity(ctx context.Context, text string) Result {
	if err := d.EnsureReady(ctx); err != nil {
		return ErrorResult()
	}
	res, err := d.analyze(text)
	if err != nil {
		redact.Logf("toxguard: analyze failed for text %s: %v", redact.Snippet(text), err)
		return ErrorResult()
	}
	return res
}

// IsToxic applies the caller's policy threshold on top of the decoder's own
// fixed-threshold flag. A failed classification is reported as non-toxic.
func (d *Detector) IsToxic(ctx context.Context, text string, threshold float32) bool {
	res := d.DetectToxicity(ctx, text)
	if res.HasError {
		return false
	}
	return res.Toxic || res.Exceeds(threshold)
}

// DetailedAnalysis returns the per-category scores, or ok=false when the
// classification failed.
func (d *Detector) DetailedAnalysis(ctx context.Context, text string) (map[string]float32, bool) {
	res := d.DetectToxicity(ctx, text)
	if res.HasError {
		return nil, false
	}
	return res.CategoryScores, true
}

// analyze runs the tokenize → tensors → model → decode pipeline.
func (d *Detector) analyze(text string) (Result, error) {
	tokenizer, model, err := d.session()
	if err != nil {
		return Result{}, err
	}

	ids := tokenizer.Encode(text)
	mask, typeIDs := buildInputs(ids, tokenizer.PadID())

	logits, err := model.Run(ids, mask, typeIDs)
	if err != nil {
		return Result{}, err
	}

	return resultFromScores(DecodeScores(logits)), nil
}
