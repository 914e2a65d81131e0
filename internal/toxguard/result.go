package toxguard

// Result carries the per-category probabilities and derived flags for one
// classification. Each call produces a fresh value; nothing is shared.
type Result struct {
	ToxicProbability float32            `json:"toxic_probability"`
	SafeProbability  float32            `json:"safe_probability"`
	Toxic            bool               `json:"toxic"`
	HasError         bool               `json:"has_error"`
	CategoryScores   map[string]float32 `json:"scores"`
}

// Exceeds reports whether any category score exceeds threshold.
func (r Result) Exceeds(threshold float32) bool {
	for _, score := range r.CategoryScores {
		if score > threshold {
			return true
		}
	}
	return false
}

// ErrorResult is the sentinel returned when any stage fails: all numeric
// fields zero, no scores. Callers check HasError rather than receiving an
// error.
func ErrorResult() Result {
	return Result{
		HasError:       true,
		CategoryScores: map[string]float32{},
	}
}
