package toxguard

import "math"

// Categories is the fixed label set, in the model's output order.
var Categories = []string{
	"toxic",
	"severe_toxic",
	"obscene",
	"threat",
	"insult",
	"identity_hate",
}

// decodeThreshold is the fixed decode-time cutoff for the Toxic flag. Callers
// applying their own policy threshold do so on top of this, never instead of
// it.
const decodeThreshold float32 = 0.5

// DecodeScores applies the logistic function to the raw logits and zips the
// first len(Categories) probabilities with the category names. Extra logits
// are ignored; categories past the end of the logits score 0.
func DecodeScores(logits []float32) map[string]float32 {
	scores := make(map[string]float32, len(Categories))
	for i, name := range Categories {
		if i < len(logits) {
			scores[name] = sigmoid(logits[i])
		} else {
			scores[name] = 0
		}
	}
	return scores
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(-float64(x))))
}

// resultFromScores derives the summary fields from per-category scores.
func resultFromScores(scores map[string]float32) Result {
	var maxScore float32
	toxic := false
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
		if s > decodeThreshold {
			toxic = true
		}
	}
	return Result{
		ToxicProbability: maxScore,
		SafeProbability:  1 - maxScore,
		Toxic:            toxic,
		CategoryScores:   scores,
	}
}
