package domain

import (
	"math/rand"

	"github.com/uxmedia/demoportal/internal/models"
)

const feedbackBonus = 0.35

// Score is the selection weight of a queued submission: base weight 1, a
// flat bonus when the submitter asked for feedback, plus the admin's manual
// adjustment. Floored at zero.
func Score(s models.Submission) float64 {
	score := 1 + s.ManualWeight
	if s.WantsFeedback {
		score += feedbackBonus
	}
	if score < 0 {
		return 0
	}
	return score
}

// WeightedPick draws one submission with probability proportional to its
// score. Returns nil when the total score is zero or the list is empty.
//
// Items are walked in caller order (oldest first); the draw r has each score
// subtracted in turn and the first item where r reaches zero wins. If
// floating-point drift exhausts the list with r still positive, the last
// item wins. The rng is injected so picks are reproducible under a fixed
// seed.
func WeightedPick(items []models.Submission, rng *rand.Rand) *models.Submission {
	var total float64
	for i := range items {
		total += Score(items[i])
	}
	if total <= 0 {
		return nil
	}

	r := rng.Float64() * total
	for i := range items {
		r -= Score(items[i])
		if r <= 0 {
			return &items[i]
		}
	}
	return &items[len(items)-1]
}
