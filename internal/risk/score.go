package risk

import (
	"github.com/nmehta/dermascan/internal/symptom"
	"github.com/nmehta/dermascan/internal/triage"
)

// Visual weights per clinical tier. The benign tier contributes nothing.
const (
	weightCancer       = 1.0
	weightInflammatory = 0.4
	weightFungal       = 0.3
)

// Additive symptom adjustments, each applied independently.
const (
	adjustBleeding    = 0.20
	adjustRapidGrowth = 0.15
	adjustItching     = 0.05
)

// MaxScore is a deliberate asymptote: the score never reaches 1.0, so the
// output never implies certainty.
const MaxScore = 0.99

// SymptomFloor is the minimum score whenever any symptom is reported.
// Self-reported symptoms warrant at least moderate-tier attention regardless
// of how benign the image looks.
const SymptomFloor = 0.20

// Score combines the tier breakdown with reported symptoms into a single
// scalar in [0, 0.99]. Pure and total: no error paths over well-formed input.
func Score(tiers triage.TierBreakdown, symptoms symptom.Set) float64 {
	score := weightCancer*tiers.Cancer +
		weightInflammatory*tiers.Inflammatory +
		weightFungal*tiers.Fungal

	if symptoms.Has(symptom.Bleeding) {
		score += adjustBleeding
	}
	if symptoms.Has(symptom.RapidGrowth) {
		score += adjustRapidGrowth
	}
	if symptoms.Has(symptom.Itching) {
		score += adjustItching
	}

	if score > MaxScore {
		score = MaxScore
	}

	if !symptoms.Empty() && score < SymptomFloor {
		score = SymptomFloor
	}

	return score
}
