package triage

import (
	"sort"
	"strings"
)

// ClassProbability is one named classifier output class with the probability
// mass assigned to it. Probabilities are in [0,1] and need not sum to 1
// across classes. This is the shared vocabulary between the classifier
// adapter (which produces it) and the aggregation below (which consumes it).
type ClassProbability struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// TierBreakdown holds the normalized probability mass per clinical tier.
// When the raw sums reach at least 1 the four fields sum to 1 (within
// floating-point tolerance); below that the normalizer floor of 1 keeps
// a low-confidence classification low instead of inflating it.
type TierBreakdown struct {
	Cancer       float64 `json:"cancer"`
	Inflammatory float64 `json:"inflammatory"`
	Fungal       float64 `json:"fungal"`
	Normal       float64 `json:"normal"`
}

// Total returns the sum of the four tier values.
func (b TierBreakdown) Total() float64 {
	return b.Cancer + b.Inflammatory + b.Fungal + b.Normal
}

// ConditionBreakdown holds the raw (non-normalized) probability mass
// attributed to each fine-grained condition. Used for ranked display only;
// the risk score is computed from the tier breakdown.
type ConditionBreakdown map[Condition]float64

// Ranked returns conditions with nonzero mass, highest first.
// Ties keep table order (stable).
func (cb ConditionBreakdown) Ranked() []Condition {
	ranked := make([]Condition, 0, len(cb))
	for _, c := range AllConditions() {
		if cb[c] > 0 {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return cb[ranked[i]] > cb[ranked[j]]
	})
	return ranked
}

// Aggregate resolves raw classifier output into the four-tier breakdown and
// the per-condition breakdown. Each condition's mass is the SUM of every raw
// class whose name contains one of its match substrings: classifiers that
// segment a concept across several output classes ("Melanoma", "Skin Cancer
// - Melanoma") are counted once per class rather than under-counted.
func Aggregate(raw []ClassProbability) (TierBreakdown, ConditionBreakdown) {
	conditions := make(ConditionBreakdown, len(conditionTable))

	for _, def := range conditionTable {
		var mass float64
		for _, cp := range raw {
			if matchesLabel(cp.Name, def.substrings) {
				mass += cp.Probability
			}
		}
		conditions[def.id] = mass
	}

	var b TierBreakdown
	for _, def := range conditionTable {
		switch def.tier {
		case TierCancer:
			b.Cancer += conditions[def.id]
		case TierInflammatory:
			b.Inflammatory += conditions[def.id]
		case TierFungal:
			b.Fungal += conditions[def.id]
		case TierNormal:
			b.Normal += conditions[def.id]
		}
	}

	// Normalizer floor of 1: scale down when the raw sums exceed a simplex,
	// never scale up.
	total := b.Total()
	if total > 1 {
		b.Cancer /= total
		b.Inflammatory /= total
		b.Fungal /= total
		b.Normal /= total
	}

	return b, conditions
}

// TopMatch returns the raw class with the highest probability, for the
// human-readable description. Ties break toward the first-encountered class.
// Returns the zero value when raw is empty.
func TopMatch(raw []ClassProbability) ClassProbability {
	var top ClassProbability
	for _, cp := range raw {
		if cp.Probability > top.Probability {
			top = cp
		}
	}
	return top
}

func matchesLabel(rawName string, substrings []string) bool {
	name := strings.ToLower(rawName)
	for _, sub := range substrings {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}
