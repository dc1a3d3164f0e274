package triage

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestAggregate_NormalizesWhenOverOne(t *testing.T) {
	raw := []ClassProbability{
		{Name: "Melanoma", Probability: 0.8},
		{Name: "Eczema", Probability: 0.6},
		{Name: "Normal Skin", Probability: 0.6},
	}

	tiers, _ := Aggregate(raw)

	if math.Abs(tiers.Total()-1.0) > eps {
		t.Errorf("tiers should sum to 1 when raw total exceeds 1, got %v", tiers.Total())
	}
	if math.Abs(tiers.Cancer-0.4) > eps {
		t.Errorf("Cancer = %v, want 0.4", tiers.Cancer)
	}
}

func TestAggregate_NeverInflates(t *testing.T) {
	// Low-confidence output stays low: the normalizer floor is 1.
	raw := []ClassProbability{
		{Name: "Melanoma", Probability: 0.1},
		{Name: "Psoriasis", Probability: 0.2},
	}

	tiers, _ := Aggregate(raw)

	if math.Abs(tiers.Cancer-0.1) > eps || math.Abs(tiers.Inflammatory-0.2) > eps {
		t.Errorf("low-confidence breakdown was rescaled: %+v", tiers)
	}
	if tiers.Total() > 1+eps {
		t.Errorf("total exceeds 1: %v", tiers.Total())
	}
}

func TestAggregate_AllZero(t *testing.T) {
	tiers, conditions := Aggregate([]ClassProbability{
		{Name: "Melanoma", Probability: 0},
	})

	if tiers.Total() != 0 {
		t.Errorf("all-zero input should yield zero breakdown, got %+v", tiers)
	}
	for c, p := range conditions {
		if p != 0 {
			t.Errorf("condition %q has nonzero mass %v", c, p)
		}
	}
}

func TestAggregate_SumsOverlappingClasses(t *testing.T) {
	// Two raw classes matching the same condition are summed, not averaged.
	raw := []ClassProbability{
		{Name: "Melanoma", Probability: 0.3},
		{Name: "Nodular Melanoma", Probability: 0.2},
	}

	_, conditions := Aggregate(raw)

	if math.Abs(conditions[Melanoma]-0.5) > eps {
		t.Errorf("Melanoma mass = %v, want 0.5 (summed)", conditions[Melanoma])
	}
}

func TestAggregate_CaseInsensitiveSubstring(t *testing.T) {
	raw := []ClassProbability{
		{Name: "SEBORRHEIC KERATOSIS (benign)", Probability: 0.4},
		{Name: "tinea corporis", Probability: 0.3},
	}

	tiers, conditions := Aggregate(raw)

	if math.Abs(conditions[SeborrheicKeratosis]-0.4) > eps {
		t.Errorf("SeborrheicKeratosis = %v, want 0.4", conditions[SeborrheicKeratosis])
	}
	if math.Abs(conditions[Tinea]-0.3) > eps {
		t.Errorf("Tinea = %v, want 0.3", conditions[Tinea])
	}
	if math.Abs(tiers.Fungal-0.3) > eps {
		t.Errorf("Fungal = %v, want 0.3", tiers.Fungal)
	}
}

func TestAggregate_GenericCancerLabels(t *testing.T) {
	// Classifiers that never name the specific malignancy still contribute
	// to the cancer tier ("Skin Cancer", "Malignant Lesion").
	raw := []ClassProbability{
		{Name: "Skin Cancer", Probability: 0.5},
		{Name: "Malignant Lesion", Probability: 0.2},
	}

	tiers, conditions := Aggregate(raw)

	if math.Abs(conditions[Melanoma]-0.7) > eps {
		t.Errorf("Melanoma mass = %v, want 0.7 (generic labels summed)", conditions[Melanoma])
	}
	if math.Abs(tiers.Cancer-0.7) > eps {
		t.Errorf("Cancer = %v, want 0.7", tiers.Cancer)
	}
}

func TestAggregate_UnmatchedConditionDefaultsToZero(t *testing.T) {
	raw := []ClassProbability{
		{Name: "Eczema", Probability: 0.5},
	}

	_, conditions := Aggregate(raw)

	if conditions[Warts] != 0 {
		t.Errorf("unmatched condition should default to 0, got %v", conditions[Warts])
	}
	if len(conditions) != len(AllConditions()) {
		t.Errorf("breakdown should cover all %d conditions, got %d", len(AllConditions()), len(conditions))
	}
}

func TestAggregate_TierRollup(t *testing.T) {
	raw := []ClassProbability{
		{Name: "Melanoma", Probability: 0.6},
		{Name: "Eczema", Probability: 0.1},
		{Name: "Normal Skin", Probability: 0.2},
	}

	tiers, _ := Aggregate(raw)

	// Raw sums total 0.9, under the normalizer floor of 1, so the tiers
	// keep their raw values.
	if math.Abs(tiers.Cancer-0.6) > eps {
		t.Errorf("Cancer = %v, want 0.6", tiers.Cancer)
	}
	if math.Abs(tiers.Inflammatory-0.1) > eps {
		t.Errorf("Inflammatory = %v, want 0.1", tiers.Inflammatory)
	}
	if math.Abs(tiers.Normal-0.2) > eps {
		t.Errorf("Normal = %v, want 0.2", tiers.Normal)
	}
	if tiers.Fungal != 0 {
		t.Errorf("Fungal = %v, want 0", tiers.Fungal)
	}
}

func TestAggregate_NonNegative(t *testing.T) {
	raw := []ClassProbability{
		{Name: "Warts", Probability: 0.45},
		{Name: "Psoriasis", Probability: 0.35},
		{Name: "Basal Cell Carcinoma", Probability: 0.75},
	}

	tiers, _ := Aggregate(raw)

	for name, v := range map[string]float64{
		"cancer": tiers.Cancer, "inflammatory": tiers.Inflammatory,
		"fungal": tiers.Fungal, "normal": tiers.Normal,
	} {
		if v < 0 {
			t.Errorf("tier %s is negative: %v", name, v)
		}
	}
	if math.Abs(tiers.Total()-1.0) > eps {
		t.Errorf("total = %v, want 1.0 (raw sum 1.55 scaled down)", tiers.Total())
	}
}

func TestTopMatch(t *testing.T) {
	raw := []ClassProbability{
		{Name: "Eczema", Probability: 0.3},
		{Name: "Melanoma", Probability: 0.5},
		{Name: "Warts", Probability: 0.5}, // tie loses to first-encountered
	}

	top := TopMatch(raw)
	if top.Name != "Melanoma" {
		t.Errorf("TopMatch = %q, want Melanoma", top.Name)
	}

	if got := TopMatch(nil); got.Name != "" || got.Probability != 0 {
		t.Errorf("TopMatch(nil) should be zero value, got %+v", got)
	}
}

func TestConditionTable_Coverage(t *testing.T) {
	if len(AllConditions()) != 11 {
		t.Fatalf("expected 11 conditions, got %d", len(AllConditions()))
	}

	tierCounts := make(map[Tier]int)
	for _, c := range AllConditions() {
		tierCounts[TierOf(c)]++
	}

	want := map[Tier]int{TierCancer: 2, TierInflammatory: 3, TierFungal: 2, TierNormal: 4}
	for tier, n := range want {
		if tierCounts[tier] != n {
			t.Errorf("tier %q has %d conditions, want %d", tier, tierCounts[tier], n)
		}
	}
}

func TestRanked(t *testing.T) {
	cb := ConditionBreakdown{
		Melanoma:  0.2,
		Eczema:    0.5,
		Tinea:     0,
		Psoriasis: 0.2, // ties with Melanoma, table order keeps Melanoma first
	}

	ranked := cb.Ranked()
	if len(ranked) != 3 {
		t.Fatalf("Ranked() returned %d conditions, want 3", len(ranked))
	}
	if ranked[0] != Eczema {
		t.Errorf("ranked[0] = %q, want eczema", ranked[0])
	}
	if ranked[1] != Melanoma {
		t.Errorf("ranked[1] = %q, want melanoma (stable tie-break)", ranked[1])
	}
}
