package triage

// Condition identifies one of the fine-grained skin conditions the
// classifier can recognize.
type Condition string

const (
	Melanoma            Condition = "melanoma"
	BasalCellCarcinoma  Condition = "basal_cell_carcinoma"
	Eczema              Condition = "eczema"
	AtopicDermatitis    Condition = "atopic_dermatitis"
	MelanocyticNevi     Condition = "melanocytic_nevi"
	BenignKeratosis     Condition = "benign_keratosis"
	Psoriasis           Condition = "psoriasis"
	SeborrheicKeratosis Condition = "seborrheic_keratosis"
	Tinea               Condition = "tinea"
	Warts               Condition = "warts"
	NormalSkin          Condition = "normal_skin"
)

// Tier identifies one of the four top-level clinical buckets that
// fine-grained conditions roll up into.
type Tier string

const (
	TierCancer       Tier = "cancer"
	TierInflammatory Tier = "inflammatory"
	TierFungal       Tier = "fungal"
	TierNormal       Tier = "normal"
)

// conditionDef binds a condition to its raw-label match substrings and
// its clinical tier. Matching is case-insensitive substring containment,
// so one table entry tolerates different classifier labeling schemes
// ("Melanoma", "melanoma (skin cancer)", "Malignant Melanoma").
type conditionDef struct {
	id         Condition
	tier       Tier
	display    string
	substrings []string
}

// conditionTable is the canonical aggregation policy: every condition,
// the labels that map onto it, and the tier it contributes to.
var conditionTable = []conditionDef{
	{Melanoma, TierCancer, "Melanoma", []string{"melanoma", "malignant", "skin cancer"}},
	{BasalCellCarcinoma, TierCancer, "Basal Cell Carcinoma", []string{"basal cell", "bcc", "carcinoma"}},
	{Eczema, TierInflammatory, "Eczema", []string{"eczema"}},
	{AtopicDermatitis, TierInflammatory, "Atopic Dermatitis", []string{"dermatitis"}},
	{Psoriasis, TierInflammatory, "Psoriasis", []string{"psoriasis"}},
	{Tinea, TierFungal, "Tinea (Ringworm)", []string{"tinea", "ringworm"}},
	{Warts, TierFungal, "Warts", []string{"wart", "molluscum"}},
	{MelanocyticNevi, TierNormal, "Melanocytic Nevi", []string{"nevi", "nevus", "mole"}},
	{BenignKeratosis, TierNormal, "Benign Keratosis", []string{"benign keratosis", "bkl"}},
	{SeborrheicKeratosis, TierNormal, "Seborrheic Keratosis", []string{"seborrheic"}},
	{NormalSkin, TierNormal, "Normal Skin", []string{"normal", "healthy"}},
}

// byCondition indexes the table by condition ID.
var byCondition map[Condition]*conditionDef

func init() {
	byCondition = make(map[Condition]*conditionDef, len(conditionTable))
	for i := range conditionTable {
		byCondition[conditionTable[i].id] = &conditionTable[i]
	}
}

// AllConditions returns every condition in table order.
func AllConditions() []Condition {
	out := make([]Condition, len(conditionTable))
	for i, def := range conditionTable {
		out[i] = def.id
	}
	return out
}

// DisplayName returns a human-readable label for the condition.
func (c Condition) DisplayName() string {
	if def, ok := byCondition[c]; ok {
		return def.display
	}
	return string(c)
}

// TierOf returns the clinical tier the condition rolls up into.
func TierOf(c Condition) Tier {
	if def, ok := byCondition[c]; ok {
		return def.tier
	}
	return TierNormal
}
