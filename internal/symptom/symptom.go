package symptom

// Symptom identifies a self-reported symptom flag.
type Symptom string

const (
	Itching     Symptom = "itching"
	Bleeding    Symptom = "bleeding"
	RapidGrowth Symptom = "rapid_growth"
)

// All returns every known symptom in display order.
func All() []Symptom {
	return []Symptom{Itching, Bleeding, RapidGrowth}
}

// Valid reports whether s is a member of the closed symptom enumeration.
func (s Symptom) Valid() bool {
	switch s {
	case Itching, Bleeding, RapidGrowth:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the symptom.
func (s Symptom) DisplayName() string {
	switch s {
	case Itching:
		return "Itching"
	case Bleeding:
		return "Bleeding"
	case RapidGrowth:
		return "Rapid growth"
	default:
		return string(s)
	}
}

// Set is an unordered collection of reported symptoms.
// Membership is the only operation the risk scorer needs.
type Set map[Symptom]bool

// NewSet creates an empty symptom set.
func NewSet() Set {
	return make(Set)
}

// Toggle flips the presence of s and returns the new presence value.
// Unknown symptoms are ignored and report false.
func (set Set) Toggle(s Symptom) bool {
	if !s.Valid() {
		return false
	}
	if set[s] {
		delete(set, s)
		return false
	}
	set[s] = true
	return true
}

// Has reports whether s is present.
func (set Set) Has(s Symptom) bool {
	return set[s]
}

// Empty reports whether no symptoms are present.
func (set Set) Empty() bool {
	return len(set) == 0
}

// Clone returns an independent copy of the set.
func (set Set) Clone() Set {
	out := make(Set, len(set))
	for s := range set {
		out[s] = true
	}
	return out
}

// List returns present symptoms in the canonical display order.
func (set Set) List() []Symptom {
	var out []Symptom
	for _, s := range All() {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}
