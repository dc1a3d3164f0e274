package scan

// State is the lifecycle position of a scan session.
type State int

const (
	StateEmpty      State = iota // no classification yet
	StateClassified              // tiers present, accepting symptom toggles
	StateAssessed                // risk score computed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateClassified:
		return "classified"
	case StateAssessed:
		return "assessed"
	default:
		return "unknown"
	}
}
