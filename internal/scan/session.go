package scan

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/nmehta/dermascan/internal/classify"
	"github.com/nmehta/dermascan/internal/imaging"
	"github.com/nmehta/dermascan/internal/risk"
	"github.com/nmehta/dermascan/internal/symptom"
	"github.com/nmehta/dermascan/internal/triage"
)

var (
	// ErrNotClassified is returned when an operation requires tier data
	// and none has arrived.
	ErrNotClassified = errors.New("no classification in this session")

	// ErrClassificationPending is returned when the risk score is requested
	// while a classifier call is still outstanding. Undefined tier data
	// never feeds the scorer.
	ErrClassificationPending = errors.New("classification still in flight")

	// ErrAlreadyClassified is returned when a second classification is
	// started without resetting the session first.
	ErrAlreadyClassified = errors.New("session already classified; reset first")

	// ErrStaleCompletion is returned when an async completion arrives for a
	// generation the session has since moved past (usually after a reset).
	ErrStaleCompletion = errors.New("completion belongs to a stale generation")
)

// Session is the aggregate root for one scan: it owns the captured image,
// the tier and condition breakdowns, the symptom set, and the derived risk
// score, and it gates which pipeline stage can run next.
//
// Mutation is single-threaded by contract: every call funnels through one
// owner (the Bubble Tea update loop, or a single CLI invocation). Async
// classifier and narrative completions are delivered back into that owner
// and applied via the Complete*/Fail*/SetNarrative methods, which check the
// session generation so responses for a reset session are discarded.
type Session struct {
	id         string
	state      State
	generation uint64

	inFlight     bool // classifier call outstanding
	pendingImage *imaging.Image

	image       *imaging.Image
	raw         []triage.ClassProbability
	tiers       triage.TierBreakdown
	conditions  triage.ConditionBreakdown
	description string
	symptoms    symptom.Set

	finalScore float64
	riskLevel  risk.Level
	narrative  string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		id:       uuid.NewString(),
		symptoms: symptom.NewSet(),
	}
}

// ID returns the session UUID. A reset session keeps its ID; the generation
// distinguishes lifecycles.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Generation returns the current generation token. Async work started for an
// earlier generation is discarded on completion.
func (s *Session) Generation() uint64 { return s.generation }

// ClassificationPending reports whether a classifier call is outstanding.
func (s *Session) ClassificationPending() bool { return s.inFlight }

// BeginClassify starts the classify transition: it records the image as
// pending and returns the generation token the eventual completion must
// carry. Valid only in the Empty state.
func (s *Session) BeginClassify(img *imaging.Image) (uint64, error) {
	if s.state != StateEmpty {
		return 0, ErrAlreadyClassified
	}
	if s.inFlight {
		return 0, ErrClassificationPending
	}
	s.inFlight = true
	s.pendingImage = img
	return s.generation, nil
}

// CompleteClassification applies a successful classifier result. The image
// becomes owned by the session, the tier aggregation runs, and the session
// moves to Classified. Stale generations are rejected without mutation.
func (s *Session) CompleteClassification(gen uint64, raw []triage.ClassProbability) error {
	if gen != s.generation {
		return ErrStaleCompletion
	}
	if !s.inFlight {
		return ErrNotClassified
	}

	tiers, conditions := triage.Aggregate(raw)
	top := triage.TopMatch(raw)

	s.inFlight = false
	s.image = s.pendingImage
	s.pendingImage = nil
	s.raw = raw
	s.tiers = tiers
	s.conditions = conditions
	s.description = top.Name
	s.state = StateClassified
	return nil
}

// FailClassification aborts the classify transition: the session stays Empty
// with no partial mutation. Stale generations are ignored.
func (s *Session) FailClassification(gen uint64) {
	if gen != s.generation {
		return
	}
	s.inFlight = false
	s.pendingImage = nil
}

// Classify runs the full classify transition synchronously against the given
// adapter. On adapter failure the session remains Empty and the adapter error
// is returned unwrapped for the caller's taxonomy checks.
func (s *Session) Classify(ctx context.Context, c classify.Classifier, img *imaging.Image) error {
	gen, err := s.BeginClassify(img)
	if err != nil {
		return err
	}
	raw, err := c.Classify(ctx, img)
	if err != nil {
		s.FailClassification(gen)
		return err
	}
	return s.CompleteClassification(gen, raw)
}

// ToggleSymptom flips the presence of a symptom flag. Valid once classified;
// toggling does not advance state, and toggles after an assessment only take
// effect on an explicit recomputation.
func (s *Session) ToggleSymptom(sym symptom.Symptom) (bool, error) {
	if s.state == StateEmpty {
		return false, ErrNotClassified
	}
	return s.symptoms.Toggle(sym), nil
}

// ComputeRisk runs the scorer against the current tier breakdown and symptom
// set, writes the final score, and moves the session to Assessed. Calling it
// again in Assessed re-derives and overwrites the score from current inputs.
func (s *Session) ComputeRisk() (float64, risk.Level, error) {
	if s.state == StateEmpty {
		if s.inFlight {
			return 0, "", ErrClassificationPending
		}
		return 0, "", ErrNotClassified
	}

	s.finalScore = risk.Score(s.tiers, s.symptoms)
	s.riskLevel = risk.Classify(s.finalScore)
	s.state = StateAssessed
	return s.finalScore, s.riskLevel, nil
}

// SetNarrative attaches external narrative text. It only ever writes the
// narrative field, never tiers or score, and discards stale generations.
func (s *Session) SetNarrative(gen uint64, text string) error {
	if gen != s.generation {
		return ErrStaleCompletion
	}
	if s.state == StateEmpty {
		return ErrNotClassified
	}
	s.narrative = text
	return nil
}

// Reset clears every field back to the initial empty state, releases the
// captured image, and bumps the generation so in-flight responses are
// discarded on arrival.
func (s *Session) Reset() {
	s.generation++
	s.inFlight = false
	s.pendingImage = nil
	s.image = nil
	s.raw = nil
	s.tiers = triage.TierBreakdown{}
	s.conditions = nil
	s.description = ""
	s.symptoms = symptom.NewSet()
	s.finalScore = 0
	s.riskLevel = ""
	s.narrative = ""
	s.state = StateEmpty
}

// Snapshot is a read-only, internally consistent view of the session for
// report export: the score was derived from exactly the tiers present here.
type Snapshot struct {
	SessionID   string
	State       State
	Description string
	Tiers       triage.TierBreakdown
	Conditions  triage.ConditionBreakdown
	Symptoms    []symptom.Symptom
	RiskScore   float64
	RiskLevel   risk.Level
	Narrative   string
	Image       *imaging.Image
}

// Snapshot captures the current session fields.
func (s *Session) Snapshot() Snapshot {
	conditions := make(triage.ConditionBreakdown, len(s.conditions))
	for c, p := range s.conditions {
		conditions[c] = p
	}
	return Snapshot{
		SessionID:   s.id,
		State:       s.state,
		Description: s.description,
		Tiers:       s.tiers,
		Conditions:  conditions,
		Symptoms:    s.symptoms.List(),
		RiskScore:   s.finalScore,
		RiskLevel:   s.riskLevel,
		Narrative:   s.narrative,
		Image:       s.image,
	}
}
