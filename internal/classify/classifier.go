package classify

import (
	"context"
	"fmt"

	"github.com/nmehta/dermascan/internal/imaging"
	"github.com/nmehta/dermascan/internal/triage"
)

// Classifier maps a lesion image to per-class probabilities
// (triage.ClassProbability, the shared vocabulary with the aggregator).
// The underlying model is an opaque external collaborator; implementations
// make no claim about medical correctness, only about the wire contract.
type Classifier interface {
	Classify(ctx context.Context, img *imaging.Image) ([]triage.ClassProbability, error)
}

// ErrModelUnavailable indicates the classifier could not be loaded or
// initialized (for example no provider credential is configured).
type ErrModelUnavailable struct {
	Err error
}

func (e *ErrModelUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classifier unavailable: %v", e.Err)
	}
	return "classifier unavailable"
}

func (e *ErrModelUnavailable) Unwrap() error { return e.Err }

// ErrInference indicates prediction failed on an otherwise working model.
type ErrInference struct {
	Err error
}

func (e *ErrInference) Error() string {
	return fmt.Sprintf("classifier inference failed: %v", e.Err)
}

func (e *ErrInference) Unwrap() error { return e.Err }
