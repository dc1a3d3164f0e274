package classify

import (
	"context"
	"sync"

	"github.com/nmehta/dermascan/internal/imaging"
	"github.com/nmehta/dermascan/internal/triage"
)

// MockResult is a canned result for the MockClassifier.
type MockResult struct {
	Classes []triage.ClassProbability
	Err     error
}

// MockClassifier is a deterministic Classifier for testing.
// It returns canned results in FIFO order and records every call.
type MockClassifier struct {
	mu      sync.Mutex
	results []MockResult
	Calls   int
}

// NewMockClassifier creates a MockClassifier with the given canned results.
func NewMockClassifier(results ...MockResult) *MockClassifier {
	return &MockClassifier{results: results}
}

// Classify returns the next canned result, or ErrModelUnavailable when the
// queue is empty.
func (m *MockClassifier) Classify(_ context.Context, _ *imaging.Image) ([]triage.ClassProbability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++

	if len(m.results) == 0 {
		return nil, &ErrModelUnavailable{}
	}

	res := m.results[0]
	m.results = m.results[1:]

	if res.Err != nil {
		return nil, res.Err
	}
	return res.Classes, nil
}

// AddResult appends a canned result to the queue.
func (m *MockClassifier) AddResult(res MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
}
