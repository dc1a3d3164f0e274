package scanflow

import (
	"time"

	"github.com/nmehta/dermascan/internal/triage"
)

// classifiedMsg is sent when the classifier call finishes.
type classifiedMsg struct {
	Generation uint64
	Classes    []triage.ClassProbability
	Err        error
}

// spinnerTickMsg animates the classifying spinner.
type spinnerTickMsg time.Time

// scanSavedMsg confirms the scan event was persisted.
type scanSavedMsg struct {
	Err error
}
