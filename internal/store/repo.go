package store

import (
	"context"
	"time"
)

// ScanEventData captures one completed scan assessment for persistence.
type ScanEventData struct {
	SessionID        string
	Description      string
	RiskScore        float64
	RiskLevel        string
	TierCancer       float64
	TierInflammatory float64
	TierFungal       float64
	TierNormal       float64
	Symptoms         []string
	ImagePath        string
}

// ScanRecord is a persisted scan event read back from the store.
type ScanRecord struct {
	Sequence         int64
	Timestamp        time.Time
	SessionID        string
	Description      string
	RiskScore        float64
	RiskLevel        string
	TierCancer       float64
	TierInflammatory float64
	TierFungal       float64
	TierNormal       float64
	Symptoms         []string
	ImagePath        string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendScan records a completed scan assessment.
	AppendScan(ctx context.Context, data ScanEventData) error

	// RecentScans returns up to limit scan records, newest first.
	RecentScans(ctx context.Context, limit int) ([]ScanRecord, error)

	// ScanCount returns the total number of recorded scans.
	ScanCount(ctx context.Context) (int, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// Purge deletes all recorded events.
	Purge(ctx context.Context) error
}
