package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nmehta/dermascan/internal/imaging"
	"github.com/nmehta/dermascan/internal/llm"
)

// ErrServiceUnavailable indicates no LLM provider is configured, so
// narrative generation cannot run at all.
var ErrServiceUnavailable = errors.New("narrative service unavailable: no LLM provider configured")

// ErrUpstreamRejected indicates every model variant refused or failed.
type ErrUpstreamRejected struct {
	Attempts int
	Last     error
}

func (e *ErrUpstreamRejected) Error() string {
	return fmt.Sprintf("narrative rejected by all %d model variants: %v", e.Attempts, e.Last)
}

func (e *ErrUpstreamRejected) Unwrap() error { return e.Last }

// NarrativeRequest carries everything the narrative prompt needs.
type NarrativeRequest struct {
	Image            *imaging.Image
	Description      string
	TierCancer       float64
	TierInflammatory float64
	TierFungal       float64
	TierNormal       float64
	RiskScore        float64
	RiskLevel        string
	Symptoms         []string

	// Language is an ISO language code for the response text. Empty means "en".
	Language string

	// Generation is the session generation this request was issued under.
	// It is echoed back in the Result so the caller can discard stale
	// completions after a reset.
	Generation uint64
}

// Result is delivered to the callback when generation finishes.
type Result struct {
	Generation uint64
	Analysis   *Analysis
	Err        error
}

// Config controls narrative generation.
type Config struct {
	// Variants are model overrides tried in order. The empty string means
	// the provider's configured default model.
	Variants []string

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard narrative configuration.
func DefaultConfig() Config {
	return Config{
		Variants:    []string{""},
		MaxTokens:   1024,
		Temperature: 0.4,
	}
}

type job struct {
	ctx context.Context
	req *NarrativeRequest
	cb  func(Result)
}

// Service generates narratives asynchronously. Requests are queued and a
// single worker walks the model variant list for each. If provider is nil
// the service is a stub that reports ErrServiceUnavailable synchronously.
type Service struct {
	provider llm.Provider
	cfg      Config
	pending  chan job
}

// NewService creates a narrative service. A nil provider is allowed; the
// service then rejects every request with ErrServiceUnavailable.
func NewService(provider llm.Provider, cfg Config) *Service {
	s := &Service{
		provider: provider,
		cfg:      cfg,
		pending:  make(chan job, 8),
	}
	if len(s.cfg.Variants) == 0 {
		s.cfg.Variants = []string{""}
	}
	if provider != nil {
		go s.processLoop()
	}
	return s
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s.provider != nil
}

// Generate queues a narrative request. The callback fires from the worker
// goroutine when the result is ready. Returns ErrServiceUnavailable
// immediately when no provider is configured.
func (s *Service) Generate(ctx context.Context, req *NarrativeRequest, cb func(Result)) error {
	if s.provider == nil {
		return ErrServiceUnavailable
	}

	select {
	case s.pending <- job{ctx: ctx, req: req, cb: cb}:
		return nil
	default:
		return fmt.Errorf("narrative queue full")
	}
}

// GenerateSync runs narrative generation on the calling goroutine.
// Used by the one-shot CLI path where there is no update loop to call back.
func (s *Service) GenerateSync(ctx context.Context, req *NarrativeRequest) (*Analysis, error) {
	if s.provider == nil {
		return nil, ErrServiceUnavailable
	}
	return s.generate(ctx, req)
}

func (s *Service) processLoop() {
	for j := range s.pending {
		analysis, err := s.generate(j.ctx, j.req)
		if j.cb != nil {
			j.cb(Result{Generation: j.req.Generation, Analysis: analysis, Err: err})
		}
	}
}

// generate walks the variant list until one model produces a valid analysis.
func (s *Service) generate(ctx context.Context, req *NarrativeRequest) (*Analysis, error) {
	ctx = llm.WithPurpose(ctx, "narrative")

	msg := llm.Message{
		Role:    llm.RoleUser,
		Content: buildUserPrompt(req),
	}
	if req.Image != nil {
		msg.Images = []llm.ImagePart{{MIME: req.Image.MIME, Data: req.Image.Data}}
	}

	var lastErr error
	for _, variant := range s.cfg.Variants {
		resp, err := s.provider.Generate(ctx, llm.Request{
			System:      systemPrompt,
			Messages:    []llm.Message{msg},
			Schema:      analysisSchema(),
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: s.cfg.Temperature,
			Model:       variant,
		})
		if err != nil {
			lastErr = err
			continue
		}

		var analysis Analysis
		if err := json.Unmarshal(resp.Content, &analysis); err != nil {
			lastErr = fmt.Errorf("decode narrative: %w", err)
			continue
		}

		if len(analysis.Recommendations) == 0 {
			fallback := FallbackAnalysis(analysis.Description)
			return fallback, nil
		}
		return &analysis, nil
	}

	return nil, &ErrUpstreamRejected{Attempts: len(s.cfg.Variants), Last: lastErr}
}

// Close shuts down the worker.
func (s *Service) Close() {
	close(s.pending)
}
