package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nmehta/dermascan/internal/llm"
)

func testRequest() *NarrativeRequest {
	return &NarrativeRequest{
		Description: "Melanoma",
		TierCancer:  0.6,
		RiskScore:   0.64,
		RiskLevel:   "high",
		Symptoms:    []string{"bleeding"},
		Generation:  3,
	}
}

func TestGenerateSyncDecodesAnalysis(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"description": "The photo is most consistent with a pigmented lesion.",
			"recommendations": ["See a dermatologist", "Monitor for changes"]
		}`),
	})
	s := NewService(mock, DefaultConfig())
	defer s.Close()

	analysis, err := s.GenerateSync(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("GenerateSync: %v", err)
	}
	if !strings.Contains(analysis.Description, "pigmented lesion") {
		t.Errorf("description = %q", analysis.Description)
	}
	if len(analysis.Recommendations) != 2 {
		t.Errorf("got %d recommendations, want 2", len(analysis.Recommendations))
	}
}

func TestNilProviderIsUnavailable(t *testing.T) {
	s := NewService(nil, DefaultConfig())

	if s.Available() {
		t.Error("Available() = true with nil provider")
	}

	_, err := s.GenerateSync(context.Background(), testRequest())
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("GenerateSync error = %v, want ErrServiceUnavailable", err)
	}

	err = s.Generate(context.Background(), testRequest(), nil)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("Generate error = %v, want ErrServiceUnavailable", err)
	}
}

func TestVariantFallbackOrder(t *testing.T) {
	// First variant fails, second succeeds.
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: json.RawMessage(`{
			"description": "Likely benign.",
			"recommendations": ["Routine check"]
		}`)},
	)
	cfg := DefaultConfig()
	cfg.Variants = []string{"primary-model", "backup-model"}
	s := NewService(mock, cfg)
	defer s.Close()

	analysis, err := s.GenerateSync(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("GenerateSync: %v", err)
	}
	if analysis.Description != "Likely benign." {
		t.Errorf("description = %q", analysis.Description)
	}

	if len(mock.Calls) != 2 {
		t.Fatalf("got %d provider calls, want 2", len(mock.Calls))
	}
	if mock.Calls[0].Model != "primary-model" || mock.Calls[1].Model != "backup-model" {
		t.Errorf("variant order = %q, %q", mock.Calls[0].Model, mock.Calls[1].Model)
	}
}

func TestAllVariantsFailing(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: errors.New("refused")}},
	)
	cfg := DefaultConfig()
	cfg.Variants = []string{"a", "b"}
	s := NewService(mock, cfg)
	defer s.Close()

	_, err := s.GenerateSync(context.Background(), testRequest())
	var rejected *ErrUpstreamRejected
	if !errors.As(err, &rejected) {
		t.Fatalf("error = %v, want ErrUpstreamRejected", err)
	}
	if rejected.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", rejected.Attempts)
	}
}

func TestEmptyRecommendationsUseFallback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"description": "Unclear image.", "recommendations": []}`),
	})
	s := NewService(mock, DefaultConfig())
	defer s.Close()

	analysis, err := s.GenerateSync(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("GenerateSync: %v", err)
	}
	if len(analysis.Recommendations) == 0 {
		t.Error("expected fallback recommendations")
	}
	if analysis.Description != "Unclear image." {
		t.Errorf("fallback dropped description: %q", analysis.Description)
	}
}

func TestAsyncDelivery(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"description": "d", "recommendations": ["r"]}`),
	})
	s := NewService(mock, DefaultConfig())
	defer s.Close()

	done := make(chan Result, 1)
	err := s.Generate(context.Background(), testRequest(), func(r Result) {
		done <- r
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	result := <-done
	if result.Err != nil {
		t.Fatalf("result error: %v", result.Err)
	}
	if result.Generation != 3 {
		t.Errorf("generation = %d, want 3", result.Generation)
	}
	if result.Analysis == nil || result.Analysis.Description != "d" {
		t.Errorf("analysis = %+v", result.Analysis)
	}
}

func TestRenderIncludesRecommendations(t *testing.T) {
	a := &Analysis{
		Description:     "Summary here.",
		Recommendations: []string{"First", "Second"},
	}
	text := a.Render()
	if !strings.Contains(text, "Summary here.") {
		t.Errorf("render missing description: %q", text)
	}
	if !strings.Contains(text, "- First") || !strings.Contains(text, "- Second") {
		t.Errorf("render missing recommendations: %q", text)
	}
}

func TestLanguageInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"description": "d", "recommendations": ["r"]}`),
	})
	s := NewService(mock, DefaultConfig())
	defer s.Close()

	req := testRequest()
	req.Language = "es"
	if _, err := s.GenerateSync(context.Background(), req); err != nil {
		t.Fatalf("GenerateSync: %v", err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "language: es") {
		t.Errorf("prompt does not carry language instruction: %q", prompt)
	}
}
