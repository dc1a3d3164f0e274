package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nmehta/dermascan/internal/imaging"
	"github.com/nmehta/dermascan/internal/llm"
	"github.com/nmehta/dermascan/internal/triage"
)

const classifySystemPrompt = `You are a dermatology image triage assistant. You examine a single
photograph of a skin region and estimate, for each known condition class, the probability that
the photograph shows that condition. You are not a diagnostic device; your output feeds a
screening heuristic that always directs users to professional care.

Rules:
- Report a probability in [0, 1] for every class you consider plausible.
- Omit classes you consider implausible rather than reporting 0.
- Probabilities reflect independent per-class confidence and need not sum to 1.
- If the image does not show skin at all, report "Normal skin" with low confidence and nothing else.`

// VisionClassifier classifies lesion images by sending them to a
// vision-capable LLM provider with a structured output schema.
type VisionClassifier struct {
	provider llm.Provider
}

// NewVisionClassifier creates a classifier backed by the given provider.
func NewVisionClassifier(p llm.Provider) *VisionClassifier {
	return &VisionClassifier{provider: p}
}

// classResult mirrors the schema the provider must return.
type classResult struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

func (c *VisionClassifier) Classify(ctx context.Context, img *imaging.Image) ([]triage.ClassProbability, error) {
	ctx = llm.WithPurpose(ctx, "classification")

	req := llm.Request{
		System: classifySystemPrompt,
		Messages: []llm.Message{
			{
				Role:    llm.RoleUser,
				Content: classifyUserPrompt(),
				Images: []llm.ImagePart{
					{MIME: img.MIME, Data: img.Data},
				},
			},
		},
		Schema:    classSchema(),
		MaxTokens: 1024,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, mapProviderError(err)
	}

	var payload struct {
		Classes []classResult `json:"classes"`
	}
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return nil, &ErrInference{Err: fmt.Errorf("decode classification: %w", err)}
	}

	out := make([]triage.ClassProbability, 0, len(payload.Classes))
	for _, cls := range payload.Classes {
		p := cls.Probability
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		out = append(out, triage.ClassProbability{Name: cls.Name, Probability: p})
	}
	return out, nil
}

func classifyUserPrompt() string {
	prompt := "Estimate per-class probabilities for this skin photograph. Known classes:\n"
	for _, cond := range triage.AllConditions() {
		prompt += "- " + cond.DisplayName() + "\n"
	}
	return prompt
}

func classSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "lesion-classes",
		Description: "Per-class probability estimates for a skin photograph",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"classes": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name": map[string]any{
								"type":        "string",
								"description": "Condition class name",
							},
							"probability": map[string]any{
								"type":        "number",
								"description": "Confidence in [0, 1]",
							},
						},
						"required": []any{"name", "probability"},
					},
				},
			},
			"required": []any{"classes"},
		},
	}
}

// mapProviderError folds provider failures into the classifier error taxonomy.
// Availability problems surface as ErrModelUnavailable so callers can suggest
// configuration fixes; everything else is an inference failure.
func mapProviderError(err error) error {
	var unavailable *llm.ErrProviderUnavailable
	if errors.As(err, &unavailable) {
		return &ErrModelUnavailable{Err: err}
	}
	var rateLimit *llm.ErrRateLimit
	if errors.As(err, &rateLimit) {
		return &ErrModelUnavailable{Err: err}
	}
	return &ErrInference{Err: err}
}
