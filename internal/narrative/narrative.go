// Package narrative generates free-form assessment text for a completed
// scan: a plain-language description of what the classifier saw plus care
// recommendations. Narrative generation is best-effort; a scan assessment
// is complete without it.
package narrative

import (
	"fmt"
	"strings"

	"github.com/nmehta/dermascan/internal/llm"
)

// Analysis is the structured narrative returned by the LLM.
type Analysis struct {
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// Render flattens the analysis to display text.
func (a *Analysis) Render() string {
	var b strings.Builder
	b.WriteString(a.Description)
	if len(a.Recommendations) > 0 {
		b.WriteString("\n\nRecommendations:\n")
		for _, r := range a.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", r)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FallbackAnalysis returns static guidance used when the LLM declines or
// returns nothing usable for the recommendations list.
func FallbackAnalysis(description string) *Analysis {
	return &Analysis{
		Description: description,
		Recommendations: []string{
			"Monitor the area for changes in size, shape, or color",
			"Avoid scratching or irritating the area",
			"Consult a dermatologist for a professional evaluation",
			"Take a follow-up photo in two weeks to compare",
		},
	}
}

const systemPrompt = `You write short, careful skin-health summaries for a screening app.
You receive a tentative classification produced by an automated triage step, a tier breakdown,
and user-reported symptoms. Write for a layperson. Do not diagnose; describe what the
classification suggests and give practical next steps. Always recommend professional
evaluation for anything potentially serious.`

func analysisSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "scan-narrative",
		Description: "Plain-language description and care recommendations for a scan",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description": map[string]any{
					"type":        "string",
					"description": "2-4 sentence plain-language summary",
				},
				"recommendations": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "3-5 short actionable recommendations",
				},
			},
			"required": []any{"description", "recommendations"},
		},
	}
}

func buildUserPrompt(req *NarrativeRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Top classification: %s\n", req.Description)
	fmt.Fprintf(&b, "Tier breakdown: cancer=%.2f inflammatory=%.2f fungal=%.2f normal=%.2f\n",
		req.TierCancer, req.TierInflammatory, req.TierFungal, req.TierNormal)
	fmt.Fprintf(&b, "Risk level: %s (score %.2f)\n", req.RiskLevel, req.RiskScore)
	if len(req.Symptoms) > 0 {
		fmt.Fprintf(&b, "Reported symptoms: %s\n", strings.Join(req.Symptoms, ", "))
	} else {
		b.WriteString("Reported symptoms: none\n")
	}
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	fmt.Fprintf(&b, "Respond in language: %s\n", lang)
	b.WriteString("Summarize what this suggests and recommend next steps.")
	return b.String()
}
