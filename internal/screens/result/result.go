// Package result renders a completed assessment: tier breakdown, risk level,
// advisory text, and the narrative once it arrives.
package result

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/nmehta/dermascan/internal/narrative"
	"github.com/nmehta/dermascan/internal/report"
	"github.com/nmehta/dermascan/internal/router"
	"github.com/nmehta/dermascan/internal/scan"
	"github.com/nmehta/dermascan/internal/screen"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/nmehta/dermascan/internal/ui/components"
	"github.com/nmehta/dermascan/internal/ui/layout"
	"github.com/nmehta/dermascan/internal/ui/theme"
)

type narrativeMsg struct {
	Generation uint64
	Analysis   *narrative.Analysis
	Err        error
}

type reportSavedMsg struct {
	Path string
	Err  error
}

// ResultScreen shows the outcome of an assessed scan.
type ResultScreen struct {
	session   *scan.Session
	narrSvc   *narrative.Service
	eventRepo store.EventRepo

	narrativePending bool
	narrativeErr     string
	savedPath        string
	saveErr          string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the result screen for an assessed session.
func New(session *scan.Session, narrSvc *narrative.Service, eventRepo store.EventRepo) *ResultScreen {
	return &ResultScreen{
		session:   session,
		narrSvc:   narrSvc,
		eventRepo: eventRepo,
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	snap := s.session.Snapshot()
	if s.narrSvc == nil || !s.narrSvc.Available() || snap.Narrative != "" {
		return nil
	}

	s.narrativePending = true

	req := &narrative.NarrativeRequest{
		Image:            snap.Image,
		Description:      snap.Description,
		TierCancer:       snap.Tiers.Cancer,
		TierInflammatory: snap.Tiers.Inflammatory,
		TierFungal:       snap.Tiers.Fungal,
		TierNormal:       snap.Tiers.Normal,
		RiskScore:        snap.RiskScore,
		RiskLevel:        string(snap.RiskLevel),
		Generation:       s.session.Generation(),
	}
	for _, sym := range snap.Symptoms {
		req.Symptoms = append(req.Symptoms, string(sym))
	}

	svc := s.narrSvc
	return func() tea.Msg {
		analysis, err := svc.GenerateSync(context.Background(), req)
		return narrativeMsg{Generation: req.Generation, Analysis: analysis, Err: err}
	}
}

func (s *ResultScreen) Title() string {
	return "Assessment"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Save report"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case narrativeMsg:
		s.narrativePending = false
		if msg.Err != nil {
			s.narrativeErr = "Narrative unavailable: " + msg.Err.Error()
			return s, nil
		}
		if err := s.session.SetNarrative(msg.Generation, msg.Analysis.Render()); err != nil {
			// Session was reset while the narrative was generating.
			return s, nil
		}
		return s, nil

	case reportSavedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		} else {
			s.savedPath = msg.Path
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "s", "S":
			return s, s.saveReport()
		}
	}

	return s, nil
}

func (s *ResultScreen) saveReport() tea.Cmd {
	snap := s.session.Snapshot()
	path := fmt.Sprintf("dermascan-report-%s.txt", time.Now().Format("20060102-150405"))
	return func() tea.Msg {
		if err := report.WriteFile(path, snap); err != nil {
			return reportSavedMsg{Err: err}
		}
		return reportSavedMsg{Path: path}
	}
}

func (s *ResultScreen) View(width, height int) string {
	snap := s.session.Snapshot()

	var b strings.Builder
	b.WriteString("\n")

	center := func(line string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	center(theme.Body.Bold(true).Render("Closest match: " + snap.Description))
	b.WriteString("\n")

	barWidth := width / 2
	if barWidth < 30 {
		barWidth = 30
	}

	tiers := []struct {
		label   string
		percent float64
	}{
		{"Cancerous    ", snap.Tiers.Cancer},
		{"Inflammatory ", snap.Tiers.Inflammatory},
		{"Fungal       ", snap.Tiers.Fungal},
		{"Normal       ", snap.Tiers.Normal},
	}
	for _, tier := range tiers {
		bar := components.NewBar(tier.label, tier.percent, true, barWidth)
		center(bar.View())
	}
	b.WriteString("\n")

	levelColor := theme.RiskColor(string(snap.RiskLevel))
	riskBar := components.NewBar("Risk score   ", snap.RiskScore, true, barWidth)
	riskBar.Color = levelColor
	center(riskBar.View())
	b.WriteString("\n")

	center(lipgloss.NewStyle().Foreground(levelColor).Bold(true).
		Render(fmt.Sprintf("%s RISK", strings.ToUpper(string(snap.RiskLevel)))))
	center(theme.Body.Render(snap.RiskLevel.Advisory()))
	b.WriteString("\n")

	switch {
	case snap.Narrative != "":
		narrStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(barWidth + 20)
		center(narrStyle.Render(snap.Narrative))
	case s.narrativePending:
		center(theme.Hint.Render("Generating assessment notes..."))
	case s.narrativeErr != "":
		center(theme.Hint.Render(s.narrativeErr))
	}

	if s.savedPath != "" {
		b.WriteString("\n")
		center(lipgloss.NewStyle().Foreground(theme.Success).Render("Report saved to " + s.savedPath))
	}
	if s.saveErr != "" {
		b.WriteString("\n")
		center(lipgloss.NewStyle().Foreground(theme.Error).Render("Save failed: " + s.saveErr))
	}

	return b.String()
}
