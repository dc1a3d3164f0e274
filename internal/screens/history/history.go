package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/nmehta/dermascan/internal/router"
	"github.com/nmehta/dermascan/internal/screen"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/nmehta/dermascan/internal/ui/layout"
	"github.com/nmehta/dermascan/internal/ui/theme"
)

type historyLoadedMsg struct {
	Scans []store.ScanRecord
	Err   error
}

// HistoryScreen displays past scan assessments.
type HistoryScreen struct {
	eventRepo store.EventRepo
	scans     []store.ScanRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		scans, err := s.eventRepo.RecentScans(context.Background(), 50)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Scans: scans}
	}
}

func (s *HistoryScreen) Title() string {
	return "Scan History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.scans = msg.Scans
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.scans)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.scans) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No scans recorded yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.scans {
		dateStr := rec.Timestamp.Format("Jan 02, 2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		levelLabel := strings.ToUpper(rec.RiskLevel)
		line := fmt.Sprintf("%s%s  %-24s %s (%.2f)",
			prefix, dateStr, rec.Description, levelLabel, rec.RiskScore)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    cancer %.0f%%  inflammatory %.0f%%  fungal %.0f%%  normal %.0f%%",
				rec.TierCancer*100, rec.TierInflammatory*100, rec.TierFungal*100, rec.TierNormal*100)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
			b.WriteString("\n")

			symptomLine := "    symptoms: none"
			if len(rec.Symptoms) > 0 {
				symptomLine = "    symptoms: " + strings.Join(rec.Symptoms, ", ")
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(symptomLine)))
			b.WriteString("\n")

			levelColor := lipgloss.NewStyle().Foreground(theme.RiskColor(rec.RiskLevel))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				levelColor.Render(fmt.Sprintf("    risk: %s", levelLabel))))
			b.WriteString("\n")
		}
	}

	return b.String()
}
