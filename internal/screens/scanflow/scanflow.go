// Package scanflow drives the interactive scan pipeline: image path entry,
// classification, symptom reporting, and the hand-off to the result screen.
package scanflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/nmehta/dermascan/internal/classify"
	"github.com/nmehta/dermascan/internal/imaging"
	"github.com/nmehta/dermascan/internal/narrative"
	"github.com/nmehta/dermascan/internal/router"
	"github.com/nmehta/dermascan/internal/scan"
	"github.com/nmehta/dermascan/internal/screen"
	"github.com/nmehta/dermascan/internal/screens/result"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/nmehta/dermascan/internal/symptom"
	"github.com/nmehta/dermascan/internal/ui/components"
	"github.com/nmehta/dermascan/internal/ui/layout"
	"github.com/nmehta/dermascan/internal/ui/theme"
)

type phase int

const (
	phasePath phase = iota
	phaseClassifying
	phaseSymptoms
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ScanFlowScreen walks the user through one scan.
type ScanFlowScreen struct {
	session    *scan.Session
	classifier classify.Classifier
	narrSvc    *narrative.Service
	eventRepo  store.EventRepo

	phase        phase
	input        components.TextInput
	checklist    components.Checklist
	spinnerFrame int
	errMsg       string
}

var _ screen.Screen = (*ScanFlowScreen)(nil)
var _ screen.KeyHintProvider = (*ScanFlowScreen)(nil)

// New creates the scan flow screen with injected dependencies.
func New(session *scan.Session, classifier classify.Classifier, narrSvc *narrative.Service, eventRepo store.EventRepo) *ScanFlowScreen {
	s := &ScanFlowScreen{
		session:    session,
		classifier: classifier,
		narrSvc:    narrSvc,
		eventRepo:  eventRepo,
		input:      components.NewTextInput("Path to lesion photo (jpg/png/webp)...", 200),
	}
	s.checklist = newSymptomChecklist(session)
	return s
}

func newSymptomChecklist(session *scan.Session) components.Checklist {
	items := make([]components.ChecklistItem, 0, len(symptom.All()))
	for _, sym := range symptom.All() {
		items = append(items, components.ChecklistItem{
			ID:    string(sym),
			Label: sym.DisplayName(),
		})
	}
	cl := components.NewChecklist("Which symptoms have you noticed?", items)
	cl.OnToggle = func(id string, _ bool) tea.Cmd {
		// Runs inside the update loop; session mutation is safe here.
		session.ToggleSymptom(symptom.Symptom(id))
		return nil
	}
	return cl
}

func (s *ScanFlowScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ScanFlowScreen) Title() string {
	return "New Scan"
}

func (s *ScanFlowScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseSymptoms:
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Assess"},
			{Key: "Esc", Description: "Cancel"},
		}
	case phaseClassifying:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Scan"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *ScanFlowScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case classifiedMsg:
		return s.handleClassified(msg)

	case spinnerTickMsg:
		if s.phase != phaseClassifying {
			return s, nil
		}
		s.spinnerFrame = (s.spinnerFrame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case scanSavedMsg:
		// History persistence is best-effort; failures never block the flow.
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phasePath {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *ScanFlowScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phasePath:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s.startClassification()
		default:
			s.input.ClearValidation()
			s.errMsg = ""
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}

	case phaseClassifying:
		if msg.String() == "esc" {
			// Abandon the scan; the generation bump discards the in-flight result.
			s.session.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case phaseSymptoms:
		switch msg.String() {
		case "esc":
			s.session.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s.assess()
		default:
			var cmd tea.Cmd
			s.checklist, cmd = s.checklist.Update(msg)
			return s, cmd
		}
	}

	return s, nil
}

func (s *ScanFlowScreen) startClassification() (screen.Screen, tea.Cmd) {
	path := strings.TrimSpace(s.input.Value())
	if path == "" {
		s.input.Submit(false, "Enter an image path.")
		return s, nil
	}

	img, err := imaging.LoadFile(path)
	if err != nil {
		s.input.Submit(false, err.Error())
		return s, nil
	}

	gen, err := s.session.BeginClassify(img)
	if err != nil {
		s.input.Submit(false, err.Error())
		return s, nil
	}

	s.input.Submit(true, "")
	s.phase = phaseClassifying
	s.errMsg = ""

	classifyCmd := func() tea.Msg {
		classes, err := s.classifier.Classify(context.Background(), img)
		return classifiedMsg{Generation: gen, Classes: classes, Err: err}
	}
	return s, tea.Batch(classifyCmd, spinnerTick())
}

func (s *ScanFlowScreen) handleClassified(msg classifiedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.session.FailClassification(msg.Generation)
		s.phase = phasePath
		s.errMsg = "Classification failed: " + msg.Err.Error()
		return s, nil
	}

	if err := s.session.CompleteClassification(msg.Generation, msg.Classes); err != nil {
		// Stale result after a reset; nothing to show.
		return s, nil
	}

	s.phase = phaseSymptoms
	return s, nil
}

func (s *ScanFlowScreen) assess() (screen.Screen, tea.Cmd) {
	_, _, err := s.session.ComputeRisk()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	saveCmd := s.saveScan()
	resultScreen := result.New(s.session, s.narrSvc, s.eventRepo)
	return s, tea.Batch(saveCmd, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: resultScreen}
	})
}

func (s *ScanFlowScreen) saveScan() tea.Cmd {
	snap := s.session.Snapshot()
	data := store.ScanEventData{
		SessionID:        snap.SessionID,
		Description:      snap.Description,
		RiskScore:        snap.RiskScore,
		RiskLevel:        string(snap.RiskLevel),
		TierCancer:       snap.Tiers.Cancer,
		TierInflammatory: snap.Tiers.Inflammatory,
		TierFungal:       snap.Tiers.Fungal,
		TierNormal:       snap.Tiers.Normal,
	}
	for _, sym := range snap.Symptoms {
		data.Symptoms = append(data.Symptoms, string(sym))
	}
	if snap.Image != nil {
		data.ImagePath = snap.Image.Path
	}

	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return scanSavedMsg{}
		}
		return scanSavedMsg{Err: repo.AppendScan(context.Background(), data)}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *ScanFlowScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	switch s.phase {
	case phasePath:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Body.Bold(true).Render("Scan a skin photo")))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
		if s.errMsg != "" {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
		}

	case phaseClassifying:
		frame := spinnerFrames[s.spinnerFrame]
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Primary).Render(frame+" Analyzing photo...")))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("This can take a few seconds.")))

	case phaseSymptoms:
		snap := s.session.Snapshot()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Body.Render(fmt.Sprintf("Closest match: %s", snap.Description))))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.checklist.View()))
		if s.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
		}
	}

	return b.String()
}
