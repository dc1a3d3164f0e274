package scanflow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/nmehta/dermascan/internal/classify"
	"github.com/nmehta/dermascan/internal/scan"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/nmehta/dermascan/internal/triage"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	scans []store.ScanEventData
}

func (m *mockEventRepo) AppendScan(_ context.Context, data store.ScanEventData) error {
	m.scans = append(m.scans, data)
	return nil
}
func (m *mockEventRepo) RecentScans(_ context.Context, _ int) ([]store.ScanRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) ScanCount(_ context.Context) (int, error) { return len(m.scans), nil }
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) Purge(_ context.Context) error { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func writeLesionImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lesion.jpg")
	data := append([]byte{0xFF, 0xD8, 0xFF}, []byte("testimage")...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func testScanScreen(results ...classify.MockResult) (*ScanFlowScreen, *scan.Session, *mockEventRepo) {
	session := scan.NewSession()
	repo := &mockEventRepo{}
	s := New(session, classify.NewMockClassifier(results...), nil, repo)
	return s, session, repo
}

func TestEmptyPathRejected(t *testing.T) {
	s, session, _ := testScanScreen()

	s.Update(specialKey(tea.KeyEnter))

	if s.phase != phasePath {
		t.Errorf("phase = %v, want phasePath", s.phase)
	}
	if session.ClassificationPending() {
		t.Error("no classification should start for an empty path")
	}
}

func TestUnreadablePathRejected(t *testing.T) {
	s, session, _ := testScanScreen()
	s.input.Model.SetValue("/nonexistent/lesion.jpg")

	s.Update(specialKey(tea.KeyEnter))

	if s.phase != phasePath {
		t.Errorf("phase = %v, want phasePath", s.phase)
	}
	if session.ClassificationPending() {
		t.Error("no classification should start for an unreadable path")
	}
}

func TestClassificationFlow(t *testing.T) {
	s, session, _ := testScanScreen()
	s.input.Model.SetValue(writeLesionImage(t))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a classification command")
	}
	if s.phase != phaseClassifying {
		t.Fatalf("phase = %v, want phaseClassifying", s.phase)
	}
	if !session.ClassificationPending() {
		t.Fatal("classification should be pending")
	}

	s.Update(classifiedMsg{
		Generation: session.Generation(),
		Classes: []triage.ClassProbability{
			{Name: "melanoma", Probability: 0.8},
			{Name: "normal skin", Probability: 0.1},
		},
	})

	if s.phase != phaseSymptoms {
		t.Errorf("phase = %v, want phaseSymptoms", s.phase)
	}
	if session.State() != scan.StateClassified {
		t.Errorf("session state = %v, want StateClassified", session.State())
	}
}

func TestClassificationFailureReturnsToPath(t *testing.T) {
	s, session, _ := testScanScreen()
	s.input.Model.SetValue(writeLesionImage(t))
	s.Update(specialKey(tea.KeyEnter))

	s.Update(classifiedMsg{
		Generation: session.Generation(),
		Err:        errors.New("model offline"),
	})

	if s.phase != phasePath {
		t.Errorf("phase = %v, want phasePath", s.phase)
	}
	if s.errMsg == "" {
		t.Error("expected an error message")
	}
	if session.ClassificationPending() {
		t.Error("pending flag should be cleared after failure")
	}
}

func TestStaleClassificationDiscarded(t *testing.T) {
	s, session, _ := testScanScreen()
	s.input.Model.SetValue(writeLesionImage(t))
	s.Update(specialKey(tea.KeyEnter))

	gen := session.Generation()
	session.Reset()

	s.Update(classifiedMsg{
		Generation: gen,
		Classes:    []triage.ClassProbability{{Name: "melanoma", Probability: 0.8}},
	})

	if session.State() != scan.StateEmpty {
		t.Errorf("session state = %v, want StateEmpty after reset", session.State())
	}
	if s.phase == phaseSymptoms {
		t.Error("stale result should not advance the flow")
	}
}

func TestSymptomToggleReachesSession(t *testing.T) {
	s, session, _ := testScanScreen()
	s.input.Model.SetValue(writeLesionImage(t))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(classifiedMsg{
		Generation: session.Generation(),
		Classes:    []triage.ClassProbability{{Name: "eczema", Probability: 0.5}},
	})

	// Toggle the first symptom in the checklist.
	s.Update(keyPress(' '))

	if got := len(session.Snapshot().Symptoms); got != 1 {
		t.Errorf("symptom count = %d, want 1", got)
	}

	// Toggling again removes it.
	s.Update(keyPress(' '))
	if got := len(session.Snapshot().Symptoms); got != 0 {
		t.Errorf("symptom count = %d, want 0 after second toggle", got)
	}
}

func TestAssessComputesRiskAndPersists(t *testing.T) {
	s, session, repo := testScanScreen()
	s.input.Model.SetValue(writeLesionImage(t))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(classifiedMsg{
		Generation: session.Generation(),
		Classes:    []triage.ClassProbability{{Name: "melanoma", Probability: 0.8}},
	})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected save and navigation commands")
	}
	if session.State() != scan.StateAssessed {
		t.Errorf("session state = %v, want StateAssessed", session.State())
	}

	// The save command is best-effort and independently runnable.
	msg := s.saveScan()()
	saved, ok := msg.(scanSavedMsg)
	if !ok {
		t.Fatalf("msg = %T, want scanSavedMsg", msg)
	}
	if saved.Err != nil {
		t.Errorf("save error: %v", saved.Err)
	}
	if len(repo.scans) != 1 {
		t.Fatalf("persisted scans = %d, want 1", len(repo.scans))
	}
	if repo.scans[0].RiskLevel == "" {
		t.Error("persisted scan should carry a risk level")
	}
}

func TestEscDuringSymptomsResetsSession(t *testing.T) {
	s, session, _ := testScanScreen()
	s.input.Model.SetValue(writeLesionImage(t))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(classifiedMsg{
		Generation: session.Generation(),
		Classes:    []triage.ClassProbability{{Name: "psoriasis", Probability: 0.4}},
	})

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if session.State() != scan.StateEmpty {
		t.Errorf("session state = %v, want StateEmpty", session.State())
	}
}
