package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/nmehta/dermascan/internal/classify"
	"github.com/nmehta/dermascan/internal/narrative"
	"github.com/nmehta/dermascan/internal/router"
	"github.com/nmehta/dermascan/internal/scan"
	"github.com/nmehta/dermascan/internal/screen"
	"github.com/nmehta/dermascan/internal/screens/history"
	"github.com/nmehta/dermascan/internal/screens/result"
	"github.com/nmehta/dermascan/internal/screens/scanflow"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/nmehta/dermascan/internal/ui/components"
	"github.com/nmehta/dermascan/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	session   *scan.Session
	menu      components.Menu
	scanCount int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen with injected dependencies.
func New(session *scan.Session, classifier classify.Classifier, narrSvc *narrative.Service, eventRepo store.EventRepo) *HomeScreen {
	var scanCount int
	if eventRepo != nil {
		scanCount, _ = eventRepo.ScanCount(context.Background())
	}

	scanHint := "Analyze a photo of a skin area"
	if classifier == nil {
		scanHint = "Unavailable: no LLM provider configured"
	}

	items := []components.MenuItem{
		{
			Label:    "NEW SCAN",
			Hint:     scanHint,
			Disabled: classifier == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					// A fresh scan always starts from an empty session.
					if session.State() != scan.StateEmpty {
						session.Reset()
					}
					return router.PushScreenMsg{
						Screen: scanflow.New(session, classifier, narrSvc, eventRepo),
					}
				}
			},
		},
		{
			Label: "LAST RESULT",
			Hint:  "Review the current session's assessment",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					if session.State() != scan.StateAssessed {
						return nil
					}
					return router.PushScreenMsg{
						Screen: result.New(session, narrSvc, eventRepo),
					}
				}
			},
		},
		{
			Label: "HISTORY",
			Hint:  "Browse recorded scans",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(eventRepo)}
				}
			},
		},
		{
			Label: "QUIT",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	return &HomeScreen{
		session:   session,
		menu:      components.NewMenu(items),
		scanCount: scanCount,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, renderBanner(width))

	status := "No scan in this session."
	switch h.session.State() {
	case scan.StateClassified:
		status = "Scan classified — symptoms pending."
	case scan.StateAssessed:
		snap := h.session.Snapshot()
		status = "Last assessment: " + snap.RiskLevel.DisplayName() + " risk (" + snap.Description + ")"
	}
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(status)))

	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render("Screening aid only — not a diagnosis.")))

	content := strings.Join(sections, "\n\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
