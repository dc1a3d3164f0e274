package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nmehta/dermascan/internal/classify"
	"github.com/nmehta/dermascan/internal/narrative"
	"github.com/nmehta/dermascan/internal/router"
	"github.com/nmehta/dermascan/internal/scan"
	"github.com/nmehta/dermascan/internal/screen"
	"github.com/nmehta/dermascan/internal/screens/home"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/nmehta/dermascan/internal/ui/layout"
)

// Deps bundles the services the TUI needs. Classifier and NarrativeService
// may be nil when no LLM provider is configured; the affected flows then
// surface configuration guidance instead of running.
type Deps struct {
	Session          *scan.Session
	Classifier       classify.Classifier
	NarrativeService *narrative.Service
	EventRepo        store.EventRepo

	// ModelID labels the header with the active provider model.
	ModelID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	deps      Deps
	scanCount int
	width     int
	height    int
}

func newAppModel(deps Deps) AppModel {
	var scanCount int
	if deps.EventRepo != nil {
		scanCount, _ = deps.EventRepo.ScanCount(context.Background())
	}

	homeScreen := home.New(deps.Session, deps.Classifier, deps.NarrativeService, deps.EventRepo)
	return AppModel{
		router:    router.New(homeScreen),
		deps:      deps,
		scanCount: scanCount,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Screens handle esc themselves so they can clean up in-flight work.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.deps.ModelID, m.scanCount, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
