package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nmehta/dermascan/internal/ui/theme"
)

// ChecklistItem is one toggleable entry.
type ChecklistItem struct {
	ID      string
	Label   string
	Checked bool
}

// Checklist is a multi-select toggle list. Space toggles the highlighted
// item; the caller reads toggles via the OnToggle callback or Checked().
type Checklist struct {
	Prompt   string
	Items    []ChecklistItem
	Selected int

	// OnToggle fires when an item is toggled, with the item ID and new state.
	OnToggle func(id string, checked bool) tea.Cmd
}

// NewChecklist creates a checklist with all items unchecked.
func NewChecklist(prompt string, items []ChecklistItem) Checklist {
	return Checklist{
		Prompt: prompt,
		Items:  items,
	}
}

// Init returns nil.
func (c Checklist) Init() tea.Cmd {
	return nil
}

// Update handles navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Items)-1 {
			c.Selected++
		}
	case " ", "space":
		if c.Selected >= 0 && c.Selected < len(c.Items) {
			item := &c.Items[c.Selected]
			item.Checked = !item.Checked
			if c.OnToggle != nil {
				return c, c.OnToggle(item.ID, item.Checked)
			}
		}
	}

	return c, nil
}

// View renders the checklist.
func (c Checklist) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt) + "\n\n"

	for i, item := range c.Items {
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}

		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}

		line := prefix + box + " " + item.Label

		switch {
		case i == c.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case item.Checked:
			s += lipgloss.NewStyle().Foreground(theme.Success).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}

// Checked returns the IDs of all checked items in display order.
func (c Checklist) Checked() []string {
	var out []string
	for _, item := range c.Items {
		if item.Checked {
			out = append(out, item.ID)
		}
	}
	return out
}
