package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nmehta/dermascan/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with DermaScan styling. It carries an
// inline validation state set by the caller after submit.
type TextInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
	errText   string
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input with its validation marker and error line.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	if t.errText != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(t.errText)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit marks the input as submitted with a validation result. errText is
// shown beneath the input when invalid.
func (t *TextInput) Submit(valid bool, errText string) {
	t.submitted = true
	t.valid = valid
	if valid {
		t.errText = ""
	} else {
		t.errText = errText
	}
}

// ClearValidation resets the validation state, e.g. when the user edits.
func (t *TextInput) ClearValidation() {
	t.submitted = false
	t.errText = ""
}
