package components

import (
	"testing"

	"github.com/nmehta/dermascan/internal/ui/theme"
)

func TestNewBarSetsDefaultFill(t *testing.T) {
	b := NewBar("risk", 0.5, true, 40)
	if b.Color == nil {
		t.Error("NewBar should set a default fill color")
	}
}

func TestBarZeroValueRenders(t *testing.T) {
	// A zero-value Bar has no fill color; View falls back to the default.
	b := Bar{Percent: 0.5, Width: 20}
	if out := b.View(); out == "" {
		t.Error("zero-value bar rendered nothing")
	}
}

func TestBarCustomFill(t *testing.T) {
	b := NewBar("risk", 1.2, true, 40)
	b.Color = theme.RiskColor("critical")
	if out := b.View(); out == "" {
		t.Error("bar with custom fill rendered nothing")
	}
}
