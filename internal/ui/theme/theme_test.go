package theme

import (
	"image/color"
	"testing"
)

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestRiskColor(t *testing.T) {
	tests := []struct {
		level string
		want  color.Color
	}{
		{"critical", RiskCritical},
		{"high", RiskHigh},
		{"moderate", RiskModerate},
		{"low", RiskLow},
		{"", RiskLow},
		{"unknown", RiskLow},
	}

	for _, tt := range tests {
		if got := RiskColor(tt.level); !sameColor(got, tt.want) {
			t.Errorf("RiskColor(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
