// Package report renders a completed scan session to a plain-text document
// suitable for saving or sharing with a clinician.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nmehta/dermascan/internal/scan"
)

const disclaimer = "This report is produced by an automated screening aid. It is not a medical\n" +
	"diagnosis. Always consult a qualified dermatologist."

// Render produces the plain-text report for a snapshot.
func Render(snap scan.Snapshot, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("DERMASCAN SKIN ASSESSMENT REPORT\n")
	b.WriteString(strings.Repeat("=", 48) + "\n\n")
	fmt.Fprintf(&b, "Session:   %s\n", snap.SessionID)
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04 MST"))
	if snap.Image != nil && snap.Image.Path != "" {
		fmt.Fprintf(&b, "Image:     %s\n", snap.Image.Path)
	}
	b.WriteString("\n")

	if snap.State == scan.StateEmpty {
		b.WriteString("No scan has been performed in this session.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Top match: %s\n\n", snap.Description)

	b.WriteString("Tier breakdown\n")
	b.WriteString(strings.Repeat("-", 48) + "\n")
	fmt.Fprintf(&b, "  %-22s %6.1f%%\n", "Cancerous", snap.Tiers.Cancer*100)
	fmt.Fprintf(&b, "  %-22s %6.1f%%\n", "Inflammatory", snap.Tiers.Inflammatory*100)
	fmt.Fprintf(&b, "  %-22s %6.1f%%\n", "Fungal / infectious", snap.Tiers.Fungal*100)
	fmt.Fprintf(&b, "  %-22s %6.1f%%\n", "Normal", snap.Tiers.Normal*100)
	b.WriteString("\n")

	if len(snap.Conditions) > 0 {
		b.WriteString("Condition detail\n")
		b.WriteString(strings.Repeat("-", 48) + "\n")
		for _, cond := range snap.Conditions.Ranked() {
			p := snap.Conditions[cond]
			if p == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %-28s %6.1f%%\n", cond.DisplayName(), p*100)
		}
		b.WriteString("\n")
	}

	b.WriteString("Reported symptoms\n")
	b.WriteString(strings.Repeat("-", 48) + "\n")
	if len(snap.Symptoms) == 0 {
		b.WriteString("  none\n")
	} else {
		for _, s := range snap.Symptoms {
			fmt.Fprintf(&b, "  %s\n", s.DisplayName())
		}
	}
	b.WriteString("\n")

	if snap.State == scan.StateAssessed {
		b.WriteString("Risk assessment\n")
		b.WriteString(strings.Repeat("-", 48) + "\n")
		fmt.Fprintf(&b, "  Score: %.2f\n", snap.RiskScore)
		fmt.Fprintf(&b, "  Level: %s\n", snap.RiskLevel.DisplayName())
		fmt.Fprintf(&b, "  %s\n", snap.RiskLevel.Advisory())
		b.WriteString("\n")
	}

	if snap.Narrative != "" {
		b.WriteString("Assessment notes\n")
		b.WriteString(strings.Repeat("-", 48) + "\n")
		b.WriteString(snap.Narrative + "\n\n")
	}

	b.WriteString(disclaimer + "\n")
	return b.String()
}

// WriteFile renders the snapshot and writes it to path.
func WriteFile(path string, snap scan.Snapshot) error {
	content := Render(snap, time.Now())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
