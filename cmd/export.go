package cmd

import (
	"context"
	"fmt"

	"github.com/nmehta/dermascan/internal/report"
	"github.com/nmehta/dermascan/internal/risk"
	"github.com/nmehta/dermascan/internal/scan"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/nmehta/dermascan/internal/symptom"
	"github.com/nmehta/dermascan/internal/triage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the most recent scan as a plain-text report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		repo, err := s.EventRepo()
		if err != nil {
			return fmt.Errorf("open event repo: %w", err)
		}

		scans, err := repo.RecentScans(context.Background(), 1)
		if err != nil {
			return fmt.Errorf("query scans: %w", err)
		}
		if len(scans) == 0 {
			return fmt.Errorf("no scans recorded yet")
		}

		snap := snapshotFromRecord(scans[0])
		if err := report.WriteFile(args[0], snap); err != nil {
			return err
		}

		fmt.Printf("Report written to %s\n", args[0])
		return nil
	},
}

// snapshotFromRecord rebuilds a reportable snapshot from a persisted scan.
// Condition detail and narrative are not persisted, so the report covers the
// tier breakdown, symptoms, and risk assessment.
func snapshotFromRecord(rec store.ScanRecord) scan.Snapshot {
	snap := scan.Snapshot{
		SessionID:   rec.SessionID,
		State:       scan.StateAssessed,
		Description: rec.Description,
		Tiers: triage.TierBreakdown{
			Cancer:       rec.TierCancer,
			Inflammatory: rec.TierInflammatory,
			Fungal:       rec.TierFungal,
			Normal:       rec.TierNormal,
		},
		RiskScore: rec.RiskScore,
		RiskLevel: risk.Level(rec.RiskLevel),
	}
	for _, name := range rec.Symptoms {
		snap.Symptoms = append(snap.Symptoms, symptom.Symptom(name))
	}
	return snap
}
