package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nmehta/dermascan/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scans",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

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

		scans, err := repo.RecentScans(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query scans: %w", err)
		}

		if len(scans) == 0 {
			fmt.Println("No scans recorded yet.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-26s  %-8s  %-5s  %s\n",
			"Seq", "Timestamp", "Classification", "Risk", "Score", "Symptoms")
		fmt.Println(strings.Repeat("─", 90))

		for _, rec := range scans {
			symptoms := "-"
			if len(rec.Symptoms) > 0 {
				symptoms = strings.Join(rec.Symptoms, ",")
			}
			desc := rec.Description
			if len(desc) > 26 {
				desc = desc[:26]
			}
			fmt.Printf("%-5d  %-16s  %-26s  %-8s  %.2f   %s\n",
				rec.Sequence,
				rec.Timestamp.Local().Format("2006-01-02 15:04"),
				desc,
				strings.ToUpper(rec.RiskLevel),
				rec.RiskScore,
				symptoms,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of scans to show")
}
