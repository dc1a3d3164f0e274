package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nmehta/dermascan/internal/classify"
	"github.com/nmehta/dermascan/internal/imaging"
	"github.com/nmehta/dermascan/internal/llm"
	"github.com/nmehta/dermascan/internal/narrative"
	"github.com/nmehta/dermascan/internal/report"
	"github.com/nmehta/dermascan/internal/scan"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/nmehta/dermascan/internal/symptom"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Run one scan from the command line",
	Long: "Analyze a single skin photo without the TUI: classify the image,\n" +
		"apply reported symptoms, and print the risk assessment.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		symptomsFlag, _ := cmd.Flags().GetString("symptoms")
		withNarrative, _ := cmd.Flags().GetBool("narrative")
		lang, _ := cmd.Flags().GetString("lang")
		outPath, _ := cmd.Flags().GetString("out")

		img, err := imaging.LoadFile(args[0])
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		eventRepo, err := st.EventRepo()
		if err != nil {
			return fmt.Errorf("open event repo: %w", err)
		}

		provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
		if err != nil {
			return fmt.Errorf("LLM provider required for analysis: %w", err)
		}

		session := scan.NewSession()
		classifier := classify.NewVisionClassifier(provider)

		fmt.Println("Analyzing image...")
		if err := session.Classify(ctx, classifier, img); err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

		if symptomsFlag != "" {
			for _, name := range strings.Split(symptomsFlag, ",") {
				sym := symptom.Symptom(strings.TrimSpace(name))
				if !sym.Valid() {
					return fmt.Errorf("unknown symptom %q (valid: itching, bleeding, rapid_growth)", name)
				}
				if _, err := session.ToggleSymptom(sym); err != nil {
					return err
				}
			}
		}

		score, level, err := session.ComputeRisk()
		if err != nil {
			return err
		}

		if withNarrative {
			narrSvc := narrative.NewService(provider, narrative.DefaultConfig())
			defer narrSvc.Close()

			snap := session.Snapshot()
			req := &narrative.NarrativeRequest{
				Image:            snap.Image,
				Description:      snap.Description,
				TierCancer:       snap.Tiers.Cancer,
				TierInflammatory: snap.Tiers.Inflammatory,
				TierFungal:       snap.Tiers.Fungal,
				TierNormal:       snap.Tiers.Normal,
				RiskScore:        score,
				RiskLevel:        string(level),
				Language:         lang,
				Generation:       session.Generation(),
			}
			for _, sym := range snap.Symptoms {
				req.Symptoms = append(req.Symptoms, string(sym))
			}

			analysis, err := narrSvc.GenerateSync(ctx, req)
			if err != nil {
				fmt.Printf("Narrative unavailable: %v\n", err)
			} else if err := session.SetNarrative(req.Generation, analysis.Render()); err != nil {
				return err
			}
		}

		snap := session.Snapshot()
		printAssessment(snap, score)

		data := store.ScanEventData{
			SessionID:        snap.SessionID,
			Description:      snap.Description,
			RiskScore:        snap.RiskScore,
			RiskLevel:        string(snap.RiskLevel),
			TierCancer:       snap.Tiers.Cancer,
			TierInflammatory: snap.Tiers.Inflammatory,
			TierFungal:       snap.Tiers.Fungal,
			TierNormal:       snap.Tiers.Normal,
			ImagePath:        args[0],
		}
		for _, sym := range snap.Symptoms {
			data.Symptoms = append(data.Symptoms, string(sym))
		}
		if err := eventRepo.AppendScan(ctx, data); err != nil {
			fmt.Printf("Warning: failed to record scan: %v\n", err)
		}

		if outPath != "" {
			if err := report.WriteFile(outPath, snap); err != nil {
				return err
			}
			fmt.Printf("\nReport written to %s\n", outPath)
		}

		return nil
	},
}

func printAssessment(snap scan.Snapshot, score float64) {
	sep := strings.Repeat("─", 48)

	fmt.Println()
	fmt.Printf("Closest match: %s\n", snap.Description)
	fmt.Println(sep)
	fmt.Printf("  %-22s %6.1f%%\n", "Cancerous", snap.Tiers.Cancer*100)
	fmt.Printf("  %-22s %6.1f%%\n", "Inflammatory", snap.Tiers.Inflammatory*100)
	fmt.Printf("  %-22s %6.1f%%\n", "Fungal / infectious", snap.Tiers.Fungal*100)
	fmt.Printf("  %-22s %6.1f%%\n", "Normal", snap.Tiers.Normal*100)
	fmt.Println(sep)

	if len(snap.Symptoms) > 0 {
		names := make([]string, len(snap.Symptoms))
		for i, sym := range snap.Symptoms {
			names[i] = sym.DisplayName()
		}
		fmt.Printf("Symptoms: %s\n", strings.Join(names, ", "))
	}

	fmt.Printf("Risk score: %.2f — %s\n", score, strings.ToUpper(string(snap.RiskLevel)))
	fmt.Println(snap.RiskLevel.Advisory())

	if snap.Narrative != "" {
		fmt.Println()
		fmt.Println(snap.Narrative)
	}
}

func init() {
	analyzeCmd.Flags().StringP("symptoms", "s", "", "Comma-separated symptoms: itching,bleeding,rapid_growth")
	analyzeCmd.Flags().Bool("narrative", false, "Also generate narrative assessment notes")
	analyzeCmd.Flags().String("lang", "", "Language code for narrative text (default en)")
	analyzeCmd.Flags().StringP("out", "o", "", "Write a plain-text report to this path")
}
