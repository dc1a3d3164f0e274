package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nmehta/dermascan/internal/app"
	"github.com/nmehta/dermascan/internal/classify"
	"github.com/nmehta/dermascan/internal/llm"
	"github.com/nmehta/dermascan/internal/narrative"
	"github.com/nmehta/dermascan/internal/scan"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
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

	deps := app.Deps{
		Session:   scan.NewSession(),
		EventRepo: eventRepo,
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Scanning will be unavailable until an API key is set.")
	} else {
		deps.Classifier = classify.NewVisionClassifier(provider)
		narrSvc := narrative.NewService(provider, narrative.DefaultConfig())
		defer narrSvc.Close()
		deps.NarrativeService = narrSvc
		deps.ModelID = provider.ModelID()
	}

	return app.Run(deps)
}
