package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nmehta/dermascan/internal/llm"
	"github.com/nmehta/dermascan/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect and test the LLM provider configuration",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved provider configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				fmt.Println("No LLM provider configured.")
				fmt.Println()
				fmt.Println("Set one of: GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY")
				fmt.Println("or configure DERMASCAN_LLM_PROVIDER explicitly.")
				return nil
			}
			cfg = discovered
			fmt.Println("Provider discovered from standard API key environment.")
		}

		fmt.Printf("Provider: %s\n", cfg.Provider)
		fmt.Printf("Timeout:  %s\n", cfg.Timeout)
		fmt.Printf("Retries:  %d\n", cfg.Retry.MaxAttempts)
		return nil
	},
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a small test request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

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

		provider, err := llm.NewProviderFromEnv(ctx, repo)
		if err != nil {
			return err
		}

		fmt.Printf("Testing %s...\n", provider.ModelID())
		start := time.Now()

		ctx = llm.WithPurpose(ctx, "connectivity-test")
		resp, err := provider.Generate(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: `Reply with the JSON object {"ok": true}.`},
			},
			Schema: &llm.Schema{
				Name: "connectivity-test",
				Definition: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"ok": map[string]any{"type": "boolean"},
					},
					"required": []any{"ok"},
				},
			},
			MaxTokens: 64,
		})
		if err != nil {
			return fmt.Errorf("test request failed: %w", err)
		}

		var payload struct {
			OK bool `json:"ok"`
		}
		if err := json.Unmarshal(resp.Content, &payload); err != nil || !payload.OK {
			return fmt.Errorf("unexpected response: %s", resp.Content)
		}

		fmt.Printf("OK — %s responded in %s (%d in / %d out tokens)\n",
			resp.Model, time.Since(start).Round(time.Millisecond),
			resp.Usage.InputTokens, resp.Usage.OutputTokens)
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmTestCmd)
}
