package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := r.seq.Next()
	if err != nil {
		return err
	}

	success := 0
	if data.Success {
		success = 1
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO llm_events (
		sequence, provider, model, purpose,
		input_tokens, output_tokens, latency_ms, success, error_message
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq,
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		success,
		data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}
