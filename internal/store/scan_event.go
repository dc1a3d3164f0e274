package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (r *eventRepo) AppendScan(ctx context.Context, data ScanEventData) error {
	seq, err := r.seq.Next()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO scan_events (
		sequence, session_id, description, risk_score, risk_level,
		tier_cancer, tier_inflammatory, tier_fungal, tier_normal,
		symptoms, image_path
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq,
		data.SessionID,
		data.Description,
		data.RiskScore,
		data.RiskLevel,
		data.TierCancer,
		data.TierInflammatory,
		data.TierFungal,
		data.TierNormal,
		strings.Join(data.Symptoms, ","),
		data.ImagePath,
	)
	if err != nil {
		return fmt.Errorf("append scan event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `SELECT
		sequence, timestamp, session_id, description, risk_score, risk_level,
		tier_cancer, tier_inflammatory, tier_fungal, tier_normal,
		symptoms, image_path
	FROM scan_events ORDER BY sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scan events: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		var ts string
		var symptoms string
		if err := rows.Scan(
			&rec.Sequence, &ts, &rec.SessionID, &rec.Description,
			&rec.RiskScore, &rec.RiskLevel,
			&rec.TierCancer, &rec.TierInflammatory, &rec.TierFungal, &rec.TierNormal,
			&symptoms, &rec.ImagePath,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.Timestamp = parseTimestamp(ts)
		if symptoms != "" {
			rec.Symptoms = strings.Split(symptoms, ",")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) ScanCount(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scan_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count scan events: %w", err)
	}
	return n, nil
}

func (r *eventRepo) Purge(ctx context.Context) error {
	for _, table := range []string{"scan_events", "llm_events"} {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("purge %s: %w", table, err)
		}
	}
	return nil
}

// parseTimestamp handles the formats SQLite emits for CURRENT_TIMESTAMP.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
