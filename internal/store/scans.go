package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"solscreener/internal/scan"
)

// TopEntry is a compact snapshot of one top-ranked project in a scan.
type TopEntry struct {
	Mint   string  `json:"mint"`
	Symbol string  `json:"symbol"`
	Score  float64 `json:"score"`
}

// ScanRecord is one row of the scan history.
type ScanRecord struct {
	ID           int64
	SessionID    string
	StartedAt    time.Time
	ProjectCount int
	Top          []TopEntry
}

// Stats summarizes the last 24 hours of screener activity.
type Stats struct {
	Scans    int
	Projects int
	Notified int
}

// SaveScan records one screening run and trims history beyond the cap.
func (s *Store) SaveScan(ctx context.Context, sessionID string, startedAt time.Time, projects []scan.Project) error {
	ctx = ensureContext(ctx)

	top := make([]TopEntry, 0, len(projects))
	for i, project := range projects {
		if i >= 10 {
			break
		}
		top = append(top, TopEntry{Mint: project.Mint, Symbol: project.Symbol, Score: project.TotalScore})
	}
	topJSON, err := json.Marshal(top)
	if err != nil {
		return fmt.Errorf("encode scan top: %w", err)
	}

	if err := s.execWithRetry(ctx, `
		INSERT INTO scans (session_id, started_at, project_count, top_json)
		VALUES (?, ?, ?, ?)`,
		sessionID, startedAt.UTC().Format(time.RFC3339), len(projects), string(topJSON)); err != nil {
		return fmt.Errorf("save scan: %w", err)
	}

	if err := s.execWithRetry(ctx, `
		DELETE FROM scans WHERE id NOT IN (
			SELECT id FROM scans ORDER BY id DESC LIMIT ?
		)`, historyLimit); err != nil {
		return fmt.Errorf("trim scan history: %w", err)
	}
	return nil
}

// RecentScans lists scan records, newest first.
func (s *Store) RecentScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, started_at, project_count, top_json
		FROM scans ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var record ScanRecord
		var stamp, topJSON string
		if err := rows.Scan(&record.ID, &record.SessionID, &stamp, &record.ProjectCount, &topJSON); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(stamp)); err == nil {
			record.StartedAt = parsed
		}
		if err := json.Unmarshal([]byte(topJSON), &record.Top); err != nil {
			record.Top = nil
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ScanStats computes 24h activity counters for the daily report.
func (s *Store) ScanStats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	cutoff := s.now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)

	var stats Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1), COALESCE(SUM(project_count), 0)
		FROM scans WHERE started_at >= ?`, cutoff).Scan(&stats.Scans, &stats.Projects)
	if err != nil {
		return Stats{}, fmt.Errorf("scan stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM notified WHERE last_notified_at >= ?", cutoff,
	).Scan(&stats.Notified)
	if err != nil {
		return Stats{}, fmt.Errorf("notified stats: %w", err)
	}
	return stats, nil
}
