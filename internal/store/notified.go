package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"solscreener/internal/scan"
)

// NotifiedEntry is one row of the notified table.
type NotifiedEntry struct {
	Mint           string
	Symbol         string
	Name           string
	Score          float64
	LastNotifiedAt time.Time
}

// FilterNew returns the projects whose mint has not been notified within
// the dedup window, preserving input order.
func (s *Store) FilterNew(ctx context.Context, projects []scan.Project) ([]scan.Project, error) {
	ctx = ensureContext(ctx)
	cutoff := s.now().UTC().Add(-dedupWindow)

	fresh := make([]scan.Project, 0, len(projects))
	for _, project := range projects {
		var last string
		err := s.db.QueryRowContext(ctx,
			"SELECT last_notified_at FROM notified WHERE mint = ?", project.Mint,
		).Scan(&last)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			fresh = append(fresh, project)
			continue
		case err != nil:
			return nil, fmt.Errorf("lookup notified %s: %w", project.Mint, err)
		}

		notifiedAt, err := time.Parse(time.RFC3339, last)
		if err != nil || notifiedAt.Before(cutoff) {
			fresh = append(fresh, project)
		}
	}
	return fresh, nil
}

// ScoreChanges returns the previously recorded score per mint for projects
// already known to the store.
func (s *Store) ScoreChanges(ctx context.Context, projects []scan.Project) (map[string]float64, error) {
	ctx = ensureContext(ctx)
	previous := make(map[string]float64)
	for _, project := range projects {
		var score float64
		err := s.db.QueryRowContext(ctx,
			"SELECT score FROM notified WHERE mint = ?", project.Mint,
		).Scan(&score)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lookup score %s: %w", project.Mint, err)
		}
		previous[project.Mint] = score
	}
	return previous, nil
}

// MarkNotified upserts the given projects as notified now and prunes
// entries older than the retention window.
func (s *Store) MarkNotified(ctx context.Context, projects []scan.Project) error {
	ctx = ensureContext(ctx)
	now := s.now().UTC()
	stamp := now.Format(time.RFC3339)

	for _, project := range projects {
		err := s.execWithRetry(ctx, `
			INSERT INTO notified (mint, symbol, name, score, last_notified_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(mint) DO UPDATE SET
				symbol = excluded.symbol,
				name = excluded.name,
				score = excluded.score,
				last_notified_at = excluded.last_notified_at`,
			project.Mint, project.Symbol, project.Name, project.TotalScore, stamp)
		if err != nil {
			return fmt.Errorf("mark notified %s: %w", project.Mint, err)
		}
	}

	pruneCutoff := now.Add(-pruneAfter).Format(time.RFC3339)
	if err := s.execWithRetry(ctx,
		"DELETE FROM notified WHERE last_notified_at < ?", pruneCutoff); err != nil {
		return fmt.Errorf("prune notified: %w", err)
	}
	return nil
}

// NotifiedEntries lists notified mints, newest first.
func (s *Store) NotifiedEntries(ctx context.Context, limit int) ([]NotifiedEntry, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT mint, symbol, name, score, last_notified_at
		FROM notified ORDER BY last_notified_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list notified: %w", err)
	}
	defer rows.Close()

	var entries []NotifiedEntry
	for rows.Next() {
		var entry NotifiedEntry
		var stamp string
		if err := rows.Scan(&entry.Mint, &entry.Symbol, &entry.Name, &entry.Score, &stamp); err != nil {
			return nil, fmt.Errorf("scan notified row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(stamp)); err == nil {
			entry.LastNotifiedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
