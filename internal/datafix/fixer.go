package datafix

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
)

// FixEntry records one changed player row.
type FixEntry struct {
	PlayerID string `json:"player_id"`
	FullName string `json:"full_name"`
	Before   string `json:"before"`
	After    string `json:"after"`
}

// Report summarizes one datafix run.
type Report struct {
	GeneratedAt      time.Time        `json:"generated_at"`
	DraftRoundFixes  []FixEntry       `json:"draft_round_fixes"`
	ShootsFixes      []FixEntry       `json:"shoots_fixes"`
	UndraftedCount   int64            `json:"undrafted_count"`
	ShootsCounts     map[string]int64 `json:"shoots_distribution"`
	DraftRoundCounts map[string]int64 `json:"draft_round_distribution"`
}

// Fixer applies the players-table data-quality rules inside a single
// transaction: capped draft rounds and normalized shooting hands.
type Fixer struct {
	handle *db.Handle
	logger *slog.Logger
	now    func() time.Time

	// DryRun rolls the transaction back instead of committing, so the
	// report shows what would change.
	DryRun bool
}

// NewFixer constructs a Fixer over a read-write handle.
func NewFixer(handle *db.Handle, logger *slog.Logger) *Fixer {
	return &Fixer{handle: handle, logger: logger, now: time.Now}
}

// Run applies all fixes and returns the report. The transaction rolls back
// on any failure, leaving the database untouched.
func (f *Fixer) Run(ctx context.Context) (Report, error) {
	tx, err := f.handle.BeginTx(ctx, nil)
	if err != nil {
		return Report{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	report := Report{GeneratedAt: f.now().UTC()}

	if report.DraftRoundFixes, err = f.fixDraftRounds(ctx, tx); err != nil {
		return Report{}, err
	}
	if report.ShootsFixes, err = f.fixShoots(ctx, tx); err != nil {
		return Report{}, err
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM players WHERE draft_round IS NULL`).Scan(&report.UndraftedCount); err != nil {
		return Report{}, fmt.Errorf("count undrafted: %w", err)
	}

	if report.ShootsCounts, err = distribution(ctx, tx, "shoots"); err != nil {
		return Report{}, err
	}
	if report.DraftRoundCounts, err = distribution(ctx, tx, "draft_round"); err != nil {
		return Report{}, err
	}

	if f.DryRun {
		if err := tx.Rollback(); err != nil {
			return Report{}, fmt.Errorf("rollback: %w", err)
		}
	} else if err := tx.Commit(); err != nil {
		return Report{}, fmt.Errorf("commit: %w", err)
	}

	logging.Info(f.logger, "datafix complete",
		slog.Int("draft_round_fixes", len(report.DraftRoundFixes)),
		slog.Int("shoots_fixes", len(report.ShootsFixes)),
		slog.Int64("undrafted", report.UndraftedCount),
	)
	return report, nil
}

func (f *Fixer) fixDraftRounds(ctx context.Context, tx *sql.Tx) ([]FixEntry, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT player_id, full_name, draft_round FROM players WHERE draft_round > ?`, MaxDraftRound)
	if err != nil {
		return nil, fmt.Errorf("find invalid rounds: %w", err)
	}
	defer rows.Close()

	var fixes []FixEntry
	for rows.Next() {
		var entry FixEntry
		var round int64
		if err := rows.Scan(&entry.PlayerID, &entry.FullName, &round); err != nil {
			return nil, err
		}
		entry.Before = fmt.Sprintf("%d", round)
		entry.After = fmt.Sprintf("%d", NormalizeDraftRound(round))
		fixes = append(fixes, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(fixes) > 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE players SET draft_round = ? WHERE draft_round > ?`, MaxDraftRound, MaxDraftRound); err != nil {
			return nil, fmt.Errorf("cap draft rounds: %w", err)
		}
	}
	return fixes, nil
}

func (f *Fixer) fixShoots(ctx context.Context, tx *sql.Tx) ([]FixEntry, error) {
	// Left takes priority over Right for values containing both.
	var fixes []FixEntry
	for _, target := range []string{"Left", "Right"} {
		batch, err := f.fixShootsTo(ctx, tx, target)
		if err != nil {
			return nil, err
		}
		fixes = append(fixes, batch...)
	}
	return fixes, nil
}

func (f *Fixer) fixShootsTo(ctx context.Context, tx *sql.Tx, target string) ([]FixEntry, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT player_id, full_name, shoots FROM players WHERE shoots LIKE ? AND shoots != ?`,
		"%"+target+"%", target)
	if err != nil {
		return nil, fmt.Errorf("find shoots issues: %w", err)
	}
	defer rows.Close()

	var fixes []FixEntry
	for rows.Next() {
		var entry FixEntry
		if err := rows.Scan(&entry.PlayerID, &entry.FullName, &entry.Before); err != nil {
			return nil, err
		}
		entry.After = target
		fixes = append(fixes, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(fixes) > 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE players SET shoots = ? WHERE shoots LIKE ? AND shoots != ?`,
			target, "%"+target+"%", target); err != nil {
			return nil, fmt.Errorf("normalize shoots: %w", err)
		}
	}
	return fixes, nil
}

func distribution(ctx context.Context, tx *sql.Tx, column string) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, COUNT(*) FROM players GROUP BY %s ORDER BY %s`, column, column, column))
	if err != nil {
		return nil, fmt.Errorf("distribution %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var value sql.NullString
		var count int64
		if err := rows.Scan(&value, &count); err != nil {
			return nil, err
		}
		key := "NULL"
		if value.Valid {
			key = value.String
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
