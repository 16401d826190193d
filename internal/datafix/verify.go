package datafix

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kschroeder20/nba-database-2000-2025/internal/bbref"
	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
)

// PageFetcher fetches player profiles; satisfied by bbref.Client.
type PageFetcher interface {
	FetchPlayer(ctx context.Context, playerID string) (bbref.Profile, error)
}

// VerifyResult compares a stored player row with a fresh scrape.
type VerifyResult struct {
	PlayerID   string   `json:"player_id"`
	FullName   string   `json:"full_name"`
	Mismatches []string `json:"mismatches,omitempty"`
	FetchError string   `json:"fetch_error,omitempty"`
}

// OK reports whether the row matched the scraped page.
func (r VerifyResult) OK() bool {
	return r.FetchError == "" && len(r.Mismatches) == 0
}

// Verifier re-scrapes player pages and checks the normalized fields
// against the database.
type Verifier struct {
	q       db.Queryer
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewVerifier constructs a Verifier.
func NewVerifier(q db.Queryer, fetcher PageFetcher, logger *slog.Logger) *Verifier {
	return &Verifier{q: q, fetcher: fetcher, logger: logger}
}

// SampleIDs picks verification candidates: one undrafted player plus up to
// limit drafted players.
func (v *Verifier) SampleIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 2
	}

	var ids []string
	var undrafted string
	err := v.q.QueryRowContext(ctx,
		`SELECT player_id FROM players WHERE draft_round IS NULL LIMIT 1`).Scan(&undrafted)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		ids = append(ids, undrafted)
	}

	rows, err := v.q.QueryContext(ctx,
		`SELECT player_id FROM players WHERE draft_round IS NOT NULL ORDER BY player_id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Verify scrapes each player page and compares it with the stored row.
func (v *Verifier) Verify(ctx context.Context, ids []string) ([]VerifyResult, error) {
	results := make([]VerifyResult, 0, len(ids))
	for _, id := range ids {
		result, err := v.verifyOne(ctx, id)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
		logging.Info(v.logger, "verified player",
			slog.String("player_id", id),
			slog.Int("mismatches", len(result.Mismatches)),
		)
	}
	return results, nil
}

func (v *Verifier) verifyOne(ctx context.Context, id string) (VerifyResult, error) {
	result := VerifyResult{PlayerID: id}

	var (
		fullName   string
		shoots     sql.NullString
		draftRound sql.NullInt64
		draftPick  sql.NullInt64
	)
	err := v.q.QueryRowContext(ctx,
		`SELECT full_name, shoots, draft_round, draft_pick FROM players WHERE player_id = ?`, id).
		Scan(&fullName, &shoots, &draftRound, &draftPick)
	if errors.Is(err, sql.ErrNoRows) {
		return VerifyResult{}, fmt.Errorf("player %s not in database", id)
	}
	if err != nil {
		return VerifyResult{}, err
	}
	result.FullName = fullName

	profile, err := v.fetcher.FetchPlayer(ctx, id)
	if err != nil {
		// Scrape failures are reported per player, not fatal to the run.
		result.FetchError = err.Error()
		return result, nil
	}

	if profile.Shoots != nil {
		want := NormalizeShoots(*profile.Shoots)
		if !shoots.Valid || shoots.String != want {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("shoots: db=%s page=%s", nullable(shoots), want))
		}
	}

	if profile.Undrafted {
		if draftRound.Valid {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("draft_round: db=%d page=NULL (undrafted)", draftRound.Int64))
		}
	} else if profile.DraftRound != nil {
		want := NormalizeDraftRound(*profile.DraftRound)
		if !draftRound.Valid || draftRound.Int64 != want {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("draft_round: db=%s page=%d", nullableInt(draftRound), want))
		}
	}

	if profile.DraftPick != nil {
		if !draftPick.Valid || draftPick.Int64 != *profile.DraftPick {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("draft_pick: db=%s page=%d", nullableInt(draftPick), *profile.DraftPick))
		}
	}

	return result, nil
}

func nullable(v sql.NullString) string {
	if !v.Valid {
		return "NULL"
	}
	return v.String
}

func nullableInt(v sql.NullInt64) string {
	if !v.Valid {
		return "NULL"
	}
	return fmt.Sprintf("%d", v.Int64)
}
