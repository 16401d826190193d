package datafix

import "strings"

// MaxDraftRound caps draft rounds; the NBA draft has had two rounds
// since 1989 and every player in this database was drafted after that.
const MaxDraftRound = 2

// NormalizeShoots reduces a scraped shooting-hand value to exactly "Left"
// or "Right". Ambiguous concatenations like "LeftRight" favor Left,
// matching how the duplicated suffix was introduced. Unrecognized values
// pass through unchanged.
func NormalizeShoots(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "left"):
		return "Left"
	case strings.Contains(lower, "right"):
		return "Right"
	}
	return trimmed
}

// NormalizeDraftRound caps a draft round at MaxDraftRound. NULL rounds
// (undrafted players) are handled by callers and never reach here as zero.
func NormalizeDraftRound(round int64) int64 {
	if round > MaxDraftRound {
		return MaxDraftRound
	}
	return round
}
