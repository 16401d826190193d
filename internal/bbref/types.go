package bbref

// Profile holds the fields scraped from a basketball-reference player page.
// Raw values are reported as-is; normalization happens in datafix.
type Profile struct {
	PlayerID  string
	FullName  string
	Shoots    *string
	Undrafted bool
	DraftYear *int64
	// DraftRound carries whatever the page says, including historical
	// rounds greater than 2.
	DraftRound *int64
	DraftPick  *int64
	DraftTeam  *string
}
