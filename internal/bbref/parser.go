package bbref

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	shootsPattern    = regexp.MustCompile(`Shoots:\s*(\S+)`)
	draftTeamPattern = regexp.MustCompile(`Draft:\s*(.+?),`)
	roundPattern     = regexp.MustCompile(`(\d+)\w*\s*round`)
	pickPattern      = regexp.MustCompile(`(\d+)\w*\s*pick`)
	yearPattern      = regexp.MustCompile(`(\d{4})\s*NBA\s*Draft`)
)

// ParsePlayerPage extracts the profile fields from a player page document.
func ParsePlayerPage(playerID string, body io.Reader) (Profile, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{PlayerID: playerID}
	profile.FullName = parseName(doc)

	doc.Find("div#meta p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if strings.Contains(text, "Shoots:") {
			if m := shootsPattern.FindStringSubmatch(text); m != nil {
				raw := strings.TrimSpace(m[1])
				profile.Shoots = &raw
			}
		}
		if strings.Contains(text, "Draft:") {
			parseDraft(text, &profile)
		}
	})

	return profile, nil
}

func parseName(doc *goquery.Document) string {
	heading := doc.Find("h1").First()
	if span := heading.Find("span").First(); span.Length() > 0 {
		return strings.TrimSpace(span.Text())
	}
	return strings.TrimSpace(heading.Text())
}

func parseDraft(text string, profile *Profile) {
	if strings.Contains(strings.ToLower(text), "undrafted") {
		profile.Undrafted = true
		profile.DraftYear = nil
		profile.DraftRound = nil
		profile.DraftPick = nil
		profile.DraftTeam = nil
		return
	}

	if m := draftTeamPattern.FindStringSubmatch(text); m != nil {
		team := strings.TrimSpace(m[1])
		profile.DraftTeam = &team
	}
	if m := roundPattern.FindStringSubmatch(text); m != nil {
		profile.DraftRound = parseInt(m[1])
	}
	if m := pickPattern.FindStringSubmatch(text); m != nil {
		profile.DraftPick = parseInt(m[1])
	}
	if m := yearPattern.FindStringSubmatch(text); m != nil {
		profile.DraftYear = parseInt(m[1])
	}
}

func parseInt(raw string) *int64 {
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &val
}
