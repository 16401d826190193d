package bbref

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const draftedPage = `<html><body>
<h1><span>LeBron James</span></h1>
<div id="meta">
<p><strong>Position:</strong> Forward &#9642; <strong>Shoots:</strong> Right</p>
<p><strong>Draft:</strong> Cleveland Cavaliers, 1st round (1st pick, 1st overall), 2003 NBA Draft</p>
</div>
</body></html>`

const undraftedPage = `<html><body>
<h1><span>Ime Udoka</span></h1>
<div id="meta">
<p><strong>Shoots:</strong> Right</p>
<p><strong>Draft:</strong> Undrafted</p>
</div>
</body></html>`

const secondRoundPage = `<html><body>
<h1>Manu Ginobili</h1>
<div id="meta">
<p><strong>Shoots:</strong> Left</p>
<p><strong>Draft:</strong> San Antonio Spurs, 2nd round (28th pick, 57th overall), 1999 NBA Draft</p>
</div>
</body></html>`

func TestParsePlayerPageDrafted(t *testing.T) {
	profile, err := ParsePlayerPage("jamesle01", strings.NewReader(draftedPage))
	require.NoError(t, err)

	assert.Equal(t, "jamesle01", profile.PlayerID)
	assert.Equal(t, "LeBron James", profile.FullName)
	require.NotNil(t, profile.Shoots)
	assert.Equal(t, "Right", *profile.Shoots)
	assert.False(t, profile.Undrafted)
	require.NotNil(t, profile.DraftTeam)
	assert.Equal(t, "Cleveland Cavaliers", *profile.DraftTeam)
	require.NotNil(t, profile.DraftRound)
	assert.EqualValues(t, 1, *profile.DraftRound)
	require.NotNil(t, profile.DraftPick)
	assert.EqualValues(t, 1, *profile.DraftPick)
	require.NotNil(t, profile.DraftYear)
	assert.EqualValues(t, 2003, *profile.DraftYear)
}

func TestParsePlayerPageUndrafted(t *testing.T) {
	profile, err := ParsePlayerPage("udokaim01", strings.NewReader(undraftedPage))
	require.NoError(t, err)

	assert.True(t, profile.Undrafted)
	assert.Nil(t, profile.DraftYear)
	assert.Nil(t, profile.DraftRound)
	assert.Nil(t, profile.DraftPick)
	assert.Nil(t, profile.DraftTeam)
}

func TestParsePlayerPageSecondRoundBareHeading(t *testing.T) {
	profile, err := ParsePlayerPage("ginobma01", strings.NewReader(secondRoundPage))
	require.NoError(t, err)

	assert.Equal(t, "Manu Ginobili", profile.FullName)
	require.NotNil(t, profile.Shoots)
	assert.Equal(t, "Left", *profile.Shoots)
	require.NotNil(t, profile.DraftRound)
	assert.EqualValues(t, 2, *profile.DraftRound)
	require.NotNil(t, profile.DraftPick)
	assert.EqualValues(t, 28, *profile.DraftPick)
	require.NotNil(t, profile.DraftYear)
	assert.EqualValues(t, 1999, *profile.DraftYear)
}

func TestParsePlayerPageMissingSections(t *testing.T) {
	profile, err := ParsePlayerPage("nobody01", strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	assert.Empty(t, profile.FullName)
	assert.Nil(t, profile.Shoots)
	assert.False(t, profile.Undrafted)
}
