package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsReadOnly(t *testing.T) {
	cases := []string{
		"SELECT * FROM players",
		"select ppg from player_season_stats where season = '2003-04'",
		"WITH top AS (SELECT * FROM players) SELECT * FROM top",
		"EXPLAIN SELECT 1",
		"  SELECT 1;  ",
	}

	for _, raw := range cases {
		normalized, err := Validate(raw)
		require.NoError(t, err, raw)
		assert.NotContains(t, normalized, ";")
	}
}

func TestValidateRejectsWritesAndMulti(t *testing.T) {
	cases := []struct {
		raw  string
		want error
	}{
		{raw: "", want: ErrEmpty},
		{raw: "   ;  ", want: ErrEmpty},
		{raw: "UPDATE players SET shoots = 'Left'", want: ErrNotReadOnly},
		{raw: "DELETE FROM players", want: ErrNotReadOnly},
		{raw: "INSERT INTO players VALUES (1)", want: ErrNotReadOnly},
		{raw: "SELECT 1; SELECT 2", want: ErrMultiple},
		{raw: "PRAGMA journal_mode", want: ErrNotReadOnly},
		{raw: "SELECT 1 FROM pragma_table_info; ATTACH 'x' AS y", want: ErrMultiple},
		{raw: "SELECT * FROM players WHERE 1=1 AND (SELECT 1) = 1 UNION SELECT name, 1, 1 FROM pragma_database_list ATTACH", want: ErrDeniedKeyword},
	}

	for _, tc := range cases {
		_, err := Validate(tc.raw)
		assert.ErrorIs(t, err, tc.want, tc.raw)
	}
}

func TestValidateIgnoresKeywordsInLiterals(t *testing.T) {
	_, err := Validate("SELECT * FROM players WHERE full_name = 'Mr. PRAGMA; DROP'")
	assert.NoError(t, err)
}

func TestNamedParameters(t *testing.T) {
	params := NamedParameters("SELECT * FROM players WHERE shoots = :hand AND draft_round = :round AND full_name != ':hand'")
	assert.Equal(t, []string{"hand", "round"}, params)
}

func TestBindNamedMissingValue(t *testing.T) {
	_, err := BindNamed("SELECT * FROM players WHERE shoots = :hand", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":hand")
}

func TestBindNamedResolvesValues(t *testing.T) {
	args, err := BindNamed("SELECT * FROM players WHERE shoots = :hand", map[string]string{"hand": "Left"})
	require.NoError(t, err)
	assert.Len(t, args, 1)
}
