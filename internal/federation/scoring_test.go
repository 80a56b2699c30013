package federation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSetScores(t *testing.T) {
	testCases := []struct {
		name     string
		inputs   []SetInput
		expected SetScores
	}{
		{
			name:     "three decided sets",
			inputs:   []SetInput{PlayedSet(25, 20), PlayedSet(22, 25), PlayedSet(25, 18)},
			expected: SetScores{ScoreA: 2, ScoreB: 1, Sets: []string{"25-20", "22-25", "25-18"}},
		},
		{
			name:     "tied set is recorded but credited to nobody",
			inputs:   []SetInput{PlayedSet(25, 20), PlayedSet(25, 25)},
			expected: SetScores{ScoreA: 1, ScoreB: 0, Sets: []string{"25-20", "25-25"}, TiedSets: []int{2}},
		},
		{
			name: "sets with a missing side are skipped",
			inputs: []SetInput{
				PlayedSet(25, 20),
				{A: intPtr(25)},
				{B: intPtr(19)},
				PlayedSet(18, 25),
			},
			expected: SetScores{ScoreA: 1, ScoreB: 1, Sets: []string{"25-20", "18-25"}},
		},
		{
			name:     "no sets",
			inputs:   nil,
			expected: SetScores{Sets: []string{}},
		},
		{
			name: "positions past the fifth are ignored",
			inputs: []SetInput{
				PlayedSet(25, 1), PlayedSet(25, 2), PlayedSet(1, 25), PlayedSet(2, 25), PlayedSet(15, 13), PlayedSet(25, 0),
			},
			expected: SetScores{ScoreA: 3, ScoreB: 2, Sets: []string{"25-1", "25-2", "1-25", "2-25", "15-13"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveSetScores(tc.inputs))
		})
	}
}

func TestParseSet(t *testing.T) {
	a, b, err := ParseSet("25-18")
	require.NoError(t, err)
	assert.Equal(t, 25, a)
	assert.Equal(t, 18, b)

	_, _, err = ParseSet("25:18")
	assert.Error(t, err)

	_, _, err = ParseSet("x-18")
	assert.Error(t, err)
}

func TestMatchValidate(t *testing.T) {
	four := 4

	live := Match{
		ID: "m-live-1", LeagueID: "div-utama-putra", Status: MatchLive,
		TeamA: Team{Name: "A"}, TeamB: Team{Name: "B"},
		ScoreA: 2, ScoreB: 1, CurrentSet: &four,
		Sets: []string{"25-20", "22-25", "25-18", "10-8"},
	}
	assert.NoError(t, live.Validate())

	live.ScoreA = 3
	assert.NoError(t, live.Validate(), "live scores are not reconciled against sets")

	finished := Match{
		LeagueID: "div-utama-putra", Status: MatchFinished,
		ScoreA: 3, ScoreB: 1, Sets: []string{"25-20", "25-22", "19-25", "25-18"},
	}
	assert.NoError(t, finished.Validate())

	wrongScore := finished
	wrongScore.ScoreA = 2
	assert.ErrorIs(t, wrongScore.Validate(), ErrScoreMismatch)

	tooMany := finished
	tooMany.Sets = []string{"25-1", "25-1", "25-1", "1-25", "1-25", "15-1"}
	assert.ErrorIs(t, tooMany.Validate(), ErrTooManySets)

	notLive := finished
	notLive.CurrentSet = &four
	assert.ErrorIs(t, notLive.Validate(), ErrCurrentSetNotLive)

	badStatus := finished
	badStatus.Status = "postponed"
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidStatus)

	badLeague := finished
	badLeague.LeagueID = "nope"
	assert.ErrorIs(t, badLeague.Validate(), ErrUnknownLeague)

	undecided := finished
	undecided.ScoreA, undecided.ScoreB = 2, 1
	undecided.Sets = []string{"25-20", "25-22", "19-25"}
	assert.NoError(t, undecided.Validate(), "a finished match only has to agree with its sets")
}

func TestMatchWinner(t *testing.T) {
	m := Match{Status: MatchFinished, ScoreA: 3, ScoreB: 1}
	assert.True(t, m.IsFinished())
	assert.Equal(t, 1, m.Winner())

	m.ScoreA, m.ScoreB = 2, 3
	assert.Equal(t, 2, m.Winner())

	m.Status = MatchLive
	assert.False(t, m.IsFinished())
	assert.Equal(t, 0, m.Winner())
}

func TestWithNumericID(t *testing.T) {
	assert.Equal(t, "42", Match{}.WithNumericID(42).ID)
	assert.Equal(t, 7, NewsItem{Title: "x"}.WithNumericID(7).ID)
	assert.Equal(t, 9, Player{}.WithNumericID(9).Key())
}

func intPtr(v int) *int { return &v }
