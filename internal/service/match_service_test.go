package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
)

func TestParseMatchTab(t *testing.T) {
	assert.Equal(t, TabLive, ParseMatchTab("live"))
	assert.Equal(t, TabStandings, ParseMatchTab("standings"))
	assert.Equal(t, TabSchedule, ParseMatchTab(""))
	assert.Equal(t, TabSchedule, ParseMatchTab("bogus"))
}

func TestMatchBoard(t *testing.T) {
	svc := NewMatchService(fixtureState(t))

	board := svc.Board("", TabSchedule)
	assert.Equal(t, federation.DefaultLeagueID, board.League.ID)
	require.Len(t, board.Live, 1)
	assert.Equal(t, "m-live-1", board.Live[0].ID)
	require.Len(t, board.Upcoming, 1)
	assert.Equal(t, "m1", board.Upcoming[0].ID)
	require.Len(t, board.Finished, 1)
	assert.Equal(t, "m2", board.Finished[0].ID)

	require.Len(t, board.Standings, 2)
	assert.Equal(t, "Bhayangkara Sulut", board.Standings[0].Team)
	assert.Equal(t, 3, board.Standings[0].Points)
	assert.Equal(t, "PLN Suluttenggo", board.Standings[1].Team)
	assert.Equal(t, 0, board.Standings[1].Points)

	other := svc.Board("div-utama-putri", TabResults)
	assert.Equal(t, "div-utama-putri", other.League.ID)
	assert.Empty(t, other.Live)
	assert.Empty(t, other.Upcoming)
	assert.Empty(t, other.Finished)
	assert.Empty(t, other.Standings)
}

func TestLiveAndUpcoming(t *testing.T) {
	svc := NewMatchService(fixtureState(t))

	live := svc.LiveMatches()
	require.Len(t, live, 1)
	assert.True(t, live[0].IsLive())

	assert.Len(t, svc.UpcomingMatches(3), 1)
}

func TestMatchDetailSets(t *testing.T) {
	svc := NewMatchService(fixtureState(t))

	detail, err := svc.Get("m-live-1")
	require.NoError(t, err)
	require.Len(t, detail.Sets, 4)
	assert.Equal(t, SetLine{Number: 1, A: 25, B: 20, Winner: 1}, detail.Sets[0])
	assert.Equal(t, SetLine{Number: 2, A: 22, B: 25, Winner: 2}, detail.Sets[1])
	assert.Equal(t, SetLine{Number: 4, A: 10, B: 8, InProgress: true}, detail.Sets[3])
	assert.Equal(t, "Divisi Utama Putra", detail.League.Name)

	_, err = svc.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func finished(a, b string, sa, sb int) federation.Match {
	return federation.Match{
		Status: federation.MatchFinished,
		TeamA:  federation.Team{Name: a},
		TeamB:  federation.Team{Name: b},
		ScoreA: sa,
		ScoreB: sb,
	}
}

func TestStandings(t *testing.T) {
	rows := Standings([]federation.Match{
		finished("Alpha", "Beta", 3, 2),
		finished("Gamma", "Alpha", 3, 0),
		finished("Beta", "Gamma", 1, 3),
		{Status: federation.MatchUpcoming, TeamA: federation.Team{Name: "Delta"}, TeamB: federation.Team{Name: "Alpha"}},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, StandingRow{Team: "Gamma", Played: 2, Won: 2, SetsWon: 6, SetsLost: 1, Points: 6}, rows[0])
	assert.Equal(t, StandingRow{Team: "Alpha", Played: 2, Won: 1, Lost: 1, SetsWon: 3, SetsLost: 5, Points: 2}, rows[1])
	assert.Equal(t, StandingRow{Team: "Beta", Played: 2, Lost: 2, SetsWon: 3, SetsLost: 6, Points: 1}, rows[2])
}

func TestStandingsTieBreak(t *testing.T) {
	rows := Standings([]federation.Match{
		finished("Beta", "Delta", 3, 1),
		finished("Alpha", "Gamma", 3, 0),
	})
	require.Len(t, rows, 4)
	assert.Equal(t, "Alpha", rows[0].Team)
	assert.Equal(t, "Beta", rows[1].Team)

	var unbeaten StandingRow
	assert.Zero(t, unbeaten.SetRatio())
	assert.Equal(t, 2.0, StandingRow{SetsWon: 4, SetsLost: 2}.SetRatio())
}
