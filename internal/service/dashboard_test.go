package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboard(t *testing.T) {
	d := BuildDashboard(fixtureState(t))

	assert.Equal(t, DashboardStats{
		News:            3,
		UpcomingMatches: 1,
		LiveMatches:     1,
		FinishedMatches: 1,
		Gallery:         3,
		Documents:       4,
		Clubs:           2,
		PlayersMen:      2,
		PlayersWomen:    2,
	}, d.Stats)

	assert.Equal(t, []int{3, 2, 1}, newsIDs(d.RecentNews))
	require.Len(t, d.UpcomingGames, 1)
	assert.Equal(t, "m1", d.UpcomingGames[0].ID)
}
