package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
)

func TestDatasetShape(t *testing.T) {
	assert.Len(t, News(), 3)
	assert.Len(t, Matches(), 3)
	assert.Len(t, Gallery(), 3)
	assert.Len(t, Documents(), 4)
	assert.Len(t, PlayersMen(), 2)
	assert.Len(t, PlayersWomen(), 2)
	assert.Len(t, Clubs(), 2)
	assert.Len(t, Coaches(), 6)
}

func TestMatchesAreValid(t *testing.T) {
	for _, m := range Matches() {
		assert.NoError(t, m.Validate(), "match %s", m.ID)
	}

	live := Matches()[0]
	require.True(t, live.IsLive())
	require.NotNil(t, live.CurrentSet)
	assert.Equal(t, 4, *live.CurrentSet)
	assert.Equal(t, []string{"25-20", "22-25", "25-18", "10-8"}, live.Sets)
}

func TestCallersGetPrivateCopies(t *testing.T) {
	first := News()
	first[0].Title = "changed"
	first[0].Content[0] = "changed"

	again := News()
	assert.NotEqual(t, "changed", again[0].Title)
	assert.NotEqual(t, "changed", again[0].Content[0])
}

func TestPlayersByGender(t *testing.T) {
	assert.Equal(t, 101, Players(federation.Women)[0].ID)
	assert.Equal(t, 1, Players(federation.Men)[0].ID)

	club := Clubs()[0]
	require.NotNil(t, club.Socials)
	assert.Equal(t, "@bsgvolley", club.Socials.Instagram)
	assert.True(t, Clubs()[1].Socials.Empty())
}
