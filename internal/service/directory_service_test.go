package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
)

func TestPlayerListing(t *testing.T) {
	svc := NewDirectoryService(fixtureState(t))

	men := svc.Players(federation.Men, "", "")
	assert.Len(t, men.Items, 2)
	assert.Equal(t, []string{AllCategories, "Opposite", "Outside Hitter"}, men.Positions)
	assert.False(t, men.Empty)

	byClub := svc.Players(federation.Men, "bank sulutgo", "")
	require.Len(t, byClub.Items, 1)
	assert.Equal(t, 1, byClub.Items[0].ID)

	women := svc.Players(federation.Women, "", "Middle Blocker")
	require.Len(t, women.Items, 1)
	assert.Equal(t, 102, women.Items[0].ID)
	assert.Equal(t, "Middle Blocker", women.Position)

	none := svc.Players(federation.Women, "rivan", "")
	assert.Empty(t, none.Items)
	assert.False(t, none.Empty)
}

func TestPlayerLookupIsPerGender(t *testing.T) {
	svc := NewDirectoryService(fixtureState(t))

	p, err := svc.Player(federation.Women, 101)
	require.NoError(t, err)
	assert.Equal(t, "Megawati (Kw)", p.Name)

	_, err = svc.Player(federation.Men, 101)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClubListing(t *testing.T) {
	svc := NewDirectoryService(fixtureState(t))

	all := svc.Clubs("", "")
	assert.Len(t, all.Items, 2)
	assert.Equal(t, []string{AllCategories, "Manado", "Tomohon"}, all.Cities)

	byCoach := svc.Clubs("coach y", "")
	require.Len(t, byCoach.Items, 1)
	assert.Equal(t, 2, byCoach.Items[0].ID)

	byCity := svc.Clubs("", "Manado")
	require.Len(t, byCity.Items, 1)
	assert.Equal(t, "Bank SulutGo Volley", byCity.Items[0].Name)

	club, err := svc.Club(1)
	require.NoError(t, err)
	assert.False(t, club.Socials.Empty())

	_, err = svc.Club(9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentListing(t *testing.T) {
	svc := NewDirectoryService(fixtureState(t))

	regs := svc.Documents("", "Regulasi")
	assert.Len(t, regs.Items, 2)
	assert.Equal(t, []string{AllCategories, "Regulasi", "Formulir", "Transparansi"}, regs.Categories)

	byTitle := svc.Documents("keuangan", "")
	require.Len(t, byTitle.Items, 1)
	assert.Equal(t, "XLSX", byTitle.Items[0].Type)

	doc, err := svc.Document(3)
	require.NoError(t, err)
	assert.Equal(t, "500 KB", doc.Size)
}

func TestCoachListing(t *testing.T) {
	svc := NewDirectoryService(fixtureState(t))

	all := svc.Coaches("", "")
	assert.Len(t, all.Items, 6)
	assert.Equal(t, AllCategories, all.License)
	assert.Equal(t, AllCategories, all.Licenses[0])
	assert.Len(t, all.Licenses, len(federation.Licenses)+1)

	nasionalA := svc.Coaches("", "Nasional A")
	require.Len(t, nasionalA.Items, 2)
	for _, c := range nasionalA.Items {
		assert.True(t, c.Senior())
	}

	byClub := svc.Coaches("tomohon", "")
	require.Len(t, byClub.Items, 1)
	assert.Equal(t, "Denny Moningka", byClub.Items[0].Name)
	assert.False(t, byClub.Items[0].Senior())

	assert.Empty(t, svc.Coaches("siska", "Daerah").Items)
}

func TestCoachLookup(t *testing.T) {
	svc := NewDirectoryService(fixtureState(t))

	c, err := svc.Coach(6)
	require.NoError(t, err)
	assert.Equal(t, "FIVB Level 2", c.License)
	assert.Len(t, c.Career, 2)

	_, err = svc.Coach(60)
	assert.ErrorIs(t, err, ErrNotFound)
}
