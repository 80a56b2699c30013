package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsList(t *testing.T) {
	svc := NewNewsService(fixtureState(t))

	all := svc.List("", "")
	assert.Equal(t, []int{1, 2, 3}, newsIDs(all.Items))
	assert.Equal(t, []string{AllCategories, "Kompetisi", "Edukasi", "Infrastruktur"}, all.Categories)
	assert.Equal(t, AllCategories, all.Category)
	assert.True(t, all.Loaded)

	byQuery := svc.List("WASIT", "")
	assert.Equal(t, []int{2}, newsIDs(byQuery.Items))

	byCategory := svc.List("", "Infrastruktur")
	assert.Equal(t, []int{3}, newsIDs(byCategory.Items))

	none := svc.List("wasit", "Kompetisi")
	assert.Empty(t, none.Items)
	assert.NotNil(t, none.Items)
}

func TestNewsGet(t *testing.T) {
	svc := NewNewsService(fixtureState(t))

	detail, err := svc.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Item.ID)
	assert.Equal(t, []int{1, 3}, newsIDs(detail.Related))

	_, err = svc.Get(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewsLatest(t *testing.T) {
	svc := NewNewsService(fixtureState(t))
	assert.Equal(t, []int{1, 2}, newsIDs(svc.Latest(2)))
	assert.Len(t, svc.Latest(10), 3)
}

func TestFoldAndSearch(t *testing.T) {
	assert.Equal(t, "tondano", Fold("  Tondanó "))
	assert.True(t, MatchesQuery("tondano", "GOR Tondanó"))
	assert.True(t, MatchesQuery("", "anything"))
	assert.False(t, MatchesQuery("bitung", "Manado", "Tomohon"))

	assert.Equal(t, []string{"a", "b"}, Distinct([]string{"a", "", "b", "a"}))
	assert.Equal(t, []string{AllCategories}, WithAll(nil))
}
