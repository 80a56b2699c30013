package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/video"
)

func TestGalleryList(t *testing.T) {
	svc := NewGalleryService(fixtureState(t))

	all := svc.List("")
	assert.Len(t, all.Items, 3)
	assert.Equal(t, []string{AllCategories, "Pertandingan", "Latihan", "Seremonial"}, all.Categories)

	filtered := svc.List("Latihan")
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, 2, filtered.Items[0].ID)
}

func TestGalleryViewerWraps(t *testing.T) {
	svc := NewGalleryService(fixtureState(t))

	first, err := svc.View(1, "")
	require.NoError(t, err)
	assert.Equal(t, 3, first.Prev.ID)
	assert.Equal(t, 2, first.Next.ID)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, video.KindImage, first.Media.Kind)

	last, err := svc.View(3, AllCategories)
	require.NoError(t, err)
	assert.Equal(t, 2, last.Prev.ID)
	assert.Equal(t, 1, last.Next.ID)

	single, err := svc.View(2, "Latihan")
	require.NoError(t, err)
	assert.Equal(t, 2, single.Prev.ID)
	assert.Equal(t, 2, single.Next.ID)
	assert.Equal(t, 1, single.Total)
}

func TestGalleryViewerOutsideFilter(t *testing.T) {
	svc := NewGalleryService(fixtureState(t))

	_, err := svc.View(3, "Latihan")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.View(42, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
