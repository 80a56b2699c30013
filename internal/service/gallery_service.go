package service

import (
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/video"
)

type GalleryService struct {
	state *state.State
}

func NewGalleryService(s *state.State) *GalleryService {
	return &GalleryService{state: s}
}

type GalleryListing struct {
	Items      []federation.GalleryItem
	Categories []string
	Category   string
	Loaded     bool
}

func (s *GalleryService) List(category string) GalleryListing {
	all := s.state.Gallery.All()
	cats := make([]string, 0, len(all))
	for _, it := range all {
		cats = append(cats, it.Category)
	}
	if category == "" {
		category = AllCategories
	}
	return GalleryListing{
		Items:      filterGallery(all, category),
		Categories: WithAll(Distinct(cats)),
		Category:   category,
		Loaded:     s.state.Gallery.Loaded(),
	}
}

func filterGallery(items []federation.GalleryItem, category string) []federation.GalleryItem {
	out := []federation.GalleryItem{}
	for _, it := range items {
		if selected(category) && it.Category != category {
			continue
		}
		out = append(out, it)
	}
	return out
}

type GalleryViewer struct {
	Item     federation.GalleryItem
	Media    video.Media
	Category string
	Prev     federation.GalleryItem
	Next     federation.GalleryItem
	Position int
	Total    int
}

// View opens one item within the filtered list. Previous and next wrap around
// the ends of that list.
func (s *GalleryService) View(id int, category string) (*GalleryViewer, error) {
	if category == "" {
		category = AllCategories
	}
	items := filterGallery(s.state.Gallery.All(), category)

	idx := -1
	for i, it := range items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	n := len(items)
	return &GalleryViewer{
		Item:     items[idx],
		Media:    video.Classify(items[idx].URL),
		Category: category,
		Prev:     items[(idx-1+n)%n],
		Next:     items[(idx+1)%n],
		Position: idx + 1,
		Total:    n,
	}, nil
}
