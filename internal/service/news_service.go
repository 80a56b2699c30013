package service

import (
	"errors"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
)

var ErrNotFound = errors.New("not found")

const relatedNewsCount = 3

type NewsService struct {
	state *state.State
}

func NewNewsService(s *state.State) *NewsService {
	return &NewsService{state: s}
}

type NewsListing struct {
	Items      []federation.NewsItem
	Categories []string
	Category   string
	Query      string
	Loaded     bool
}

// List filters by a title/excerpt query and a category.
func (s *NewsService) List(query, category string) NewsListing {
	all := s.state.News.All()

	cats := make([]string, 0, len(all))
	for _, n := range all {
		cats = append(cats, n.Category)
	}

	items := []federation.NewsItem{}
	for _, n := range all {
		if selected(category) && n.Category != category {
			continue
		}
		if !MatchesQuery(query, n.Title, n.Excerpt) {
			continue
		}
		items = append(items, n)
	}

	if category == "" {
		category = AllCategories
	}
	return NewsListing{
		Items:      items,
		Categories: WithAll(Distinct(cats)),
		Category:   category,
		Query:      query,
		Loaded:     s.state.News.Loaded(),
	}
}

// Latest returns up to n items in collection order.
func (s *NewsService) Latest(n int) []federation.NewsItem {
	all := s.state.News.All()
	if len(all) > n {
		all = all[:n]
	}
	return all
}

type NewsDetail struct {
	Item    federation.NewsItem
	Related []federation.NewsItem
}

func (s *NewsService) Get(id int) (*NewsDetail, error) {
	item, ok := s.state.News.Find(id)
	if !ok {
		return nil, ErrNotFound
	}

	related := []federation.NewsItem{}
	for _, n := range s.state.News.All() {
		if n.ID == id {
			continue
		}
		related = append(related, n)
		if len(related) == relatedNewsCount {
			break
		}
	}
	return &NewsDetail{Item: item, Related: related}, nil
}
