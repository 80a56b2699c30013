package service

import (
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/fixtures"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
)

// DirectoryService serves the player, coach, club and document databases.
type DirectoryService struct {
	state   *state.State
	coaches []federation.Coach
}

func NewDirectoryService(s *state.State) *DirectoryService {
	return &DirectoryService{state: s, coaches: fixtures.Coaches()}
}

type PlayerListing struct {
	Gender    federation.Gender
	Items     []federation.Player
	Positions []string
	Position  string
	Query     string
	// Empty is set when the collection itself has no players, as opposed to
	// the filters matching nothing.
	Empty  bool
	Loaded bool
}

// Players searches by name or club within one gender.
func (s *DirectoryService) Players(g federation.Gender, query, position string) PlayerListing {
	col := s.state.Players(g)
	all := col.All()

	positions := make([]string, 0, len(all))
	for _, p := range all {
		positions = append(positions, p.Position)
	}

	items := []federation.Player{}
	for _, p := range all {
		if selected(position) && p.Position != position {
			continue
		}
		if !MatchesQuery(query, p.Name, p.Club) {
			continue
		}
		items = append(items, p)
	}

	if position == "" {
		position = AllCategories
	}
	return PlayerListing{
		Gender:    g,
		Items:     items,
		Positions: WithAll(Distinct(positions)),
		Position:  position,
		Query:     query,
		Empty:     len(all) == 0,
		Loaded:    col.Loaded(),
	}
}

func (s *DirectoryService) Player(g federation.Gender, id int) (federation.Player, error) {
	p, ok := s.state.Players(g).Find(id)
	if !ok {
		return p, ErrNotFound
	}
	return p, nil
}

type ClubListing struct {
	Items  []federation.Club
	Cities []string
	City   string
	Query  string
	Loaded bool
}

// Clubs searches by name or head coach and filters by city.
func (s *DirectoryService) Clubs(query, city string) ClubListing {
	all := s.state.Clubs.All()

	cities := make([]string, 0, len(all))
	for _, c := range all {
		cities = append(cities, c.City)
	}

	items := []federation.Club{}
	for _, c := range all {
		if selected(city) && c.City != city {
			continue
		}
		if !MatchesQuery(query, c.Name, c.Coach) {
			continue
		}
		items = append(items, c)
	}

	if city == "" {
		city = AllCategories
	}
	return ClubListing{
		Items:  items,
		Cities: WithAll(Distinct(cities)),
		City:   city,
		Query:  query,
		Loaded: s.state.Clubs.Loaded(),
	}
}

func (s *DirectoryService) Club(id int) (federation.Club, error) {
	c, ok := s.state.Clubs.Find(id)
	if !ok {
		return c, ErrNotFound
	}
	return c, nil
}

type DocumentListing struct {
	Items      []federation.DocumentItem
	Categories []string
	Category   string
	Query      string
	Loaded     bool
}

// Documents searches by title and filters by category.
func (s *DirectoryService) Documents(query, category string) DocumentListing {
	all := s.state.Documents.All()

	cats := make([]string, 0, len(all))
	for _, d := range all {
		cats = append(cats, d.Category)
	}

	items := []federation.DocumentItem{}
	for _, d := range all {
		if selected(category) && d.Category != category {
			continue
		}
		if !MatchesQuery(query, d.Title) {
			continue
		}
		items = append(items, d)
	}

	if category == "" {
		category = AllCategories
	}
	return DocumentListing{
		Items:      items,
		Categories: WithAll(Distinct(cats)),
		Category:   category,
		Query:      query,
		Loaded:     s.state.Documents.Loaded(),
	}
}

func (s *DirectoryService) Document(id int) (federation.DocumentItem, error) {
	d, ok := s.state.Documents.Find(id)
	if !ok {
		return d, ErrNotFound
	}
	return d, nil
}

type CoachListing struct {
	Items    []federation.Coach
	Licenses []string
	License  string
	Query    string
}

// Coaches searches by name or club and filters by licence.
func (s *DirectoryService) Coaches(query, license string) CoachListing {
	items := []federation.Coach{}
	for _, c := range s.coaches {
		if selected(license) && c.License != license {
			continue
		}
		if !MatchesQuery(query, c.Name, c.Club) {
			continue
		}
		items = append(items, c)
	}

	if license == "" {
		license = AllCategories
	}
	return CoachListing{
		Items:    items,
		Licenses: WithAll(federation.Licenses),
		License:  license,
		Query:    query,
	}
}

func (s *DirectoryService) Coach(id int) (federation.Coach, error) {
	for _, c := range s.coaches {
		if c.ID == id {
			return c, nil
		}
	}
	return federation.Coach{}, ErrNotFound
}
