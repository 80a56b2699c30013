package service

import (
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
)

type MatchTab string

const (
	TabLive      MatchTab = "live"
	TabSchedule  MatchTab = "schedule"
	TabResults   MatchTab = "results"
	TabStandings MatchTab = "standings"
)

var MatchTabs = []MatchTab{TabLive, TabSchedule, TabResults, TabStandings}

func ParseMatchTab(s string) MatchTab {
	for _, t := range MatchTabs {
		if string(t) == s {
			return t
		}
	}
	return TabSchedule
}

type MatchService struct {
	state *state.State
}

func NewMatchService(s *state.State) *MatchService {
	return &MatchService{state: s}
}

type MatchBoard struct {
	League    federation.League
	Leagues   []federation.League
	Tab       MatchTab
	Live      []federation.Match
	Upcoming  []federation.Match
	Finished  []federation.Match
	Standings []StandingRow
	Loaded    bool
}

// Board splits one league's matches by status. Unknown league ids fall back
// to the default league.
func (s *MatchService) Board(leagueID string, tab MatchTab) MatchBoard {
	league, ok := federation.LeagueByID(leagueID)
	if !ok {
		league, _ = federation.LeagueByID(federation.DefaultLeagueID)
	}

	board := MatchBoard{
		League:   league,
		Leagues:  federation.Leagues,
		Tab:      tab,
		Live:     []federation.Match{},
		Upcoming: []federation.Match{},
		Finished: []federation.Match{},
		Loaded:   s.state.Matches.Loaded(),
	}
	for _, m := range s.state.Matches.All() {
		if m.LeagueID != league.ID {
			continue
		}
		switch m.Status {
		case federation.MatchLive:
			board.Live = append(board.Live, m)
		case federation.MatchUpcoming:
			board.Upcoming = append(board.Upcoming, m)
		case federation.MatchFinished:
			board.Finished = append(board.Finished, m)
		}
	}
	board.Standings = Standings(board.Finished)
	return board
}

// LiveMatches returns every live match across leagues.
func (s *MatchService) LiveMatches() []federation.Match {
	return s.byStatus(federation.MatchLive, -1)
}

// UpcomingMatches returns up to n upcoming matches in collection order.
func (s *MatchService) UpcomingMatches(n int) []federation.Match {
	return s.byStatus(federation.MatchUpcoming, n)
}

func (s *MatchService) byStatus(status federation.MatchStatus, limit int) []federation.Match {
	out := []federation.Match{}
	for _, m := range s.state.Matches.All() {
		if m.Status != status {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

type MatchDetail struct {
	Match  federation.Match
	League federation.League
	Sets   []SetLine
}

type SetLine struct {
	Number     int
	A, B       int
	Winner     int
	InProgress bool
}

func (s *MatchService) Get(id string) (*MatchDetail, error) {
	m, ok := s.state.Matches.Find(id)
	if !ok {
		return nil, ErrNotFound
	}
	league, _ := federation.LeagueByID(m.LeagueID)

	lines := make([]SetLine, 0, len(m.Sets))
	for i, raw := range m.Sets {
		a, b, err := federation.ParseSet(raw)
		if err != nil {
			continue
		}
		line := SetLine{Number: i + 1, A: a, B: b}
		if m.IsLive() && m.CurrentSet != nil && *m.CurrentSet == i+1 {
			line.InProgress = true
		} else if a > b {
			line.Winner = 1
		} else if b > a {
			line.Winner = 2
		}
		lines = append(lines, line)
	}
	return &MatchDetail{Match: m, League: league, Sets: lines}, nil
}
