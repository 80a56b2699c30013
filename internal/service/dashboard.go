package service

import (
	"cmp"
	"slices"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
)

const dashboardListSize = 3

type DashboardStats struct {
	News            int
	UpcomingMatches int
	LiveMatches     int
	FinishedMatches int
	Gallery         int
	Documents       int
	Clubs           int
	PlayersMen      int
	PlayersWomen    int
}

type Dashboard struct {
	Stats         DashboardStats
	RecentNews    []federation.NewsItem
	UpcomingGames []federation.Match
}

// BuildDashboard summarises the collections for the admin home screen. Recent
// news is ordered by highest id, not by list position.
func BuildDashboard(s *state.State) Dashboard {
	matches := s.Matches.All()
	stats := DashboardStats{
		News:         s.News.Len(),
		Gallery:      s.Gallery.Len(),
		Documents:    s.Documents.Len(),
		Clubs:        s.Clubs.Len(),
		PlayersMen:   s.PlayersMen.Len(),
		PlayersWomen: s.PlayersWomen.Len(),
	}
	upcoming := []federation.Match{}
	for _, m := range matches {
		switch m.Status {
		case federation.MatchUpcoming:
			stats.UpcomingMatches++
			if len(upcoming) < dashboardListSize {
				upcoming = append(upcoming, m)
			}
		case federation.MatchLive:
			stats.LiveMatches++
		case federation.MatchFinished:
			stats.FinishedMatches++
		}
	}

	news := s.News.All()
	slices.SortStableFunc(news, func(a, b federation.NewsItem) int {
		return cmp.Compare(b.ID, a.ID)
	})
	if len(news) > dashboardListSize {
		news = news[:dashboardListSize]
	}

	return Dashboard{Stats: stats, RecentNews: news, UpcomingGames: upcoming}
}
