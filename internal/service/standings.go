package service

import (
	"cmp"
	"slices"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
)

type StandingRow struct {
	Team     string
	Logo     string
	Played   int
	Won      int
	Lost     int
	SetsWon  int
	SetsLost int
	Points   int
}

// SetRatio is sets won over sets lost. A team that has not lost a set ranks
// above any finite ratio.
func (r StandingRow) SetRatio() float64 {
	if r.SetsLost == 0 {
		if r.SetsWon == 0 {
			return 0
		}
		return float64(r.SetsWon) * 1e6
	}
	return float64(r.SetsWon) / float64(r.SetsLost)
}

// matchPoints awards 3-0 for a 3-0 or 3-1 win and 2-1 for a 3-2 win.
func matchPoints(winnerSets, loserSets int) (winner, loser int) {
	if winnerSets == 3 && loserSets == 2 {
		return 2, 1
	}
	return 3, 0
}

// Standings tallies finished matches by team name and orders rows by points,
// then set ratio, then name.
func Standings(matches []federation.Match) []StandingRow {
	rows := map[string]*StandingRow{}
	order := []string{}
	row := func(t federation.Team) *StandingRow {
		r, ok := rows[t.Name]
		if !ok {
			r = &StandingRow{Team: t.Name, Logo: t.Logo}
			rows[t.Name] = r
			order = append(order, t.Name)
		}
		return r
	}

	for _, m := range matches {
		winner := m.Winner()
		if winner == 0 {
			continue
		}
		a, b := row(m.TeamA), row(m.TeamB)
		a.Played++
		b.Played++
		a.SetsWon += m.ScoreA
		a.SetsLost += m.ScoreB
		b.SetsWon += m.ScoreB
		b.SetsLost += m.ScoreA

		w, l := a, b
		ws, ls := m.ScoreA, m.ScoreB
		if winner == 2 {
			w, l = b, a
			ws, ls = m.ScoreB, m.ScoreA
		}
		w.Won++
		l.Lost++
		wp, lp := matchPoints(ws, ls)
		w.Points += wp
		l.Points += lp
	}

	out := make([]StandingRow, 0, len(order))
	for _, name := range order {
		out = append(out, *rows[name])
	}
	slices.SortStableFunc(out, func(x, y StandingRow) int {
		if c := cmp.Compare(y.Points, x.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(y.SetRatio(), x.SetRatio()); c != 0 {
			return c
		}
		return cmp.Compare(x.Team, y.Team)
	})
	return out
}
