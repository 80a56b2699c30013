package federation

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

type MatchStatus string

const (
	MatchUpcoming MatchStatus = "upcoming"
	MatchLive     MatchStatus = "live"
	MatchFinished MatchStatus = "finished"
)

// MatchStatuses lists the statuses in the order an editor picks them.
var MatchStatuses = []MatchStatus{MatchUpcoming, MatchLive, MatchFinished}

const MaxSets = 5

func (s MatchStatus) Valid() bool {
	return slices.Contains(MatchStatuses, s)
}

type Team struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo"`
}

type Match struct {
	ID         string      `json:"id"`
	LeagueID   string      `json:"leagueId"`
	Status     MatchStatus `json:"status"`
	Date       string      `json:"date"`
	Time       string      `json:"time"`
	Venue      string      `json:"venue"`
	Category   string      `json:"category"`
	TeamA      Team        `json:"teamA"`
	TeamB      Team        `json:"teamB"`
	ScoreA     int         `json:"scoreA"`
	ScoreB     int         `json:"scoreB"`
	Sets       []string    `json:"sets,omitempty"`
	CurrentSet *int        `json:"currentSet,omitempty"`
}

func (m Match) Key() string { return m.ID }

func (m Match) WithNumericID(id int) Match {
	m.ID = strconv.Itoa(id)
	return m
}

func (m *Match) IsLive() bool     { return m.Status == MatchLive }
func (m *Match) IsFinished() bool { return m.Status == MatchFinished }

// Winner returns 1 or 2 for a finished match with a leader, 0 otherwise.
func (m *Match) Winner() int {
	if !m.IsFinished() {
		return 0
	}
	switch {
	case m.ScoreA > m.ScoreB:
		return 1
	case m.ScoreB > m.ScoreA:
		return 2
	}
	return 0
}

var (
	ErrInvalidStatus     = errors.New("invalid match status")
	ErrTooManySets       = errors.New("a match has at most 5 sets")
	ErrCurrentSetNotLive = errors.New("current set is only meaningful for live matches")
	ErrUnknownLeague     = errors.New("unknown league")
	ErrScoreMismatch     = errors.New("won-set counts do not match the set scores")
)

// Validate checks the structural invariants of a match. Won-set counts are only
// compared for finished matches; a live score may or may not include the set
// still being played depending on who entered it.
func (m *Match) Validate() error {
	if !m.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, m.Status)
	}
	if _, ok := LeagueByID(m.LeagueID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLeague, m.LeagueID)
	}
	if len(m.Sets) > MaxSets {
		return ErrTooManySets
	}
	if m.CurrentSet != nil && m.Status != MatchLive {
		return ErrCurrentSetNotLive
	}
	if !m.IsFinished() {
		return nil
	}

	a, b := CountWonSets(m.Sets)
	if a != m.ScoreA || b != m.ScoreB {
		return fmt.Errorf("%w: sets give %d-%d, stored %d-%d", ErrScoreMismatch, a, b, m.ScoreA, m.ScoreB)
	}
	return nil
}

type League struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

const DefaultLeagueID = "div-utama-putra"

var Leagues = []League{
	{ID: "div-utama-putra", Name: "Divisi Utama Putra", Season: "2024/2025"},
	{ID: "div-utama-putri", Name: "Divisi Utama Putri", Season: "2024/2025"},
	{ID: "kejurda-u19", Name: "Kejurda Junior U-19", Season: "2024"},
}

func LeagueByID(id string) (League, bool) {
	for _, l := range Leagues {
		if l.ID == id {
			return l, true
		}
	}
	return League{}, false
}
