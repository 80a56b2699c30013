package admin

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/utils"
)

type MatchForm struct {
	ID        string `form:"id"`
	LeagueID  string `form:"leagueId"`
	Status    string `form:"status" validate:"omitempty,oneof=upcoming live finished"`
	Date      string `form:"date"`
	Time      string `form:"time" validate:"required"`
	Venue     string `form:"venue" validate:"required"`
	Category  string `form:"category"`
	TeamAID   string `form:"teamAId"`
	TeamAName string `form:"teamAName" validate:"required"`
	TeamALogo string `form:"teamALogo"`
	TeamBID   string `form:"teamBId"`
	TeamBName string `form:"teamBName" validate:"required"`
	TeamBLogo string `form:"teamBLogo"`
	// SetA and SetB hold the points typed for set positions 1 to 5.
	SetA       [federation.MaxSets]string `form:"-"`
	SetB       [federation.MaxSets]string `form:"-"`
	CurrentSet string                     `form:"currentSet"`

	scores     federation.SetScores
	currentSet *int
}

func MatchFormFrom(m federation.Match) *MatchForm {
	f := &MatchForm{
		ID:        m.ID,
		LeagueID:  m.LeagueID,
		Status:    string(m.Status),
		Date:      m.Date,
		Time:      m.Time,
		Venue:     m.Venue,
		Category:  m.Category,
		TeamAID:   m.TeamA.ID,
		TeamAName: m.TeamA.Name,
		TeamALogo: m.TeamA.Logo,
		TeamBID:   m.TeamB.ID,
		TeamBName: m.TeamB.Name,
		TeamBLogo: m.TeamB.Logo,
	}
	for i, s := range m.Sets {
		if i >= federation.MaxSets {
			break
		}
		a, b, err := federation.ParseSet(s)
		if err != nil {
			continue
		}
		f.SetA[i], f.SetB[i] = strconv.Itoa(a), strconv.Itoa(b)
	}
	if m.CurrentSet != nil {
		f.CurrentSet = strconv.Itoa(*m.CurrentSet)
	}
	return f
}

func (f *MatchForm) Kind() federation.Kind { return federation.KindMatches }
func (f *MatchForm) IsNew() bool           { return f.ID == "" }

func (f *MatchForm) decode(r *http.Request, key string) error {
	f.ID = key
	f.LeagueID = field(r, "leagueId")
	f.Status = field(r, "status")
	f.Date = field(r, "date")
	f.Time = field(r, "time")
	f.Venue = field(r, "venue")
	f.Category = field(r, "category")
	f.TeamAID = field(r, "teamAId")
	f.TeamAName = field(r, "teamAName")
	f.TeamALogo = field(r, "teamALogo")
	f.TeamBID = field(r, "teamBId")
	f.TeamBName = field(r, "teamBName")
	f.TeamBLogo = field(r, "teamBLogo")
	f.CurrentSet = field(r, "currentSet")
	for i := range federation.MaxSets {
		f.SetA[i] = field(r, fmt.Sprintf("set%dA", i+1))
		f.SetB[i] = field(r, fmt.Sprintf("set%dB", i+1))
	}
	return nil
}

func (f *MatchForm) finish(now time.Time) map[string]string {
	errs := map[string]string{}

	if f.LeagueID == "" {
		f.LeagueID = federation.DefaultLeagueID
	}
	if _, ok := federation.LeagueByID(f.LeagueID); !ok {
		errs["leagueId"] = "Liga tidak dikenal."
	}
	if f.Status == "" {
		f.Status = string(federation.MatchUpcoming)
	}
	if date, err := ParseDate(f.Date, now); err != nil {
		errs["date"] = err.Error()
	} else {
		f.Date = date
	}
	f.Category = utils.FirstNonEmpty(f.Category, DefaultMatchCategory)
	f.TeamALogo = utils.FirstNonEmpty(f.TeamALogo, AvatarURL(f.TeamAName))
	f.TeamBLogo = utils.FirstNonEmpty(f.TeamBLogo, AvatarURL(f.TeamBName))
	if f.TeamAID == "" {
		f.TeamAID = "a-" + uuid.NewString()
	}
	if f.TeamBID == "" {
		f.TeamBID = "b-" + uuid.NewString()
	}

	status := federation.MatchStatus(f.Status)
	f.scores = federation.SetScores{Sets: []string{}}
	f.currentSet = nil
	if status == federation.MatchUpcoming {
		return errs
	}

	inputs := make([]federation.SetInput, federation.MaxSets)
	for i := range federation.MaxSets {
		a, errA := utils.IntOrNil(f.SetA[i])
		b, errB := utils.IntOrNil(f.SetB[i])
		if errA != nil || (a != nil && *a < 0) {
			errs[fmt.Sprintf("set%dA", i+1)] = "Skor set harus berupa angka."
		}
		if errB != nil || (b != nil && *b < 0) {
			errs[fmt.Sprintf("set%dB", i+1)] = "Skor set harus berupa angka."
		}
		inputs[i] = federation.SetInput{A: a, B: b}
	}
	f.scores = federation.DeriveSetScores(inputs)

	if status == federation.MatchLive {
		cs, err := utils.IntOrNil(f.CurrentSet)
		if err != nil || (cs != nil && (*cs < 1 || *cs > federation.MaxSets)) {
			errs["currentSet"] = "Set berjalan harus antara 1 dan 5."
		}
		f.currentSet = cs
	}
	return errs
}

// TiedSets lists the set positions entered with equal points. They are saved
// but credited to neither team.
func (f *MatchForm) TiedSets() []int {
	return f.scores.TiedSets
}

func (f *MatchForm) Record() federation.Match {
	m := federation.Match{
		ID:       f.ID,
		LeagueID: f.LeagueID,
		Status:   federation.MatchStatus(f.Status),
		Date:     f.Date,
		Time:     f.Time,
		Venue:    f.Venue,
		Category: f.Category,
		TeamA:    federation.Team{ID: f.TeamAID, Name: f.TeamAName, Logo: f.TeamALogo},
		TeamB:    federation.Team{ID: f.TeamBID, Name: f.TeamBName, Logo: f.TeamBLogo},
		ScoreA:   f.scores.ScoreA,
		ScoreB:   f.scores.ScoreB,
		Sets:     f.scores.Sets,
	}
	if m.Status == federation.MatchLive {
		m.CurrentSet = f.currentSet
	}
	return m
}
