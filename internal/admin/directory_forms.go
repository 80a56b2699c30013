package admin

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/utils"
)

type PlayerForm struct {
	ID       int               `form:"id"`
	Gender   federation.Gender `form:"-"`
	Name     string            `form:"name" validate:"required"`
	Club     string            `form:"club" validate:"required"`
	Position string            `form:"position" validate:"required"`
	Age      string            `form:"age" validate:"required"`
	Hand     string            `form:"hand"`
	Height   string            `form:"height"`
	Weight   string            `form:"weight"`
	Spike    string            `form:"spike"`
	Block    string            `form:"block"`
	ImageURL string            `form:"imageUrl"`
	Bio      string            `form:"bio"`
	// Career is not editable in the console; it is carried over on edit.
	Career []federation.CareerEntry `form:"-"`

	stats map[string]*int
}

func PlayerFormFrom(g federation.Gender, p federation.Player) *PlayerForm {
	str := func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	}
	return &PlayerForm{
		ID:       p.ID,
		Gender:   g,
		Name:     p.Name,
		Club:     p.Club,
		Position: p.Position,
		Age:      str(p.Age),
		Hand:     p.Hand,
		Height:   str(p.Height),
		Weight:   str(p.Weight),
		Spike:    str(p.Spike),
		Block:    str(p.Block),
		ImageURL: p.ImageURL,
		Bio:      p.Bio,
		Career:   p.Career,
	}
}

func (f *PlayerForm) Kind() federation.Kind { return f.Gender.Kind() }
func (f *PlayerForm) IsNew() bool           { return f.ID == 0 }

func (f *PlayerForm) decode(r *http.Request, key string) error {
	id, err := intKey(key)
	if err != nil {
		return err
	}
	f.ID = id
	f.Name = field(r, "name")
	f.Club = field(r, "club")
	f.Position = field(r, "position")
	f.Age = field(r, "age")
	f.Hand = field(r, "hand")
	f.Height = field(r, "height")
	f.Weight = field(r, "weight")
	f.Spike = field(r, "spike")
	f.Block = field(r, "block")
	f.ImageURL = field(r, "imageUrl")
	f.Bio = field(r, "bio")

	up, err := readMedia(r, "imageFile", false)
	if err != nil {
		return err
	}
	if up != nil {
		f.ImageURL = up.DataURI
	}
	return nil
}

func (f *PlayerForm) finish(time.Time) map[string]string {
	errs := map[string]string{}
	f.stats = map[string]*int{}
	for name, raw := range map[string]string{
		"age":    f.Age,
		"height": f.Height,
		"weight": f.Weight,
		"spike":  f.Spike,
		"block":  f.Block,
	} {
		n, err := utils.IntOrNil(raw)
		if err != nil || (n != nil && *n <= 0) {
			errs[name] = name + " harus berupa angka positif."
			continue
		}
		f.stats[name] = n
	}
	f.Hand = utils.FirstNonEmpty(f.Hand, DefaultHand)
	f.ImageURL = utils.FirstNonEmpty(f.ImageURL, AvatarURL(f.Name))
	return errs
}

// Record carries no gender; the collection it is saved into decides it.
func (f *PlayerForm) Record() federation.Player {
	career := f.Career
	if career == nil {
		career = []federation.CareerEntry{}
	}
	return federation.Player{
		ID:       f.ID,
		Name:     f.Name,
		Club:     f.Club,
		Position: f.Position,
		Age:      f.stats["age"],
		Height:   f.stats["height"],
		Weight:   f.stats["weight"],
		Spike:    f.stats["spike"],
		Block:    f.stats["block"],
		Hand:     f.Hand,
		ImageURL: f.ImageURL,
		Bio:      f.Bio,
		Career:   career,
	}
}

type ClubForm struct {
	ID          int    `form:"id"`
	Name        string `form:"name" validate:"required"`
	City        string `form:"city" validate:"required"`
	LogoURL     string `form:"logoUrl"`
	Status      string `form:"status"`
	Coach       string `form:"coach"`
	Founded     string `form:"founded"`
	Address     string `form:"address"`
	Description string `form:"description"`
	Instagram   string `form:"instagram"`
	Facebook    string `form:"facebook"`
	Website     string `form:"website" validate:"omitempty,url"`
	// Squad and Achievements are edited one entry per line.
	Squad        string `form:"squad"`
	Achievements string `form:"achievements"`
	// Coaches is not editable in the console; it is carried over on edit.
	Coaches []federation.ClubCoach `form:"-"`
}

func ClubFormFrom(c federation.Club) *ClubForm {
	f := &ClubForm{
		ID:          c.ID,
		Name:        c.Name,
		City:        c.City,
		LogoURL:     c.LogoURL,
		Status:      c.Status,
		Coach:       c.Coach,
		Founded:     c.Founded,
		Address:     c.Address,
		Description: c.Description,
		Coaches:     c.Coaches,
	}
	if c.Socials != nil {
		f.Instagram = c.Socials.Instagram
		f.Facebook = c.Socials.Facebook
		f.Website = c.Socials.Website
	}
	names := make([]string, 0, len(c.Squad))
	for _, m := range c.Squad {
		names = append(names, m.Name)
	}
	f.Squad = strings.Join(names, "\n")
	f.Achievements = strings.Join(c.Achievements, "\n")
	return f
}

func (f *ClubForm) Kind() federation.Kind { return federation.KindClubs }
func (f *ClubForm) IsNew() bool           { return f.ID == 0 }

func (f *ClubForm) decode(r *http.Request, key string) error {
	id, err := intKey(key)
	if err != nil {
		return err
	}
	f.ID = id
	f.Name = field(r, "name")
	f.City = field(r, "city")
	f.LogoURL = field(r, "logoUrl")
	f.Status = field(r, "status")
	f.Coach = field(r, "coach")
	f.Founded = field(r, "founded")
	f.Address = field(r, "address")
	f.Description = field(r, "description")
	f.Instagram = field(r, "instagram")
	f.Facebook = field(r, "facebook")
	f.Website = field(r, "website")
	f.Squad = rawField(r, "squad")
	f.Achievements = rawField(r, "achievements")

	up, err := readMedia(r, "logoFile", false)
	if err != nil {
		return err
	}
	if up != nil {
		f.LogoURL = up.DataURI
	}
	return nil
}

func (f *ClubForm) finish(time.Time) map[string]string {
	f.LogoURL = utils.FirstNonEmpty(f.LogoURL, AvatarURL(f.Name))
	f.Status = utils.FirstNonEmpty(f.Status, DefaultClubStatus)
	return nil
}

// Record numbers squad members in the order they were listed.
func (f *ClubForm) Record() federation.Club {
	squad := []federation.SquadMember{}
	for i, name := range utils.Lines(f.Squad) {
		squad = append(squad, federation.SquadMember{Number: i + 1, Name: name, Position: SquadPosition})
	}
	c := federation.Club{
		ID:           f.ID,
		Name:         f.Name,
		City:         f.City,
		LogoURL:      f.LogoURL,
		Status:       f.Status,
		Coach:        f.Coach,
		Founded:      f.Founded,
		Address:      f.Address,
		Description:  f.Description,
		Squad:        squad,
		Achievements: utils.Lines(f.Achievements),
		Coaches:      f.Coaches,
	}
	socials := &federation.SocialLinks{Instagram: f.Instagram, Facebook: f.Facebook, Website: f.Website}
	if !socials.Empty() {
		c.Socials = socials
	}
	return c
}
