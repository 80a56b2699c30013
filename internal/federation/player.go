package federation

var Positions = []string{"Outside Hitter", "Opposite", "Middle Blocker", "Setter", "Libero", "Universal"}

type CareerEntry struct {
	Year        string `json:"year"`
	Team        string `json:"team"`
	Role        string `json:"role,omitempty"`
	Achievement string `json:"achievement,omitempty"`
}

type Player struct {
	ID       int           `json:"id"`
	Name     string        `json:"name" validate:"required"`
	Club     string        `json:"club"`
	Position string        `json:"position"`
	ImageURL string        `json:"imageUrl"`
	Age      *int          `json:"age,omitempty"`
	Height   *int          `json:"height,omitempty"`
	Weight   *int          `json:"weight,omitempty"`
	Spike    *int          `json:"spike,omitempty"`
	Block    *int          `json:"block,omitempty"`
	Hand     string        `json:"hand,omitempty"`
	Bio      string        `json:"bio,omitempty"`
	Career   []CareerEntry `json:"career,omitempty"`
	// Gender only travels on the wire when creating or filtering; the local
	// collections are already partitioned.
	Gender Gender `json:"gender,omitempty"`
}

func (p Player) Key() int { return p.ID }

func (p Player) WithNumericID(id int) Player {
	p.ID = id
	return p
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Website   string `json:"website,omitempty"`
}

func (s *SocialLinks) Empty() bool {
	return s == nil || (s.Instagram == "" && s.Facebook == "" && s.Website == "")
}

type SquadMember struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type ClubCoach struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	License  string `json:"license,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type Club struct {
	ID           int           `json:"id"`
	Name         string        `json:"name" validate:"required"`
	LogoURL      string        `json:"logoUrl"`
	City         string        `json:"city"`
	Status       string        `json:"status"`
	Coach        string        `json:"coach,omitempty"`
	Founded      string        `json:"founded,omitempty"`
	Address      string        `json:"address,omitempty"`
	Description  string        `json:"description,omitempty"`
	Socials      *SocialLinks  `json:"socials,omitempty"`
	Squad        []SquadMember `json:"squad"`
	Achievements []string      `json:"achievements"`
	Coaches      []ClubCoach   `json:"coaches,omitempty"`
}

func (c Club) Key() int { return c.ID }

func (c Club) WithNumericID(id int) Club {
	c.ID = id
	return c
}
