package views

import (
	"github.com/AdamBeresnev/pbvsi-sulut/internal/admin"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
)

type HomeData struct {
	News     []federation.NewsItem
	Live     []federation.Match
	Upcoming []federation.Match
}

type PlayerPage struct {
	Gender federation.Gender
	Player federation.Player
}

type AboutData struct {
	Missions []string
	Board    []Official
	Clubs    int
	Players  int
}

type ContactData struct {
	Form   service.ContactMessage
	Errors map[string]string
	Topics []string
	FAQs   []FAQ
}

// ReportData carries either the submitted form with its errors or, once
// accepted, the ticket id.
type ReportData struct {
	Form   service.Report
	Errors map[string]string
	Ticket string
}

type LoginData struct {
	Username  string
	Providers []string
}

// AdminRow is one record in a console list. Key is the record key as it
// appears in URLs.
type AdminRow struct {
	Key      string
	Title    string
	Subtitle string
	Image    string
}

type AdminListData struct {
	Kind federation.Kind
	Rows []AdminRow
}

type AdminFormData struct {
	Kind     federation.Kind
	Form     admin.Form
	Errors   map[string]string
	Warnings []string
	Action   string
}
