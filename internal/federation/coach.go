package federation

// Licenses lists coaching licences from the highest grade down.
var Licenses = []string{"FIVB Level 2", "FIVB Level 1", "Nasional A", "Nasional B", "Nasional C", "Daerah"}

// Coach is a licensed coach in the provincial coaching directory. The
// directory is published content and is not managed through the console.
type Coach struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Club           string        `json:"club"`
	License        string        `json:"license"`
	Specialization string        `json:"specialization"`
	Experience     int           `json:"experience"`
	Age            int           `json:"age"`
	ImageURL       string        `json:"imageUrl"`
	Bio            string        `json:"bio"`
	Career         []CareerEntry `json:"career"`
}

// Senior reports whether the licence is national A grade or international.
func (c Coach) Senior() bool {
	return c.License == "Nasional A" || c.License == "FIVB Level 1" || c.License == "FIVB Level 2"
}
