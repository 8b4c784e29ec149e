package teams

// DefaultRating is used when a provider supplies no rating for a team.
const DefaultRating = 80

// Team represents the normalized team shape used by rosters and games.
// Ratings are nominally 70-89 when generated, but any positive value is accepted.
type Team struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	FullName           string `json:"fullName"`
	Abbreviation       string `json:"abbreviation"`
	City               string `json:"city"`
	Conference         string `json:"conference"`
	Division           string `json:"division"`
	Color              string `json:"color"`
	Logo               string `json:"logo"`
	OffenseRating      int    `json:"offenseRating"`
	DefenseRating      int    `json:"defenseRating"`
	SpecialTeamsRating int    `json:"specialTeamsRating"`
	ExactRatings       bool   `json:"exactRatings,omitempty"`
}

// Normalize fills missing display fields with fallback. A rating that is zero
// or negative counts as missing and becomes DefaultRating. With ExactRatings
// set, zero is kept and only negative ratings are reset.
func (t Team) Normalize(fallback string) Team {
	if t.Name == "" {
		t.Name = fallback
	}
	if t.Abbreviation == "" {
		t.Abbreviation = fallback
	}
	t.OffenseRating = t.rating(t.OffenseRating)
	t.DefenseRating = t.rating(t.DefenseRating)
	t.SpecialTeamsRating = t.rating(t.SpecialTeamsRating)
	return t
}

// Rated reports whether any rating was supplied.
func (t Team) Rated() bool {
	return t.ExactRatings || t.OffenseRating > 0 || t.DefenseRating > 0 || t.SpecialTeamsRating > 0
}

func (t Team) rating(v int) int {
	if v > 0 || (v == 0 && t.ExactRatings) {
		return v
	}
	return DefaultRating
}
