package balldontlie

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/teams"
	"github.com/preston-bernstein/gridiron-sim/internal/providers"
)

func mapTeam(t teamResponse) teams.Team {
	return providers.ApplyBranding(teams.Team{
		ID:           fmt.Sprintf("%s-%d", providerName, t.ID),
		Name:         t.Name,
		FullName:     t.FullName,
		Abbreviation: strings.ToUpper(t.Abbreviation),
		City:         t.Location,
		Conference:   t.Conference,
		Division:     titleCase(t.Division),
	})
}

// titleCase turns upstream "NORTH" into "North".
func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
