package engine

import "fmt"

const (
	weatherClear    = "Clear"
	severityMinor   = "minor"
	severitySerious = "serious"
)

var (
	weatherConditions = []string{weatherClear, "Cloudy", "Rainy", "Windy", "Snowy"}
	penaltyTypes      = []string{"Holding", "Pass Interference", "False Start", "Offsides", "Unnecessary Roughness"}
)

// playEvents rolls the ancillary events that can follow a scrimmage play.
func (e *Engine) playEvents(s GameState) (GameState, []Effect) {
	var effects []Effect
	if e.events.Injuries && e.dice.chance(0.05) {
		effects = append(effects, e.injury(s))
	}
	if e.events.Penalties && e.dice.chance(0.10) {
		var flagged []Effect
		s, flagged = e.penalty(s)
		effects = append(effects, flagged...)
	}
	if e.events.Weather && e.dice.chance(0.02) {
		var weather []Effect
		s, weather = e.weatherChange(s)
		effects = append(effects, weather...)
	}
	if e.events.Crowd {
		var crowd Effect
		s, crowd = e.crowdReaction(s)
		effects = append(effects, crowd)
	}
	return s, effects
}

func (e *Engine) injury(s GameState) Effect {
	side := s.Possession
	team := e.team(side)
	player := e.playerTag(offensivePositions)
	severity := severityMinor
	if !e.dice.coin() {
		severity = severitySerious
	}
	return Effect{
		Kind: EffectInjury,
		Text: fmt.Sprintf("Injury on the field: %s of %s is down with a %s injury.", player, team.Name, severity),
		Injury: &Injury{
			Side:     side,
			Team:     team.Abbreviation,
			Player:   player,
			Severity: severity,
		},
	}
}

// penalty flags a random side and walks off the yardage.
func (e *Engine) penalty(s GameState) (GameState, []Effect) {
	side := SideAway
	if e.dice.coin() {
		side = SideHome
	}
	kind := e.dice.pick(penaltyTypes)

	yards := 5
	switch kind {
	case "Pass Interference":
		yards = min(s.YardsToGo, 15)
	case "Unnecessary Roughness":
		yards = 15
	}

	if side == s.Possession {
		s.YardsToGo += yards
		s.FieldPosition -= yards
	} else {
		s.YardsToGo -= yards
		s.FieldPosition += yards
	}
	s = s.clampField()
	s.Penalties = s.Penalties.Add(side, 1)

	team := e.team(side)
	return s, []Effect{
		commentary(fmt.Sprintf("Flag on the play: %s on %s. %d yard penalty.", kind, team.Name, yards)),
		event(fmt.Sprintf("PENALTY: %s, %s (%d yds)", kind, team.Abbreviation, yards)),
	}
}

func (e *Engine) weatherChange(s GameState) (GameState, []Effect) {
	s.Weather = e.dice.pick(weatherConditions)
	return s, []Effect{{
		Kind:    EffectWeather,
		Text:    fmt.Sprintf("Weather update: conditions are now %s.", s.Weather),
		Weather: s.Weather,
	}}
}

// crowdReaction recomputes crowd excitement; close games swing more.
func (e *Engine) crowdReaction(s GameState) (GameState, Effect) {
	diff := s.ScoreDiff()
	factor := 10
	if abs(diff) <= 7 {
		factor = 20
	}
	level := 50 + e.dice.between(0, factor)
	switch {
	case diff > 0:
		level += 10
	case diff < 0:
		level -= 10
	}
	s.Crowd = clamp(level, 0, 100)

	var text string
	switch {
	case s.Crowd > 90:
		text = fmt.Sprintf("The crowd is going wild! (%d%%)", s.Crowd)
	case s.Crowd < 60:
		text = fmt.Sprintf("It's eerily quiet in the stadium. (%d%%)", s.Crowd)
	default:
		text = fmt.Sprintf("The fans are on their feet! (%d%%)", s.Crowd)
	}
	return s, Effect{Kind: EffectCrowd, Text: text, Crowd: s.Crowd}
}
