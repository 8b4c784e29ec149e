package engine

import "fmt"

const (
	kickoffSpot    = 35
	conversionSpot = 98
	fieldGoalSnap  = 17
)

// kickoff puts the ball in play for the receiving side, which already holds possession.
func (e *Engine) kickoff(s GameState) (GameState, []Effect) {
	receiver := e.team(s.Possession)
	kicker := e.team(s.Possession.Other())

	kickDistance := e.dice.between(60, 75)
	returnDistance := e.dice.between(0, 30)

	s.Down = 1
	s.YardsToGo = firstDownYards
	s.FieldPosition = clamp(fieldLength-kickDistance+returnDistance, 20, 50)
	s.PlayType = PlayNormal
	s.LastPlayKind = KindKickoff
	s.LastPlay = fmt.Sprintf("Kickoff by %s travels %d yards. Return by %s to their own %d yard line.",
		kicker.Name, kickDistance, receiver.Name, s.FieldPosition)
	s.DriveStatus = e.driveStatus(s)
	return s, []Effect{commentary(s.LastPlay)}
}

// fourthDown decides between a field goal, a punt, or giving the ball up on downs.
func (e *Engine) fourthDown(s GameState) (GameState, []Effect) {
	offense := e.team(s.Possession)
	switch {
	case s.FieldPosition > 65 && s.YardsToGo <= 4:
		distance := fieldLength - s.FieldPosition + fieldGoalSnap
		if e.dice.chance(float64(offense.SpecialTeamsRating) / 100) {
			s = s.addPoints(s.Possession, 3)
			s = s.changePossession()
			s.PlayType = PlayKickoff
			s.FieldPosition = kickoffSpot
			return s, []Effect{commentary(fmt.Sprintf("Field goal by %s is good from %d yards!", offense.Name, distance))}
		}
		s = turnoverOnDowns(s)
		return s, []Effect{commentary(fmt.Sprintf("Field goal by %s from %d yards is no good. Turnover on downs.", offense.Name, distance))}
	case s.FieldPosition < 65 || s.YardsToGo > 4:
		puntDistance := e.dice.between(40, 60)
		spot := clamp(fieldLength-s.FieldPosition-puntDistance, 20, 80)
		s = s.changePossession()
		s.FieldPosition = spot
		receiver := e.team(s.Possession)
		return s, []Effect{commentary(fmt.Sprintf("Punt by %s travels %d yards. Ball to %s at their own %d.",
			offense.Name, puntDistance, receiver.Name, spot))}
	default:
		s = turnoverOnDowns(s)
		return s, []Effect{commentary(fmt.Sprintf("Turnover on downs: %s stopped short.", offense.Name))}
	}
}

func turnoverOnDowns(s GameState) GameState {
	s = s.changePossession()
	s.FieldPosition = fieldLength - s.FieldPosition
	return s
}

// touchdown scores six for the offense and lines up the conversion attempt.
func (e *Engine) touchdown(s GameState) (GameState, []Effect) {
	scorer := e.team(s.Possession)
	s = s.addPoints(s.Possession, 6)
	if e.dice.chance(0.95) {
		s.PlayType = PlayExtraPoint
	} else {
		s.PlayType = PlayTwoPointConversion
	}
	s.FieldPosition = conversionSpot
	s.Down = 1
	s.YardsToGo = fieldLength - conversionSpot
	return s, []Effect{commentary(fmt.Sprintf("TOUCHDOWN %s!", scorer.Name))}
}

func (e *Engine) extraPoint(s GameState) (GameState, []Effect) {
	kicker := e.team(s.Possession)
	line := fmt.Sprintf("Extra point by %s is no good.", kicker.Name)
	if e.dice.chance(float64(kicker.SpecialTeamsRating) / 100) {
		s = s.addPoints(s.Possession, 1)
		line = fmt.Sprintf("Extra point by %s is good.", kicker.Name)
	}
	return e.afterConversion(s, KindExtraPoint, line)
}

func (e *Engine) twoPointConversion(s GameState) (GameState, []Effect) {
	offense := e.team(s.Possession)
	line := fmt.Sprintf("Two-point attempt by %s fails.", offense.Name)
	if e.dice.chance(float64(offense.OffenseRating) / 200) {
		s = s.addPoints(s.Possession, 2)
		line = fmt.Sprintf("Two-point conversion by %s is good!", offense.Name)
	}
	return e.afterConversion(s, KindTwoPoint, line)
}

// afterConversion hands the ball to the side receiving the next kickoff.
func (e *Engine) afterConversion(s GameState, kind PlayKind, line string) (GameState, []Effect) {
	s = s.changePossession()
	s.LastPlayKind = kind
	s.PlayType = PlayKickoff
	s.FieldPosition = kickoffSpot
	s.LastPlay = line
	s.DriveStatus = e.driveStatus(s)
	return s, []Effect{commentary(line)}
}
