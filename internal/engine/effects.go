package engine

// EffectKind names the side channel an Effect belongs to.
type EffectKind string

const (
	EffectCommentary EffectKind = "commentary"
	EffectEvent      EffectKind = "event"
	EffectInjury     EffectKind = "injury"
	EffectWeather    EffectKind = "weather"
	EffectCrowd      EffectKind = "crowd"
	EffectCoinToss   EffectKind = "coinToss"
)

// Injury describes a player hurt during a play.
type Injury struct {
	Side     Side   `json:"side"`
	Team     string `json:"team"`
	Player   string `json:"player"`
	Severity string `json:"severity"`
}

// Effect is one side-channel emission produced by a transition, in emission order.
type Effect struct {
	Kind    EffectKind `json:"kind"`
	Text    string     `json:"text,omitempty"`
	Injury  *Injury    `json:"injury,omitempty"`
	Weather string     `json:"weather,omitempty"`
	Crowd   int        `json:"crowd,omitempty"`
	Show    bool       `json:"show,omitempty"`
}

func commentary(text string) Effect {
	return Effect{Kind: EffectCommentary, Text: text}
}

func event(text string) Effect {
	return Effect{Kind: EffectEvent, Text: text}
}

// CoinTossAnimation toggles the coin toss overlay in the presentation layer.
func CoinTossAnimation(show bool) Effect {
	return Effect{Kind: EffectCoinToss, Show: show}
}

// Commentary returns the text of every commentary-bearing effect in order.
func Commentary(effects []Effect) []string {
	var out []string
	for _, e := range effects {
		switch e.Kind {
		case EffectCommentary, EffectInjury, EffectWeather, EffectCrowd:
			if e.Text != "" {
				out = append(out, e.Text)
			}
		}
	}
	return out
}
