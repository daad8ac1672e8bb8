package entity

// ScoreTally - persisted score counters, one increment per finished game.
type ScoreTally struct {
	X    int `json:"x"`
	O    int `json:"o"`
	Ties int `json:"ties"`
}

func (that *ScoreTally) Add(outcome Outcome) bool {
	switch {
	case outcome.Result == Tie:
		that.Ties++
	case outcome.Result == Win && outcome.Winner == PlayerX:
		that.X++
	case outcome.Result == Win && outcome.Winner == PlayerO:
		that.O++
	default:
		return false
	}

	return true
}
