package entity

import (
	"errors"
	"fmt"
)

type Difficulty string

const (
	EasyDifficulty       Difficulty = "easy"
	MediumDifficulty     Difficulty = "medium"
	HardDifficulty       Difficulty = "hard"
	ImpossibleDifficulty Difficulty = "impossible"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// searchProbability - chance that the bot plays the searched move instead of a random one.
var searchProbability = map[Difficulty]float64{
	EasyDifficulty:       0,
	MediumDifficulty:     0.5,
	HardDifficulty:       0.8,
	ImpossibleDifficulty: 1,
}

func ParseDifficulty(value string) (Difficulty, error) {
	difficulty := Difficulty(value)
	if _, ok := searchProbability[difficulty]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
	}

	return difficulty, nil
}

// SearchProbability returns 0 for an unknown difficulty, callers check it with ParseDifficulty first.
func (that Difficulty) SearchProbability() float64 {
	return searchProbability[that]
}
