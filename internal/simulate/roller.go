package simulate

import (
	"fmt"
	"math/rand/v2"

	"github.com/justinian/dice"

	bang "github.com/AustinJGreen/bangdice/internal/dice"
)

// Roller rolls a single d6.
type Roller interface {
	RollD6() (int, error)
}

// DiceRoller rolls with the dice expression parser.
type DiceRoller struct{}

func (DiceRoller) RollD6() (int, error) {
	result, _, err := dice.Roll("1d6")
	if err != nil {
		return 0, fmt.Errorf("roll 1d6: %w", err)
	}
	return result.Int(), nil
}

// RandRoller is a seeded roller, for reproducible runs.
type RandRoller struct {
	rng *rand.Rand
}

func NewRandRoller(seed uint64) *RandRoller {
	return &RandRoller{rng: rand.New(rand.NewPCG(seed, 0))}
}

func (r *RandRoller) RollD6() (int, error) {
	return 1 + r.rng.IntN(6), nil
}

// FaceOf maps a d6 pip to the Bang! face it shows.
func FaceOf(pip int) bang.Face {
	switch pip {
	case 6:
		return bang.Gattling
	case 1:
		return bang.Dynamite
	default:
		return bang.Other
	}
}

// roll throws n dice and tallies the faces.
func roll(r Roller, n int) (bang.State, error) {
	var s bang.State
	for i := 0; i < n; i++ {
		pip, err := r.RollD6()
		if err != nil {
			return bang.State{}, err
		}
		if pip < 1 || pip > 6 {
			return bang.State{}, fmt.Errorf("pip %d: %w", pip, ErrBadPip)
		}
		switch FaceOf(pip) {
		case bang.Gattling:
			s.Gattling++
		case bang.Dynamite:
			s.Dynamite++
		default:
			s.Other++
		}
	}
	return s, nil
}
