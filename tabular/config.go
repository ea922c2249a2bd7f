package tabular

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Config configures a learning agent's rates.
type Config struct {
	LearnRate          float64 `json:"learn_rate"`          // EWMA blend, window of roughly 1/LearnRate samples
	DiscountRate       float64 `json:"discount_rate"`       // per-move attenuation of the terminal reward
	ExplorationInitial float64 `json:"exploration_initial"` // 1.0 = always explore
	ExplorationMin     float64 `json:"exploration_min"`
	ExplorationDecay   float64 `json:"exploration_decay"` // applied once per episode
}

func DefaultConfig() Config {
	return Config{
		LearnRate:          0.01,
		DiscountRate:       0.9,
		ExplorationInitial: 1.0,
		ExplorationMin:     0.01,
		ExplorationDecay:   0.9999,
	}
}

// Validate reports every out of range field at once.
func (c Config) Validate() error {
	var errs error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.LearnRate > 0 && c.LearnRate <= 1, "learn rate %v not in (0, 1]", c.LearnRate)
	check(c.DiscountRate >= 0 && c.DiscountRate <= 1, "discount rate %v not in [0, 1]", c.DiscountRate)
	check(c.ExplorationInitial >= 0 && c.ExplorationInitial <= 1, "initial exploration %v not in [0, 1]", c.ExplorationInitial)
	check(c.ExplorationMin >= 0 && c.ExplorationMin <= c.ExplorationInitial, "minimum exploration %v not in [0, %v]", c.ExplorationMin, c.ExplorationInitial)
	check(c.ExplorationDecay > 0 && c.ExplorationDecay <= 1, "exploration decay %v not in (0, 1]", c.ExplorationDecay)
	return errs
}

func (c Config) IsValid() bool { return c.Validate() == nil }
