package tictacq

import (
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TICTACQ_"

// LoadEnv loads the given dotenv files into the environment, skipping the ones
// that do not exist. Variables already set take precedence.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "loading %s", f)
		}
	}
	return nil
}

// FromEnv overrides fields of conf with TICTACQ_* environment variables.
func FromEnv(conf Config) (Config, error) {
	var errs error
	float := func(name string, dst *float64) {
		s, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			return
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "%s%s", EnvPrefix, name))
			return
		}
		*dst = v
	}
	integer := func(name string, dst *int) {
		s, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			return
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "%s%s", EnvPrefix, name))
			return
		}
		*dst = v
	}

	if s, ok := os.LookupEnv(EnvPrefix + "NAME"); ok {
		conf.Name = s
	}
	integer("EPISODES", &conf.Episodes)
	integer("WINDOW", &conf.Window)
	if s, ok := os.LookupEnv(EnvPrefix + "SEED"); ok {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "%sSEED", EnvPrefix))
		} else {
			conf.Seed = v
		}
	}
	float("LEARN_RATE", &conf.Table.LearnRate)
	float("DISCOUNT_RATE", &conf.Table.DiscountRate)
	float("EXPLORATION", &conf.Table.ExplorationInitial)
	float("EXPLORATION_MIN", &conf.Table.ExplorationMin)
	float("EXPLORATION_DECAY", &conf.Table.ExplorationDecay)
	float("WIN_REWARD", &conf.Rewards.Win)
	float("LOSS_REWARD", &conf.Rewards.Loss)
	float("DRAW_REWARD", &conf.Rewards.Draw)
	return conf, errs
}
