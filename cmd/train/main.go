package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	tictacq "github.com/tictacq"
)

var (
	envFile  = flag.String("env", ".env", "optional dotenv file with TICTACQ_* overrides")
	episodes = flag.Int("episodes", 0, "training episodes (0 keeps the configured value)")
	window   = flag.Int("window", 0, "episodes per reported win ratio (0 keeps the configured value)")
	seed     = flag.Int64("seed", 0, "rng seed (0 keeps the configured value)")
	vsRandom = flag.Bool("vs_random", false, "train against the random benchmark instead of self play")
	games    = flag.Int("eval_games", 10000, "greedy games against random after training")
	workers  = flag.Int("workers", 4, "evaluation workers")
	verbose  = flag.Bool("v", false, "log every episode")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := tictacq.LoadEnv(*envFile); err != nil {
		logrus.Fatalf("error loading environment: %v", err)
	}
	conf, err := tictacq.FromEnv(tictacq.DefaultConfig())
	if err != nil {
		logrus.Fatalf("error reading environment: %v", err)
	}
	if *episodes > 0 {
		conf.Episodes = *episodes
	}
	if *window > 0 {
		conf.Window = *window
	}
	if *seed != 0 {
		conf.Seed = *seed
	}

	newTrainer := tictacq.NewSelfPlay
	if *vsRandom {
		newTrainer = tictacq.NewVsRandom
	}
	t, err := newTrainer(conf)
	if err != nil {
		logrus.Fatalf("error creating trainer: %v", err)
	}
	log := t.Logger()
	log.WithFields(logrus.Fields{
		"episodes":  conf.Episodes,
		"vs_random": *vsRandom,
		"table":     conf.Table,
		"rewards":   conf.Rewards,
	}).Info("training")

	if err := t.Learn(conf.Episodes); err != nil {
		log.Fatalf("error when learning: %+v", err)
	}
	mean, std := t.Summary()
	log.WithFields(logrus.Fields{"mean": mean, "std": std, "windows": len(t.History())}).Info("training finished")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rec, err := t.Evaluate(ctx, *games, *workers)
	if err != nil {
		log.Fatalf("error when evaluating: %+v", err)
	}
	log.Infof("greedy vs random: %v", rec)
}
