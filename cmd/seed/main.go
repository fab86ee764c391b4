package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/config"
)

func main() {
	var opts options
	flag.BoolVar(&opts.reset, "reset", false, "empty every table before seeding")
	flag.Uint64Var(&opts.seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	flag.IntVar(&opts.votesPerConstituency, "votes", 30, "simulated ballots per closed constituency")
	flag.Float64Var(&opts.closedRatio, "closed", 0.8, "share of constituencies whose poll starts closed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stdout)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DSN(), postgres.PoolConfig{MaxOpenConns: 8})
	if err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if opts.reset {
		if err := postgres.Reset(ctx, db); err != nil {
			logger.Error("reset failed", "error", err)
			os.Exit(1)
		}
		logger.Info("tables cleared")
	}

	s := newSeeder(seedRepos{
		profiles:       postgres.NewProfileRepository(db),
		constituencies: postgres.NewConstituencyRepository(db),
		parties:        postgres.NewPartyRepository(db),
		candidates:     postgres.NewCandidateRepository(db),
		votes:          postgres.NewVoteRepository(db),
	}, opts, logger)

	summary, err := s.run(ctx)
	if err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seeding finished",
		"constituencies", summary.constituencies,
		"parties", summary.parties,
		"candidates", summary.candidates,
		"votes", summary.votes,
	)
}
