package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/config"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
	"github.com/vncsmyrnk/election/internal/core/services"
)

type winner struct {
	ConstituencyID int64  `json:"constituencyId"`
	Province       string `json:"province"`
	ZoneNumber     int    `json:"zoneNumber"`
	IsPollOpen     bool   `json:"isPollOpen"`
	CandidateName  string `json:"candidateName,omitempty"`
	PartyName      string `json:"partyName,omitempty"`
	VoteCount      int64  `json:"voteCount"`
	TotalVotes     int64  `json:"totalVotes"`
}

type report struct {
	GeneratedAt time.Time              `json:"generatedAt"`
	Dashboard   *domain.DashboardStats `json:"dashboard"`
	Winners     []winner               `json:"winners"`
}

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "maximum time to build the report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DSN(), postgres.PoolConfig{MaxOpenConns: 8})
	if err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	results := services.NewResultService(
		postgres.NewConstituencyRepository(db),
		postgres.NewCandidateRepository(db),
		postgres.NewPartyRepository(db),
		postgres.NewProfileRepository(db),
		postgres.NewVoteRepository(db),
	)

	logger.Info("building results report")
	if err := writeReport(ctx, os.Stdout, results, time.Now()); err != nil {
		logger.Error("failed to build report", "error", err)
		os.Exit(1)
	}
	logger.Info("results report completed")
}

func writeReport(ctx context.Context, w io.Writer, results ports.ResultService, now time.Time) error {
	dashboard, err := results.DashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	all, err := results.AllResults(ctx)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report{
		GeneratedAt: now.UTC(),
		Dashboard:   dashboard,
		Winners:     winners(all.Constituencies),
	})
}

// winners lists the leading candidate of every constituency. Open polls are
// included with their current leader.
func winners(results []domain.ConstituencyResult) []winner {
	out := make([]winner, 0, len(results))
	for _, r := range results {
		w := winner{
			ConstituencyID: r.ConstituencyID,
			Province:       r.Province,
			ZoneNumber:     r.ZoneNumber,
			IsPollOpen:     r.IsPollOpen,
			TotalVotes:     r.TotalVotes,
		}
		if len(r.Candidates) > 0 {
			lead := r.Candidates[0]
			w.CandidateName = lead.CandidateName
			w.PartyName = lead.PartyName
			w.VoteCount = lead.VoteCount
		}
		out = append(out, w)
	}
	return out
}
