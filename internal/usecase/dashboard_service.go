package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

// DashboardStats is the admin landing page summary.
type DashboardStats struct {
	Players     PlayerStats
	ActiveTeams int
	Matches     MatchStats
	Tournaments TournamentStats
}

type MatchStats struct {
	Scheduled  int
	InProgress int
	Completed  int
	Cancelled  int
	Total      int
}

type TournamentStats struct {
	Upcoming  int
	Ongoing   int
	Completed int
	Cancelled int
	Total     int
}

const dashboardWorkers = 4

type DashboardService struct {
	users       user.Repository
	teams       team.Repository
	matches     match.Repository
	tournaments tournament.Repository
}

func NewDashboardService(
	users user.Repository,
	teams team.Repository,
	matches match.Repository,
	tournaments tournament.Repository,
) *DashboardService {
	return &DashboardService{
		users:       users,
		teams:       teams,
		matches:     matches,
		tournaments: tournaments,
	}
}

// Stats collects the four aggregates concurrently. The first failure is
// returned once every task has finished.
func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Stats")
	defer span.End()

	var (
		out      DashboardStats
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	tasks := []func() error{
		func() error {
			counts, err := s.users.CountByStatus(ctx, user.RolePlayer)
			if err != nil {
				return fmt.Errorf("count players by status: %w", err)
			}
			out.Players = playerStatsFromCounts(counts)
			return nil
		},
		func() error {
			active, err := s.teams.CountActive(ctx)
			if err != nil {
				return fmt.Errorf("count active teams: %w", err)
			}
			out.ActiveTeams = active
			return nil
		},
		func() error {
			counts, err := s.matches.CountByStatus(ctx)
			if err != nil {
				return fmt.Errorf("count matches by status: %w", err)
			}
			out.Matches = matchStatsFromCounts(counts)
			return nil
		},
		func() error {
			counts, err := s.tournaments.CountByStatus(ctx)
			if err != nil {
				return fmt.Errorf("count tournaments by status: %w", err)
			}
			out.Tournaments = tournamentStatsFromCounts(counts)
			return nil
		},
	}

	pool, err := ants.NewPool(dashboardWorkers)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			record(task())
		}); err != nil {
			workers.Done()
			workers.Wait()
			return DashboardStats{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return DashboardStats{}, firstErr
	}
	return out, nil
}

func matchStatsFromCounts(counts map[match.Status]int) MatchStats {
	out := MatchStats{
		Scheduled:  counts[match.StatusScheduled],
		InProgress: counts[match.StatusInProgress],
		Completed:  counts[match.StatusCompleted],
		Cancelled:  counts[match.StatusCancelled],
	}
	out.Total = out.Scheduled + out.InProgress + out.Completed + out.Cancelled
	return out
}

func tournamentStatsFromCounts(counts map[tournament.Status]int) TournamentStats {
	out := TournamentStats{
		Upcoming:  counts[tournament.StatusUpcoming],
		Ongoing:   counts[tournament.StatusOngoing],
		Completed: counts[tournament.StatusCompleted],
		Cancelled: counts[tournament.StatusCancelled],
	}
	out.Total = out.Upcoming + out.Ongoing + out.Completed + out.Cancelled
	return out
}
