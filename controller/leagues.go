package controller

import (
	"context"
	"fmt"
	"slices"

	"github.com/amolgulati/LeagueLegacy/model"
)

func (c *controller) ListLeagues(ctx context.Context) ([]model.League, error) {
	return c.db.ListLeagues(ctx)
}

func (c *controller) DeleteLeague(ctx context.Context, leagueID int32) error {
	return c.db.DeleteLeague(ctx, leagueID)
}

func (c *controller) GetLeagueSeasons(ctx context.Context, leagueID int32) ([]model.SeasonSummary, error) {
	if _, err := c.db.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	seasons, err := c.db.ListSeasons(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error listing seasons: %w", err)
	}
	slices.SortFunc(seasons, func(a, b model.Season) int {
		return b.Year - a.Year
	})

	summaries := make([]model.SeasonSummary, 0, len(seasons))
	for _, s := range seasons {
		summary := model.SeasonSummary{Season: s}
		if name, err := c.teamOwnerName(ctx, s.ChampionTeamID); err == nil {
			summary.ChampionName = name
		}
		if name, err := c.teamOwnerName(ctx, s.RunnerUpTeamID); err == nil {
			summary.RunnerUpName = name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (c *controller) GetSeasonDetail(ctx context.Context, seasonID int32) (*model.SeasonDetail, error) {
	season, err := c.db.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	league, err := c.db.GetLeague(ctx, season.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("error getting league %d: %w", season.LeagueID, err)
	}

	teams, err := c.db.GetTeamsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("error getting teams: %w", err)
	}

	standings := make([]model.TeamStanding, 0, len(teams))
	for _, t := range teams {
		owner, err := c.db.GetOwner(ctx, t.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("error getting owner %d: %w", t.OwnerID, err)
		}
		standings = append(standings, model.TeamStanding{
			Team:      t,
			OwnerID:   owner.ID,
			OwnerName: owner.Name,
		})
	}
	slices.SortFunc(standings, func(a, b model.TeamStanding) int {
		return standingRank(a.Team) - standingRank(b.Team)
	})

	matchups, err := c.db.GetMatchupsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("error getting matchups: %w", err)
	}

	trades, err := c.db.GetTradesBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("error getting trades: %w", err)
	}

	return &model.SeasonDetail{
		Season:     *season,
		LeagueName: league.Name,
		Standings:  standings,
		Matchups:   matchups,
		Trades:     trades,
	}, nil
}

// standingRank orders a season's standings: final rank when the playoffs
// decided one, regular season rank otherwise.
func standingRank(t model.Team) int {
	if t.FinalRank > 0 {
		return t.FinalRank
	}
	return t.RegularSeasonRank + 100
}

// teamOwnerName resolves a team id to its owner's display name.
func (c *controller) teamOwnerName(ctx context.Context, teamID *int32) (string, error) {
	if teamID == nil {
		return "", nil
	}
	team, err := c.db.GetTeam(ctx, *teamID)
	if err != nil {
		return "", err
	}
	owner, err := c.db.GetOwner(ctx, team.OwnerID)
	if err != nil {
		return "", err
	}
	return owner.Name, nil
}
