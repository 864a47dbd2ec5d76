package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"

	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/amolgulati/LeagueLegacy/platforms/yahoo"
)

func (c *controller) ImportYahooLeague(ctx context.Context, sessionID, leagueKey string) (*model.LeagueImportResult, error) {
	if err := yahoo.ValidateLeagueKey(leagueKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	chain, err := c.walkYahooChain(ctx, sessionID, leagueKey)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: league %s has no seasons", ErrValidation, leagueKey)
	}

	newest := chain[0]
	league := &model.League{
		Platform:         model.PlatformYahoo,
		PlatformLeagueID: leagueKey,
		Name:             newest.Name,
		TeamCount:        newest.NumTeams,
		ScoringType:      newest.ScoringType,
	}
	if err := c.db.UpsertLeague(ctx, league); err != nil {
		return nil, fmt.Errorf("error upserting league: %w", err)
	}

	result := &model.LeagueImportResult{
		LeagueID:   league.ID,
		LeagueName: league.Name,
	}

	for i := len(chain) - 1; i >= 0; i-- {
		sr := c.importYahooSeason(ctx, sessionID, league.ID, chain[i])
		result.Seasons = append(result.Seasons, sr)
		if sr.Error == "" {
			result.SeasonsImported++
			result.TeamsImported += sr.TeamsImported
			result.MatchupsImported += sr.MatchupsImported
			result.TradesImported += sr.TradesImported
		}
	}

	c.attachChampion(ctx, league.ID, result)
	return result, nil
}

func (c *controller) ImportAllYahooLeagues(ctx context.Context, sessionID string, gameKeys []string) ([]model.LeagueImportResult, error) {
	if len(gameKeys) == 0 {
		gameKeys = yahoo.DefaultGameKeys
	}

	// Newer game keys come first, so a league's current season is
	// found before any of its renewals.
	seen := make(map[string]bool)
	var keys []string
	for _, gameKey := range gameKeys {
		var leagues []yahoo.League
		err := c.withYahooClient(ctx, sessionID, func(httpClient *http.Client) error {
			var err error
			leagues, err = c.yahoo.GetUserLeagues(httpClient, gameKey)
			return err
		})
		if err != nil {
			var authErr *yahoo.AuthError
			if errors.As(err, &authErr) {
				return nil, err
			}
			// Game keys the user never played are skipped.
			log.Printf("skipping yahoo game key %s: %v", gameKey, err)
			continue
		}

		for _, l := range leagues {
			if !seen[l.Key] {
				seen[l.Key] = true
				keys = append(keys, l.Key)
			}
			// Prior seasons are imported via the renew chain, not as
			// their own leagues.
			if prev := l.PreviousLeagueKey(); prev != "" {
				seen[prev] = true
			}
		}
	}

	results := make([]model.LeagueImportResult, 0, len(keys))
	for _, key := range keys {
		r, err := c.ImportYahooLeague(ctx, sessionID, key)
		if err != nil {
			log.Printf("error importing yahoo league %s: %v", key, err)
			results = append(results, model.LeagueImportResult{
				LeagueName: key,
				Seasons:    []model.SeasonImportResult{{Error: err.Error()}},
			})
			continue
		}
		results = append(results, *r)
	}
	return results, nil
}

// walkYahooChain follows the renew link from leagueKey back through
// prior seasons, newest first. Visited keys terminate the walk.
func (c *controller) walkYahooChain(ctx context.Context, sessionID, leagueKey string) ([]*yahoo.League, error) {
	var chain []*yahoo.League
	err := c.withYahooClient(ctx, sessionID, func(httpClient *http.Client) error {
		chain = chain[:0]
		visited := make(map[string]bool)

		key := leagueKey
		for key != "" && !visited[key] {
			visited[key] = true

			l, err := c.yahoo.GetLeague(httpClient, key)
			if err != nil {
				var authErr *yahoo.AuthError
				if errors.As(err, &authErr) || len(chain) == 0 {
					return err
				}
				// Old seasons can be gone or inaccessible.
				log.Printf("stopping yahoo chain at %s: %v", key, err)
				break
			}
			chain = append(chain, l)
			key = l.PreviousLeagueKey()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking yahoo league chain: %w", err)
	}
	return chain, nil
}

type yahooSeasonData struct {
	teams    []yahoo.Team
	matchups []yahoo.Matchup
	trades   []yahoo.Trade
}

func (c *controller) importYahooSeason(ctx context.Context, sessionID string, leagueID int32, yl *yahoo.League) model.SeasonImportResult {
	res := model.SeasonImportResult{SeasonYear: yl.Season}

	fail := func(err error) model.SeasonImportResult {
		res.Error = err.Error()
		return res
	}

	var data yahooSeasonData
	err := c.withYahooClient(ctx, sessionID, func(httpClient *http.Client) error {
		return c.fetchYahooSeason(httpClient, yl, &data)
	})
	if err != nil {
		return fail(err)
	}

	regularWeeks := yl.EndWeek
	if yl.PlayoffStartWeek > 0 {
		regularWeeks = yl.PlayoffStartWeek - 1
	}
	playoffWeeks := yl.EndWeek - regularWeeks
	if playoffWeeks < 0 {
		playoffWeeks = 0
	}

	season := &model.Season{
		LeagueID:           leagueID,
		Year:               yl.Season,
		RegularSeasonWeeks: regularWeeks,
		PlayoffWeeks:       playoffWeeks,
		PlayoffTeamCount:   yl.NumPlayoffTeams,
		IsComplete:         yl.IsFinished,
	}
	if err := c.db.UpsertSeason(ctx, season); err != nil {
		return fail(fmt.Errorf("error upserting season: %w", err))
	}

	teams := make(map[string]*model.Team, len(data.teams))
	var regularSeasonWinner *model.Team
	for _, t := range data.teams {
		owner, err := c.resolveYahooOwner(ctx, t)
		if err != nil {
			return fail(fmt.Errorf("error resolving owner for team %s: %w", t.Key, err))
		}

		madePlayoffs := t.PlayoffSeed > 0 &&
			(yl.NumPlayoffTeams == 0 || t.PlayoffSeed <= yl.NumPlayoffTeams)

		team := &model.Team{
			SeasonID:          season.ID,
			OwnerID:           owner.ID,
			Name:              t.Name,
			PlatformTeamID:    t.Key,
			Wins:              t.Wins,
			Losses:            t.Losses,
			Ties:              t.Ties,
			PointsFor:         t.PointsFor,
			PointsAgainst:     t.PointsAgainst,
			RegularSeasonRank: t.Rank,
			MadePlayoffs:      madePlayoffs,
		}
		if err := c.db.UpsertTeam(ctx, team); err != nil {
			return fail(fmt.Errorf("error upserting team %s: %w", t.Key, err))
		}
		teams[t.Key] = team
		res.TeamsImported++

		// Seed 1 is the best regular season record.
		if t.PlayoffSeed == 1 {
			regularSeasonWinner = team
		}
	}

	if regularSeasonWinner != nil {
		season.RegularSeasonWinnerID = &regularSeasonWinner.ID
		if err := c.db.UpsertSeason(ctx, season); err != nil {
			return fail(fmt.Errorf("error writing regular season winner: %w", err))
		}
	}

	matchups, champKey, runnerUpKey := normalizeYahooMatchups(season.ID, yl, data.matchups, teams)
	if err := c.db.UpsertMatchups(ctx, season.ID, matchups); err != nil {
		return fail(fmt.Errorf("error upserting matchups: %w", err))
	}
	res.MatchupsImported = len(matchups)

	if err := c.writeYahooStreaks(ctx, matchups, teams, champKey, runnerUpKey); err != nil {
		return fail(err)
	}

	for _, t := range data.trades {
		trade := normalizeYahooTrade(season.ID, &t, teams)
		if trade == nil {
			continue
		}
		if err := c.db.UpsertTrade(ctx, trade); err != nil {
			return fail(fmt.Errorf("error upserting trade %s: %w", t.ID, err))
		}
		res.TradesImported++
	}

	if yl.IsFinished && champKey != "" {
		champ := teams[champKey]
		var runnerUpID *int32
		if ru, ok := teams[runnerUpKey]; ok {
			runnerUpID = &ru.ID
		}
		if err := c.db.SetSeasonResults(ctx, season.ID, &champ.ID, runnerUpID); err != nil {
			log.Printf("error setting season results for season %d: %v", season.ID, err)
		}
	}

	return res
}

func (c *controller) fetchYahooSeason(httpClient *http.Client, yl *yahoo.League, data *yahooSeasonData) error {
	teams, err := c.yahoo.GetStandings(httpClient, yl.Key)
	if err != nil {
		return fmt.Errorf("error getting standings: %w", err)
	}
	data.teams = teams

	lastWeek := yl.EndWeek
	if !yl.IsFinished && yl.CurrentWeek > 0 && yl.CurrentWeek < lastWeek {
		lastWeek = yl.CurrentWeek
	}

	data.matchups = data.matchups[:0]
	for week := yl.StartWeek; week <= lastWeek; week++ {
		if week < 1 {
			continue
		}
		matchups, err := c.yahoo.GetScoreboard(httpClient, yl.Key, week)
		if err != nil {
			return fmt.Errorf("error getting scoreboard for week %d: %w", week, err)
		}
		data.matchups = append(data.matchups, matchups...)
	}

	trades, err := c.yahoo.GetTrades(httpClient, yl.Key)
	if err != nil {
		return fmt.Errorf("error getting trades: %w", err)
	}
	data.trades = trades
	return nil
}

// normalizeYahooMatchups maps scoreboard entries onto matchup rows and
// picks out the championship: the final week's playoff matchup that is
// not a consolation game.
func normalizeYahooMatchups(seasonID int32, yl *yahoo.League, matchups []yahoo.Matchup,
	teams map[string]*model.Team) ([]model.Matchup, string, string) {
	results := make([]model.Matchup, 0, len(matchups))
	champKey, runnerUpKey := "", ""

	for _, ym := range matchups {
		home, homeOK := teams[ym.Teams[0].Key]
		away, awayOK := teams[ym.Teams[1].Key]
		if !homeOK || !awayOK {
			log.Printf("skipping matchup with unknown team in week %d", ym.Week)
			continue
		}
		if ym.Teams[0].Points == 0 && ym.Teams[1].Points == 0 && !ym.IsTied {
			continue // not played yet
		}

		m := model.Matchup{
			SeasonID:      seasonID,
			Week:          ym.Week,
			HomeTeamID:    home.ID,
			AwayTeamID:    away.ID,
			HomeScore:     ym.Teams[0].Points,
			AwayScore:     ym.Teams[1].Points,
			IsPlayoff:     ym.IsPlayoffs,
			IsConsolation: ym.IsConsolation,
		}

		switch {
		case ym.IsTied || ym.Teams[0].Points == ym.Teams[1].Points:
			m.IsTie = true
		case ym.WinnerTeamKey == home.PlatformTeamID:
			m.WinnerTeamID = &home.ID
		case ym.WinnerTeamKey == away.PlatformTeamID:
			m.WinnerTeamID = &away.ID
		case ym.Teams[0].Points > ym.Teams[1].Points:
			m.WinnerTeamID = &home.ID
		default:
			m.WinnerTeamID = &away.ID
		}

		isFinal := ym.Week == yl.EndWeek && ym.IsPlayoffs && !ym.IsConsolation
		if isFinal && m.WinnerTeamID != nil {
			m.IsChampionship = true
			if *m.WinnerTeamID == home.ID {
				champKey, runnerUpKey = ym.Teams[0].Key, ym.Teams[1].Key
			} else {
				champKey, runnerUpKey = ym.Teams[1].Key, ym.Teams[0].Key
			}
		}

		results = append(results, m)
	}
	return results, champKey, runnerUpKey
}

// writeYahooStreaks computes longest win streaks from the imported
// matchups and records final ranks for the championship pair.
func (c *controller) writeYahooStreaks(ctx context.Context, matchups []model.Matchup,
	teams map[string]*model.Team, champKey, runnerUpKey string) error {
	ordered := slices.Clone(matchups)
	slices.SortFunc(ordered, func(a, b model.Matchup) int {
		return a.Week - b.Week
	})

	current := make(map[int32]int)
	longest := make(map[int32]int)
	record := func(teamID int32, won bool) {
		if !won {
			current[teamID] = 0
			return
		}
		current[teamID]++
		if current[teamID] > longest[teamID] {
			longest[teamID] = current[teamID]
		}
	}
	for _, m := range ordered {
		homeWon := m.WinnerTeamID != nil && *m.WinnerTeamID == m.HomeTeamID
		awayWon := m.WinnerTeamID != nil && *m.WinnerTeamID == m.AwayTeamID
		record(m.HomeTeamID, homeWon)
		record(m.AwayTeamID, awayWon)
	}

	for key, team := range teams {
		finalRank := 0
		if key == champKey {
			finalRank = 1
		} else if key == runnerUpKey {
			finalRank = 2
		}

		if team.LongestWinStreak == longest[team.ID] && team.FinalRank == finalRank {
			continue
		}
		team.LongestWinStreak = longest[team.ID]
		if finalRank > 0 {
			team.FinalRank = finalRank
		}
		if err := c.db.UpsertTeam(ctx, team); err != nil {
			return fmt.Errorf("error writing streak for team %d: %w", team.ID, err)
		}
	}
	return nil
}

// normalizeYahooTrade groups the traded players by the receiving and
// sending side of each participant.
func normalizeYahooTrade(seasonID int32, t *yahoo.Trade, teams map[string]*model.Team) *model.Trade {
	trade := &model.Trade{
		SeasonID:        seasonID,
		PlatformTradeID: t.ID,
		TradeDate:       t.Date,
		Status:          "completed",
	}

	participants := make(map[string]bool)
	for _, p := range t.Players {
		to, toOK := teams[p.ToTeamKey]
		from, fromOK := teams[p.FromTeamKey]
		if !toOK || !fromOK {
			log.Printf("skipping trade %s: unknown team", t.ID)
			return nil
		}
		if !participants[p.ToTeamKey] {
			participants[p.ToTeamKey] = true
			trade.TeamIDs = append(trade.TeamIDs, to.ID)
		}
		if !participants[p.FromTeamKey] {
			participants[p.FromTeamKey] = true
			trade.TeamIDs = append(trade.TeamIDs, from.ID)
		}

		trade.AssetsFor(p.ToTeamKey).Received = append(trade.AssetsFor(p.ToTeamKey).Received, p.Name)
		trade.AssetsFor(p.FromTeamKey).Sent = append(trade.AssetsFor(p.FromTeamKey).Sent, p.Name)
	}

	if len(trade.TeamIDs) == 0 {
		return nil
	}
	return trade
}
