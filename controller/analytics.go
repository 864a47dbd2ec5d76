package controller

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/amolgulati/LeagueLegacy/model"
)

func (c *controller) GetOwnerHistory(ctx context.Context, ownerID int32) (*model.OwnerHistory, error) {
	owner, err := c.db.GetOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	teams, err := c.db.GetTeamsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error getting teams: %w", err)
	}

	history := &model.OwnerHistory{Owner: *owner, Seasons: []model.OwnerSeason{}}
	for _, t := range teams {
		season, err := c.db.GetSeason(ctx, t.SeasonID)
		if err != nil {
			return nil, fmt.Errorf("error getting season %d: %w", t.SeasonID, err)
		}
		league, err := c.db.GetLeague(ctx, season.LeagueID)
		if err != nil {
			return nil, fmt.Errorf("error getting league %d: %w", season.LeagueID, err)
		}

		champion := season.ChampionTeamID != nil && *season.ChampionTeamID == t.ID
		history.Seasons = append(history.Seasons, model.OwnerSeason{
			Year:         season.Year,
			LeagueName:   league.Name,
			TeamName:     t.Name,
			Wins:         t.Wins,
			Losses:       t.Losses,
			Ties:         t.Ties,
			PointsFor:    t.PointsFor,
			FinalRank:    t.FinalRank,
			MadePlayoffs: t.MadePlayoffs,
			Champion:     champion,
		})

		history.Career.Seasons++
		history.Career.Wins += t.Wins
		history.Career.Losses += t.Losses
		history.Career.Ties += t.Ties
		history.Career.PointsFor += t.PointsFor
		history.Career.PointsAgainst += t.PointsAgainst
		if t.MadePlayoffs {
			history.Career.PlayoffAppearances++
		}
		if champion {
			history.Career.Championships++
		}
	}

	if games := history.Career.Wins + history.Career.Losses + history.Career.Ties; games > 0 {
		history.Career.WinPct = float64(history.Career.Wins) / float64(games)
	}

	slices.SortFunc(history.Seasons, func(a, b model.OwnerSeason) int {
		if a.Year != b.Year {
			return b.Year - a.Year
		}
		return strings.Compare(a.LeagueName, b.LeagueName)
	})
	return history, nil
}

func (c *controller) GetHeadToHead(ctx context.Context, ownerAID, ownerBID int32) (*model.HeadToHead, error) {
	if ownerAID == ownerBID {
		return nil, fmt.Errorf("%w: cannot compare an owner with themselves", ErrValidation)
	}

	ownerA, err := c.db.GetOwner(ctx, ownerAID)
	if err != nil {
		return nil, err
	}
	ownerB, err := c.db.GetOwner(ctx, ownerBID)
	if err != nil {
		return nil, err
	}

	teamsB, err := c.db.GetTeamsByOwner(ctx, ownerBID)
	if err != nil {
		return nil, fmt.Errorf("error getting teams: %w", err)
	}
	bTeams := make(map[int32]bool, len(teamsB))
	for _, t := range teamsB {
		bTeams[t.ID] = true
	}

	matchups, err := c.db.GetOwnerMatchups(ctx, ownerAID)
	if err != nil {
		return nil, fmt.Errorf("error getting matchups: %w", err)
	}

	h2h := &model.HeadToHead{OwnerA: *ownerA, OwnerB: *ownerB, Meetings: []model.Meeting{}}
	for _, om := range matchups {
		m := om.Matchup
		opponent := m.AwayTeamID
		if om.TeamID == m.AwayTeamID {
			opponent = m.HomeTeamID
		}
		if !bTeams[opponent] || !m.Decided() {
			continue
		}

		scoreA, scoreB := m.HomeScore, m.AwayScore
		if om.TeamID == m.AwayTeamID {
			scoreA, scoreB = m.AwayScore, m.HomeScore
		}

		meeting := model.Meeting{
			Year:      om.SeasonYear,
			Week:      m.Week,
			ScoreA:    scoreA,
			ScoreB:    scoreB,
			IsPlayoff: m.IsPlayoff,
			IsTie:     m.IsTie,
		}
		switch {
		case m.IsTie:
			h2h.Ties++
		case om.Won():
			h2h.WinsA++
			meeting.WinnerName = ownerA.Name
		default:
			h2h.WinsB++
			meeting.WinnerName = ownerB.Name
		}
		h2h.PointsA += scoreA
		h2h.PointsB += scoreB
		h2h.Meetings = append(h2h.Meetings, meeting)
	}

	slices.SortFunc(h2h.Meetings, func(a, b model.Meeting) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return a.Week - b.Week
	})
	return h2h, nil
}

func (c *controller) GetLeagueRecords(ctx context.Context, leagueID int32) (*model.LeagueRecords, error) {
	if _, err := c.db.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	seasons, err := c.db.ListSeasons(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error listing seasons: %w", err)
	}

	records := &model.LeagueRecords{LeagueID: leagueID, LongestWinStreaks: []model.StreakRecord{}}
	names := newOwnerNames(c)

	var streaks []model.StreakRecord
	for _, season := range seasons {
		teams, err := c.db.GetTeamsBySeason(ctx, season.ID)
		if err != nil {
			return nil, fmt.Errorf("error getting teams for season %d: %w", season.ID, err)
		}
		byID := make(map[int32]model.Team, len(teams))
		for _, t := range teams {
			byID[t.ID] = t
			if t.LongestWinStreak > 0 {
				name, err := names.get(ctx, t.OwnerID)
				if err != nil {
					return nil, err
				}
				streaks = append(streaks, model.StreakRecord{
					OwnerName: name,
					Year:      season.Year,
					Length:    t.LongestWinStreak,
				})
			}
		}

		matchups, err := c.db.GetMatchupsBySeason(ctx, season.ID)
		if err != nil {
			return nil, fmt.Errorf("error getting matchups for season %d: %w", season.ID, err)
		}
		for _, m := range matchups {
			if err := c.foldScoreRecords(ctx, records, season.Year, m, byID, names); err != nil {
				return nil, err
			}
		}

		trades, err := c.db.GetTradesBySeason(ctx, season.ID)
		if err != nil {
			return nil, fmt.Errorf("error getting trades for season %d: %w", season.ID, err)
		}
		if len(trades) > 0 &&
			(records.MostTradesSeason == nil || len(trades) > records.MostTradesSeason.Count) {
			records.MostTradesSeason = &model.TradeCountRecord{Year: season.Year, Count: len(trades)}
		}
	}

	slices.SortFunc(streaks, func(a, b model.StreakRecord) int {
		if a.Length != b.Length {
			return b.Length - a.Length
		}
		return a.Year - b.Year
	})
	if len(streaks) > 5 {
		streaks = streaks[:5]
	}
	records.LongestWinStreaks = append(records.LongestWinStreaks, streaks...)

	return records, nil
}

func (c *controller) foldScoreRecords(ctx context.Context, records *model.LeagueRecords, year int,
	m model.Matchup, teams map[int32]model.Team, names *ownerNames) error {
	consider := func(teamID int32, score float64) error {
		if records.HighestWeeklyScore != nil && score <= records.HighestWeeklyScore.Score {
			return nil
		}
		team, ok := teams[teamID]
		if !ok {
			return nil
		}
		name, err := names.get(ctx, team.OwnerID)
		if err != nil {
			return err
		}
		records.HighestWeeklyScore = &model.ScoreRecord{
			OwnerName: name,
			TeamName:  team.Name,
			Year:      year,
			Week:      m.Week,
			Score:     score,
		}
		return nil
	}
	if err := consider(m.HomeTeamID, m.HomeScore); err != nil {
		return err
	}
	if err := consider(m.AwayTeamID, m.AwayScore); err != nil {
		return err
	}

	if m.WinnerTeamID == nil {
		return nil
	}
	margin := m.HomeScore - m.AwayScore
	winnerID, loserID := m.HomeTeamID, m.AwayTeamID
	if margin < 0 {
		margin = -margin
		winnerID, loserID = m.AwayTeamID, m.HomeTeamID
	}
	if records.BiggestBlowout != nil && margin <= records.BiggestBlowout.Margin {
		return nil
	}
	winner, winnerOK := teams[winnerID]
	loser, loserOK := teams[loserID]
	if !winnerOK || !loserOK {
		return nil
	}
	winnerName, err := names.get(ctx, winner.OwnerID)
	if err != nil {
		return err
	}
	loserName, err := names.get(ctx, loser.OwnerID)
	if err != nil {
		return err
	}
	records.BiggestBlowout = &model.BlowoutRecord{
		WinnerName: winnerName,
		LoserName:  loserName,
		Year:       year,
		Week:       m.Week,
		Margin:     margin,
	}
	return nil
}

func (c *controller) GetHallOfFame(ctx context.Context) (*model.HallOfFame, error) {
	leagues, err := c.db.ListLeagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing leagues: %w", err)
	}

	names := newOwnerNames(c)
	tally := make(map[int32]*model.ChampionEntry)
	hof := &model.HallOfFame{Champions: []model.ChampionEntry{}, Dynasties: []model.Dynasty{}}

	for _, league := range leagues {
		seasons, err := c.db.ListSeasons(ctx, league.ID)
		if err != nil {
			return nil, fmt.Errorf("error listing seasons for league %d: %w", league.ID, err)
		}
		slices.SortFunc(seasons, func(a, b model.Season) int {
			return a.Year - b.Year
		})

		// A dynasty is a run of consecutive titles within one league.
		var run *model.Dynasty
		endRun := func() {
			if run != nil && run.Titles >= 2 {
				hof.Dynasties = append(hof.Dynasties, *run)
			}
			run = nil
		}

		for _, season := range seasons {
			if season.ChampionTeamID == nil {
				endRun()
				continue
			}
			team, err := c.db.GetTeam(ctx, *season.ChampionTeamID)
			if err != nil {
				return nil, fmt.Errorf("error getting champion team %d: %w", *season.ChampionTeamID, err)
			}
			name, err := names.get(ctx, team.OwnerID)
			if err != nil {
				return nil, err
			}

			entry, ok := tally[team.OwnerID]
			if !ok {
				entry = &model.ChampionEntry{OwnerID: team.OwnerID, OwnerName: name}
				tally[team.OwnerID] = entry
			}
			entry.Titles++
			entry.Years = append(entry.Years, season.Year)

			if run != nil && run.OwnerID == team.OwnerID && season.Year == run.EndYear+1 {
				run.EndYear = season.Year
				run.Titles++
			} else {
				endRun()
				run = &model.Dynasty{
					OwnerID:   team.OwnerID,
					OwnerName: name,
					StartYear: season.Year,
					EndYear:   season.Year,
					Titles:    1,
				}
			}
		}
		endRun()
	}

	for _, entry := range tally {
		slices.Sort(entry.Years)
		hof.Champions = append(hof.Champions, *entry)
	}
	slices.SortFunc(hof.Champions, func(a, b model.ChampionEntry) int {
		if a.Titles != b.Titles {
			return b.Titles - a.Titles
		}
		return strings.Compare(a.OwnerName, b.OwnerName)
	})
	slices.SortFunc(hof.Dynasties, func(a, b model.Dynasty) int {
		if a.Titles != b.Titles {
			return b.Titles - a.Titles
		}
		return a.StartYear - b.StartYear
	})
	return hof, nil
}

func (c *controller) GetOwnerTrades(ctx context.Context, ownerID int32) (*model.TradeHistory, error) {
	if _, err := c.db.GetOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	teams, err := c.db.GetTeamsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error getting teams: %w", err)
	}
	ownTeams := make(map[int32]bool, len(teams))
	for _, t := range teams {
		ownTeams[t.ID] = true
	}

	trades, err := c.db.GetTradesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error getting trades: %w", err)
	}

	history := &model.TradeHistory{
		OwnerID:     ownerID,
		TotalTrades: len(trades),
		Partners:    []model.TradePartner{},
		Trades:      trades,
	}

	names := newOwnerNames(c)
	partnerCounts := make(map[int32]int)
	firstYear, firstWeek := 0, 0
	for _, t := range trades {
		season, err := c.db.GetSeason(ctx, t.SeasonID)
		if err != nil {
			return nil, fmt.Errorf("error getting season %d: %w", t.SeasonID, err)
		}
		if firstYear == 0 || season.Year < firstYear ||
			(season.Year == firstYear && t.Week < firstWeek) {
			firstYear, firstWeek = season.Year, t.Week
		}

		for _, teamID := range t.TeamIDs {
			if ownTeams[teamID] {
				continue
			}
			team, err := c.db.GetTeam(ctx, teamID)
			if err != nil {
				return nil, fmt.Errorf("error getting team %d: %w", teamID, err)
			}
			partnerCounts[team.OwnerID]++
		}
	}

	for partnerID, count := range partnerCounts {
		name, err := names.get(ctx, partnerID)
		if err != nil {
			return nil, err
		}
		history.Partners = append(history.Partners, model.TradePartner{
			OwnerID:   partnerID,
			OwnerName: name,
			Count:     count,
		})
	}
	slices.SortFunc(history.Partners, func(a, b model.TradePartner) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.OwnerName, b.OwnerName)
	})

	if firstYear > 0 {
		winRate, err := c.tradeWinRate(ctx, ownerID, firstYear, firstWeek)
		if err != nil {
			return nil, err
		}
		history.WinRate = winRate
	}
	return history, nil
}

// tradeWinRate splits the owner's decided games at their first trade and
// compares win rates on each side. Ties count on neither.
func (c *controller) tradeWinRate(ctx context.Context, ownerID int32, year, week int) (*model.TradeWinRate, error) {
	matchups, err := c.db.GetOwnerMatchups(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error getting matchups: %w", err)
	}

	rate := &model.TradeWinRate{FirstTradeYear: year, FirstTradeWeek: week}
	winsBefore, winsAfter := 0, 0
	for _, om := range matchups {
		m := om.Matchup
		if !m.Decided() || m.IsTie {
			continue
		}
		before := om.SeasonYear < year || (om.SeasonYear == year && m.Week < week)
		if before {
			rate.GamesBefore++
			if om.Won() {
				winsBefore++
			}
		} else {
			rate.GamesAfter++
			if om.Won() {
				winsAfter++
			}
		}
	}
	if rate.GamesBefore > 0 {
		rate.WinRateBefore = float64(winsBefore) / float64(rate.GamesBefore)
	}
	if rate.GamesAfter > 0 {
		rate.WinRateAfter = float64(winsAfter) / float64(rate.GamesAfter)
	}
	return rate, nil
}

// ownerNames caches owner id to display name lookups within one request.
type ownerNames struct {
	c     *controller
	cache map[int32]string
}

func newOwnerNames(c *controller) *ownerNames {
	return &ownerNames{c: c, cache: make(map[int32]string)}
}

func (n *ownerNames) get(ctx context.Context, ownerID int32) (string, error) {
	if name, ok := n.cache[ownerID]; ok {
		return name, nil
	}
	owner, err := n.c.db.GetOwner(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("error getting owner %d: %w", ownerID, err)
	}
	n.cache[ownerID] = owner.Name
	return owner.Name, nil
}
