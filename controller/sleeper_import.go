package controller

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"slices"
	"strconv"

	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/amolgulati/LeagueLegacy/platforms/sleeper"
)

var sleeperIDRegex = regexp.MustCompile(`^\d+$`)

func (c *controller) ImportSleeperLeague(ctx context.Context, leagueID string) (*model.LeagueImportResult, error) {
	if !sleeperIDRegex.MatchString(leagueID) {
		return nil, fmt.Errorf("%w: sleeper league id must be numeric", ErrValidation)
	}

	if err := c.players.Load(); err != nil {
		// Trades fall back to placeholder player names.
		log.Printf("error loading player directory: %v", err)
	}

	chain, err := c.sleeper.GetLeagueHistory(leagueID)
	if err != nil {
		return nil, fmt.Errorf("error walking sleeper league chain: %w", err)
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: league %s has no seasons", ErrValidation, leagueID)
	}

	// All seasons in the chain attach to one League row keyed by the
	// newest native id.
	newest := chain[0]
	league := &model.League{
		Platform:         model.PlatformSleeper,
		PlatformLeagueID: newest.ID,
		Name:             newest.Name,
		TeamCount:        newest.TotalRosters,
		ScoringType:      scoringTypeFromRec(newest.RecPoints),
	}
	if err := c.db.UpsertLeague(ctx, league); err != nil {
		return nil, fmt.Errorf("error upserting league: %w", err)
	}

	result := &model.LeagueImportResult{
		LeagueID:   league.ID,
		LeagueName: league.Name,
	}

	// Oldest season first so champions line up chronologically.
	for i := len(chain) - 1; i >= 0; i-- {
		sr := c.importSleeperSeason(ctx, league.ID, chain[i])
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

// importSleeperSeason imports one season. Failures are reported on the
// result rather than returned so one broken season does not abort the
// rest of the chain.
func (c *controller) importSleeperSeason(ctx context.Context, leagueID int32, sl *sleeper.League) model.SeasonImportResult {
	year, err := strconv.Atoi(sl.Season)
	if err != nil {
		return model.SeasonImportResult{Error: fmt.Sprintf("unparsable season %q", sl.Season)}
	}
	res := model.SeasonImportResult{SeasonYear: year}

	fail := func(err error) model.SeasonImportResult {
		res.Error = err.Error()
		return res
	}

	totalWeeks := sleeperSeasonWeeks(year)
	regularWeeks := totalWeeks
	if sl.PlayoffWeekStart > 0 {
		regularWeeks = sl.PlayoffWeekStart - 1
	}
	playoffWeeks := totalWeeks - regularWeeks
	if playoffWeeks < 0 {
		playoffWeeks = 0
	}

	season := &model.Season{
		LeagueID:           leagueID,
		Year:               year,
		RegularSeasonWeeks: regularWeeks,
		PlayoffWeeks:       playoffWeeks,
		PlayoffTeamCount:   sl.PlayoffTeams,
		IsComplete:         sl.Complete(),
	}
	if err := c.db.UpsertSeason(ctx, season); err != nil {
		return fail(fmt.Errorf("error upserting season: %w", err))
	}

	users, err := c.sleeper.GetLeagueUsers(sl.ID)
	if err != nil {
		return fail(fmt.Errorf("error getting users: %w", err))
	}
	usersByID := make(map[string]sleeper.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	rosters, err := c.sleeper.GetLeagueRosters(sl.ID)
	if err != nil {
		return fail(fmt.Errorf("error getting rosters: %w", err))
	}

	bracket, err := c.sleeper.GetWinnersBracket(sl.ID)
	if err != nil {
		return fail(fmt.Errorf("error getting winners bracket: %w", err))
	}
	playoffRosters := bracketRosters(bracket)

	// Collect every week's matchup pairs first so win streaks can be
	// written with the teams in a single pass.
	pairs, err := c.collectSleeperMatchups(sl, totalWeeks)
	if err != nil {
		return fail(err)
	}

	champRoster, runnerUpRoster := championshipResult(bracket)
	markChampionship(pairs, champRoster, runnerUpRoster)

	streaks := winStreaksByRoster(pairs)

	teams := make(map[int]*model.Team)
	for _, r := range rosters {
		if r.OwnerID == "" {
			log.Printf("skipping ownerless roster %d in league %s", r.ID, sl.ID)
			continue
		}
		u := usersByID[r.OwnerID]
		if u.ID == "" {
			log.Printf("skipping roster %d with unknown owner %s", r.ID, r.OwnerID)
			continue
		}

		owner, err := c.resolveSleeperOwner(ctx, u)
		if err != nil {
			return fail(fmt.Errorf("error resolving owner %s: %w", u.ID, err))
		}

		team := &model.Team{
			SeasonID:         season.ID,
			OwnerID:          owner.ID,
			Name:             sleeperTeamName(u),
			PlatformTeamID:   strconv.Itoa(r.ID),
			Wins:             r.Wins,
			Losses:           r.Losses,
			Ties:             r.Ties,
			PointsFor:        r.PointsFor,
			PointsAgainst:    r.PointsAgainst,
			MadePlayoffs:     playoffRosters[r.ID],
			LongestWinStreak: streaks[r.ID],
		}
		if champRoster != nil && *champRoster == r.ID {
			team.FinalRank = 1
		}
		if runnerUpRoster != nil && *runnerUpRoster == r.ID {
			team.FinalRank = 2
		}

		if err := c.db.UpsertTeam(ctx, team); err != nil {
			return fail(fmt.Errorf("error upserting team for roster %d: %w", r.ID, err))
		}
		teams[r.ID] = team
		res.TeamsImported++
	}

	if err := c.writeRegularSeasonRanks(ctx, season, teams); err != nil {
		return fail(err)
	}

	matchups := buildMatchups(season.ID, pairs, teams)
	if err := c.db.UpsertMatchups(ctx, season.ID, matchups); err != nil {
		return fail(fmt.Errorf("error upserting matchups: %w", err))
	}
	res.MatchupsImported = len(matchups)

	tradeCount, err := c.importSleeperTrades(ctx, season.ID, sl, totalWeeks, teams)
	if err != nil {
		return fail(err)
	}
	res.TradesImported = tradeCount

	if sl.Complete() {
		c.writeChampion(ctx, season.ID, teams, champRoster, runnerUpRoster)
	}

	return res
}

// rosterPair is one head-to-head game keyed by sleeper roster ids,
// before the teams have database ids.
type rosterPair struct {
	week           int
	homeRoster     int
	awayRoster     int
	homeScore      float64
	awayScore      float64
	isPlayoff      bool
	isChampionship bool
}

func (c *controller) collectSleeperMatchups(sl *sleeper.League, totalWeeks int) ([]rosterPair, error) {
	var pairs []rosterPair
	for week := 1; week <= totalWeeks; week++ {
		entries, err := c.sleeper.GetMatchups(sl.ID, week)
		if err != nil {
			return nil, fmt.Errorf("error getting matchups for week %d: %w", week, err)
		}

		groups := make(map[int][]sleeper.MatchupEntry)
		for _, e := range entries {
			if e.MatchupID == nil {
				continue // bye
			}
			groups[*e.MatchupID] = append(groups[*e.MatchupID], e)
		}

		for id, g := range groups {
			if len(g) != 2 {
				log.Printf("skipping matchup %d in week %d: %d participants", id, week, len(g))
				continue
			}
			if g[0].Points == 0 && g[1].Points == 0 {
				continue // not played yet
			}
			pairs = append(pairs, rosterPair{
				week:       week,
				homeRoster: g[0].RosterID,
				awayRoster: g[1].RosterID,
				homeScore:  g[0].Points,
				awayScore:  g[1].Points,
				isPlayoff:  sl.PlayoffWeekStart > 0 && week >= sl.PlayoffWeekStart,
			})
		}
	}

	slices.SortFunc(pairs, func(a, b rosterPair) int {
		if a.week != b.week {
			return a.week - b.week
		}
		return a.homeRoster - b.homeRoster
	})
	return pairs, nil
}

func buildMatchups(seasonID int32, pairs []rosterPair, teams map[int]*model.Team) []model.Matchup {
	matchups := make([]model.Matchup, 0, len(pairs))
	for _, p := range pairs {
		home, homeOK := teams[p.homeRoster]
		away, awayOK := teams[p.awayRoster]
		if !homeOK || !awayOK {
			// One side had no owner. The game cannot be recorded.
			continue
		}

		m := model.Matchup{
			SeasonID:       seasonID,
			Week:           p.week,
			HomeTeamID:     home.ID,
			AwayTeamID:     away.ID,
			HomeScore:      p.homeScore,
			AwayScore:      p.awayScore,
			IsPlayoff:      p.isPlayoff,
			IsChampionship: p.isChampionship,
		}
		switch {
		case p.homeScore > p.awayScore:
			m.WinnerTeamID = &home.ID
		case p.awayScore > p.homeScore:
			m.WinnerTeamID = &away.ID
		default:
			m.IsTie = true
		}
		matchups = append(matchups, m)
	}
	return matchups
}

// winStreaksByRoster finds each roster's longest run of consecutive
// wins, with games in week order. Ties break a streak.
func winStreaksByRoster(pairs []rosterPair) map[int]int {
	current := make(map[int]int)
	longest := make(map[int]int)

	record := func(roster int, won bool) {
		if !won {
			current[roster] = 0
			return
		}
		current[roster]++
		if current[roster] > longest[roster] {
			longest[roster] = current[roster]
		}
	}

	for _, p := range pairs {
		record(p.homeRoster, p.homeScore > p.awayScore)
		record(p.awayRoster, p.awayScore > p.homeScore)
	}
	return longest
}

func (c *controller) importSleeperTrades(ctx context.Context, seasonID int32, sl *sleeper.League,
	totalWeeks int, teams map[int]*model.Team) (int, error) {
	count := 0
	for week := 1; week <= totalWeeks; week++ {
		trades, err := c.sleeper.GetTrades(sl.ID, week)
		if err != nil {
			return count, fmt.Errorf("error getting trades for week %d: %w", week, err)
		}

		for _, t := range trades {
			trade := c.normalizeSleeperTrade(seasonID, &t, teams)
			if trade == nil {
				continue
			}
			if err := c.db.UpsertTrade(ctx, trade); err != nil {
				return count, fmt.Errorf("error upserting trade %s: %w", t.ID, err)
			}
			count++
		}
	}
	return count, nil
}

func (c *controller) normalizeSleeperTrade(seasonID int32, t *sleeper.Trade, teams map[int]*model.Team) *model.Trade {
	trade := &model.Trade{
		SeasonID:        seasonID,
		PlatformTradeID: t.ID,
		TradeDate:       t.Date,
		Week:            t.Week,
		Status:          "completed",
	}

	for _, rosterID := range t.RosterIDs {
		team, ok := teams[rosterID]
		if !ok {
			log.Printf("skipping trade %s: roster %d has no team", t.ID, rosterID)
			return nil
		}
		trade.TeamIDs = append(trade.TeamIDs, team.ID)
		trade.AssetsFor(strconv.Itoa(rosterID))
	}

	for playerID, rosterID := range t.Adds {
		trade.AssetsFor(strconv.Itoa(rosterID)).Received =
			append(trade.AssetsFor(strconv.Itoa(rosterID)).Received, c.players.Name(playerID))
	}
	for playerID, rosterID := range t.Drops {
		trade.AssetsFor(strconv.Itoa(rosterID)).Sent =
			append(trade.AssetsFor(strconv.Itoa(rosterID)).Sent, c.players.Name(playerID))
	}
	for _, pick := range t.DraftPicks {
		label := fmt.Sprintf("Pick: %s Round %d", pick.Season, pick.Round)
		trade.AssetsFor(strconv.Itoa(pick.OwnerRosterID)).Received =
			append(trade.AssetsFor(strconv.Itoa(pick.OwnerRosterID)).Received, label)
		trade.AssetsFor(strconv.Itoa(pick.TradedByRoster)).Sent =
			append(trade.AssetsFor(strconv.Itoa(pick.TradedByRoster)).Sent, label)
	}

	return trade
}

// championshipResult picks the championship game from the winners
// bracket: the highest round, and the lowest match index within it.
func championshipResult(bracket []sleeper.BracketGame) (champion, runnerUp *int) {
	var final *sleeper.BracketGame
	for i := range bracket {
		g := &bracket[i]
		if final == nil ||
			g.Round > final.Round ||
			(g.Round == final.Round && g.Match < final.Match) {
			final = g
		}
	}
	if final == nil || final.Winner == nil {
		return nil, nil
	}
	return final.Winner, final.Loser
}

func markChampionship(pairs []rosterPair, champion, runnerUp *int) {
	if champion == nil || runnerUp == nil {
		return
	}
	for i := range pairs {
		p := &pairs[i]
		if !p.isPlayoff {
			continue
		}
		sameTeams := (p.homeRoster == *champion && p.awayRoster == *runnerUp) ||
			(p.homeRoster == *runnerUp && p.awayRoster == *champion)
		if sameTeams {
			p.isChampionship = true
		}
	}
}

func bracketRosters(bracket []sleeper.BracketGame) map[int]bool {
	rosters := make(map[int]bool)
	for _, g := range bracket {
		if g.Winner != nil {
			rosters[*g.Winner] = true
		}
		if g.Loser != nil {
			rosters[*g.Loser] = true
		}
	}
	return rosters
}

// writeChampion records champion and runner-up on the season. It never
// clears existing values: an undecided bracket leaves the season as-is.
func (c *controller) writeChampion(ctx context.Context, seasonID int32, teams map[int]*model.Team,
	champRoster, runnerUpRoster *int) {
	if champRoster == nil {
		return
	}
	champ, ok := teams[*champRoster]
	if !ok {
		return
	}

	var runnerUpID *int32
	if runnerUpRoster != nil {
		if ru, ok := teams[*runnerUpRoster]; ok {
			runnerUpID = &ru.ID
		}
	}

	if err := c.db.SetSeasonResults(ctx, seasonID, &champ.ID, runnerUpID); err != nil {
		log.Printf("error setting season results for season %d: %v", seasonID, err)
	}
}

// writeRegularSeasonRanks orders teams by record then points and
// stores each team's rank plus the season's regular season winner.
func (c *controller) writeRegularSeasonRanks(ctx context.Context, season *model.Season, teams map[int]*model.Team) error {
	rosterIDs := make([]int, 0, len(teams))
	for id := range teams {
		rosterIDs = append(rosterIDs, id)
	}
	slices.SortFunc(rosterIDs, func(a, b int) int {
		ta, tb := teams[a], teams[b]
		if ta.Wins != tb.Wins {
			return tb.Wins - ta.Wins
		}
		if ta.PointsFor != tb.PointsFor {
			if tb.PointsFor > ta.PointsFor {
				return 1
			}
			return -1
		}
		return a - b
	})

	ranked := make([]*model.Team, 0, len(teams))
	for _, id := range rosterIDs {
		ranked = append(ranked, teams[id])
	}

	for i, t := range ranked {
		if t.RegularSeasonRank == i+1 {
			continue
		}
		t.RegularSeasonRank = i + 1
		if err := c.db.UpsertTeam(ctx, t); err != nil {
			return fmt.Errorf("error writing rank for team %d: %w", t.ID, err)
		}
	}

	if len(ranked) > 0 {
		season.RegularSeasonWinnerID = &ranked[0].ID
		if err := c.db.UpsertSeason(ctx, season); err != nil {
			return fmt.Errorf("error writing regular season winner: %w", err)
		}
	}
	return nil
}

// attachChampion copies the newest season's champion onto the league
// import result.
func (c *controller) attachChampion(ctx context.Context, leagueID int32, result *model.LeagueImportResult) {
	seasons, err := c.db.ListSeasons(ctx, leagueID)
	if err != nil || len(seasons) == 0 {
		return
	}

	newest := seasons[0]
	for _, s := range seasons[1:] {
		if s.Year > newest.Year {
			newest = s
		}
	}
	if newest.ChampionTeamID == nil {
		return
	}

	team, err := c.db.GetTeam(ctx, *newest.ChampionTeamID)
	if err != nil {
		return
	}
	result.ChampionTeamID = newest.ChampionTeamID
	result.ChampionName = team.Name
}

func scoringTypeFromRec(rec float64) string {
	switch rec {
	case 1:
		return "PPR"
	case 0.5:
		return "Half PPR"
	default:
		return "Standard"
	}
}

func sleeperTeamName(u sleeper.User) string {
	if u.TeamName != "" {
		return u.TeamName
	}
	return fmt.Sprintf("Team %s", u.DisplayName)
}

// sleeperSeasonWeeks is the NFL fantasy season length: 18 weeks of
// games means up to week 17 matters for fantasy since 2021, 16 before.
func sleeperSeasonWeeks(year int) int {
	if year >= 2021 {
		return 17
	}
	return 16
}
