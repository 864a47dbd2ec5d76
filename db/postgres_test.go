package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amolgulati/LeagueLegacy/containers"
	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/itbasis/go-clock"
	"golang.org/x/oauth2"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// a counter used to build unique platform ids so tests don't collide with each other.
	idCtr = int32(0)
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func TestOwner_saveAndLoad(t *testing.T) {
	ctx := context.Background()
	o := newOwner("Alice")
	o.DisplayName = "alice_ff"
	o.AvatarURL = "https://avatars.example.com/alice.png"

	err := testDB.SaveOwner(ctx, o)
	assertFatalf(t, err == nil, "error saving owner: %v", err)
	assertTrue(t, "ID", o.ID != 0)

	res, err := testDB.GetOwner(ctx, o.ID)
	assertFatalf(t, err == nil, "error retreiving owner: %v", err)

	assertEquals(t, "ID", o.ID, res.ID)
	assertEquals(t, "Name", o.Name, res.Name)
	assertEquals(t, "DisplayName", o.DisplayName, res.DisplayName)
	assertEquals(t, "AvatarURL", o.AvatarURL, res.AvatarURL)
	assertEquals(t, "SleeperUserID", o.SleeperUserID, res.SleeperUserID)
	assertEquals(t, "YahooUserID", o.YahooUserID, res.YahooUserID)

	bySleeper, err := testDB.GetOwnerByPlatformID(ctx, model.PlatformSleeper, o.SleeperUserID)
	assertFatalf(t, err == nil, "error looking up owner by sleeper id: %v", err)
	assertEquals(t, "sleeper lookup ID", o.ID, bySleeper.ID)

	byYahoo, err := testDB.GetOwnerByPlatformID(ctx, model.PlatformYahoo, o.YahooUserID)
	assertFatalf(t, err == nil, "error looking up owner by yahoo id: %v", err)
	assertEquals(t, "yahoo lookup ID", o.ID, byYahoo.ID)
}

func TestOwner_update(t *testing.T) {
	ctx := context.Background()
	o := newOwner("Bob")

	err := testDB.SaveOwner(ctx, o)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	o.Name = "Robert"
	o.DisplayName = "bobby"
	err = testDB.SaveOwner(ctx, o)
	assertFatalf(t, err == nil, "error updating owner: %v", err)

	res, err := testDB.GetOwner(ctx, o.ID)
	assertFatalf(t, err == nil, "error retreiving owner: %v", err)
	assertEquals(t, "Name", "Robert", res.Name)
	assertEquals(t, "DisplayName", "bobby", res.DisplayName)
}

func TestOwner_notFound(t *testing.T) {
	ctx := context.Background()

	_, err := testDB.GetOwner(ctx, 987654)
	assertTrue(t, "GetOwner err", errors.Is(err, ErrOwnerNotFound))

	_, err = testDB.GetOwnerByPlatformID(ctx, model.PlatformSleeper, "no-such-user")
	assertTrue(t, "GetOwnerByPlatformID err", errors.Is(err, ErrOwnerNotFound))
}

func TestOwner_duplicateMapping(t *testing.T) {
	ctx := context.Background()
	o := newOwner("Carol")

	err := testDB.SaveOwner(ctx, o)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	dup := newOwner("Imposter")
	dup.SleeperUserID = o.SleeperUserID

	err = testDB.SaveOwner(ctx, dup)
	assertFatalf(t, err != nil, "expected an error saving a duplicate mapping")

	var mapped *OwnerMappedError
	assertTrue(t, "errors.As", errors.As(err, &mapped))
	assertEquals(t, "Platform", model.PlatformSleeper, mapped.Platform)
	assertEquals(t, "ExternalID", o.SleeperUserID, mapped.ExternalID)
	assertEquals(t, "OwnerName", "Carol", mapped.OwnerName)
}

func TestOwner_list(t *testing.T) {
	ctx := context.Background()
	o := newOwner("Zelda")

	err := testDB.SaveOwner(ctx, o)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	owners, err := testDB.ListOwners(ctx)
	assertFatalf(t, err == nil, "error listing owners: %v", err)

	found := false
	for _, res := range owners {
		if res.ID == o.ID {
			found = true
		}
	}
	assertTrue(t, "owner in list", found)
}

func TestMergeOwners(t *testing.T) {
	ctx := context.Background()

	primary := newOwner("Primary")
	primary.YahooUserID = ""
	err := testDB.SaveOwner(ctx, primary)
	assertFatalf(t, err == nil, "error saving primary: %v", err)

	secondary := newOwner("Secondary")
	secondary.SleeperUserID = ""
	secondary.DisplayName = "second"
	err = testDB.SaveOwner(ctx, secondary)
	assertFatalf(t, err == nil, "error saving secondary: %v", err)

	league := saveLeague(t, "Merge League")
	season := saveSeason(t, league.ID, 2023)
	team := saveTeam(t, season.ID, secondary.ID, "Orphans")

	merged, err := testDB.MergeOwners(ctx, primary.ID, secondary.ID)
	assertFatalf(t, err == nil, "error merging owners: %v", err)

	assertEquals(t, "ID", primary.ID, merged.ID)
	assertEquals(t, "Name", "Primary", merged.Name)
	assertEquals(t, "SleeperUserID", primary.SleeperUserID, merged.SleeperUserID)
	assertEquals(t, "YahooUserID", secondary.YahooUserID, merged.YahooUserID)
	assertEquals(t, "DisplayName", "second", merged.DisplayName)

	// The secondary's teams now belong to the primary and the secondary is gone.
	res, err := testDB.GetTeam(ctx, team.ID)
	assertFatalf(t, err == nil, "error retreiving team: %v", err)
	assertEquals(t, "team OwnerID", primary.ID, res.OwnerID)

	_, err = testDB.GetOwner(ctx, secondary.ID)
	assertTrue(t, "secondary deleted", errors.Is(err, ErrOwnerNotFound))
}

func TestMergeOwners_withSelf(t *testing.T) {
	ctx := context.Background()
	o := newOwner("Self")

	err := testDB.SaveOwner(ctx, o)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	_, err = testDB.MergeOwners(ctx, o.ID, o.ID)
	assertFatalf(t, err != nil, "expected an error merging an owner with itself")
}

func TestLeague_upsert(t *testing.T) {
	ctx := context.Background()
	l := saveLeague(t, "Upsert League")
	firstID := l.ID

	l.Name = "Upsert League Renamed"
	l.TeamCount = 12
	l.ScoringType = "PPR"
	err := testDB.UpsertLeague(ctx, l)
	assertFatalf(t, err == nil, "error upserting league a second time: %v", err)
	assertEquals(t, "ID", firstID, l.ID)

	res, err := testDB.GetLeague(ctx, l.ID)
	assertFatalf(t, err == nil, "error retreiving league: %v", err)
	assertEquals(t, "Name", "Upsert League Renamed", res.Name)
	assertEquals(t, "TeamCount", 12, res.TeamCount)
	assertEquals(t, "ScoringType", "PPR", res.ScoringType)

	byPlatform, err := testDB.GetLeagueByPlatformID(ctx, l.Platform, l.PlatformLeagueID)
	assertFatalf(t, err == nil, "error looking up league by platform id: %v", err)
	assertEquals(t, "platform lookup ID", firstID, byPlatform.ID)
}

func TestLeague_notFound(t *testing.T) {
	ctx := context.Background()

	_, err := testDB.GetLeague(ctx, 987654)
	assertTrue(t, "GetLeague err", errors.Is(err, ErrLeagueNotFound))

	_, err = testDB.GetLeagueByPlatformID(ctx, model.PlatformSleeper, "no-such-league")
	assertTrue(t, "GetLeagueByPlatformID err", errors.Is(err, ErrLeagueNotFound))
}

func TestSeason_upsert(t *testing.T) {
	ctx := context.Background()
	league := saveLeague(t, "Season League")
	s := saveSeason(t, league.ID, 2022)
	firstID := s.ID

	s.RegularSeasonWeeks = 13
	s.IsComplete = true
	err := testDB.UpsertSeason(ctx, s)
	assertFatalf(t, err == nil, "error upserting season a second time: %v", err)
	assertEquals(t, "ID", firstID, s.ID)

	res, err := testDB.GetSeason(ctx, s.ID)
	assertFatalf(t, err == nil, "error retreiving season: %v", err)
	assertEquals(t, "RegularSeasonWeeks", 13, res.RegularSeasonWeeks)
	assertTrue(t, "IsComplete", res.IsComplete)

	seasons, err := testDB.ListSeasons(ctx, league.ID)
	assertFatalf(t, err == nil, "error listing seasons: %v", err)
	assertEquals(t, "len(seasons)", 1, len(seasons))
	assertEquals(t, "seasons[0].Year", 2022, seasons[0].Year)
}

func TestSeason_resultsSurviveReimport(t *testing.T) {
	ctx := context.Background()
	league := saveLeague(t, "Results League")
	s := saveSeason(t, league.ID, 2021)

	owner := newOwner("Champ")
	err := testDB.SaveOwner(ctx, owner)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	champion := saveTeam(t, s.ID, owner.ID, "The Champs")
	runnerUp := saveTeam(t, s.ID, owner.ID, "The Runners")

	err = testDB.SetSeasonResults(ctx, s.ID, &champion.ID, &runnerUp.ID)
	assertFatalf(t, err == nil, "error setting season results: %v", err)

	// A reimport upserts the season without results. The stored results
	// must survive it.
	again := &model.Season{
		LeagueID:           league.ID,
		Year:               2021,
		RegularSeasonWeeks: 14,
		PlayoffWeeks:       3,
		PlayoffTeamCount:   6,
		IsComplete:         true,
	}
	err = testDB.UpsertSeason(ctx, again)
	assertFatalf(t, err == nil, "error upserting season: %v", err)
	assertEquals(t, "ID", s.ID, again.ID)

	res, err := testDB.GetSeason(ctx, s.ID)
	assertFatalf(t, err == nil, "error retreiving season: %v", err)
	assertFatalf(t, res.ChampionTeamID != nil, "expected a champion to still be set")
	assertEquals(t, "ChampionTeamID", champion.ID, *res.ChampionTeamID)
	assertFatalf(t, res.RunnerUpTeamID != nil, "expected a runner-up to still be set")
	assertEquals(t, "RunnerUpTeamID", runnerUp.ID, *res.RunnerUpTeamID)
}

func TestTeam_upsert(t *testing.T) {
	ctx := context.Background()
	league := saveLeague(t, "Team League")
	season := saveSeason(t, league.ID, 2020)

	owner := newOwner("Tim")
	err := testDB.SaveOwner(ctx, owner)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	team := saveTeam(t, season.ID, owner.ID, "First Name")
	firstID := team.ID

	team.Name = "Second Name"
	team.Wins = 10
	team.Losses = 4
	team.PointsFor = 1520.44
	team.PointsAgainst = 1400.12
	team.RegularSeasonRank = 1
	team.FinalRank = 2
	team.MadePlayoffs = true
	team.LongestWinStreak = 6
	err = testDB.UpsertTeam(ctx, team)
	assertFatalf(t, err == nil, "error upserting team a second time: %v", err)
	assertEquals(t, "ID", firstID, team.ID)

	res, err := testDB.GetTeam(ctx, team.ID)
	assertFatalf(t, err == nil, "error retreiving team: %v", err)
	assertEquals(t, "Name", "Second Name", res.Name)
	assertEquals(t, "Wins", 10, res.Wins)
	assertEquals(t, "Losses", 4, res.Losses)
	assertEquals(t, "PointsFor", 1520.44, res.PointsFor)
	assertEquals(t, "PointsAgainst", 1400.12, res.PointsAgainst)
	assertEquals(t, "RegularSeasonRank", 1, res.RegularSeasonRank)
	assertEquals(t, "FinalRank", 2, res.FinalRank)
	assertTrue(t, "MadePlayoffs", res.MadePlayoffs)
	assertEquals(t, "LongestWinStreak", 6, res.LongestWinStreak)

	bySeason, err := testDB.GetTeamsBySeason(ctx, season.ID)
	assertFatalf(t, err == nil, "error listing teams by season: %v", err)
	assertEquals(t, "len(bySeason)", 1, len(bySeason))

	byOwner, err := testDB.GetTeamsByOwner(ctx, owner.ID)
	assertFatalf(t, err == nil, "error listing teams by owner: %v", err)
	assertEquals(t, "len(byOwner)", 1, len(byOwner))
	assertEquals(t, "byOwner[0].ID", team.ID, byOwner[0].ID)
}

func TestMatchups_upsert(t *testing.T) {
	ctx := context.Background()
	league := saveLeague(t, "Matchup League")
	season := saveSeason(t, league.ID, 2019)

	owner := newOwner("Mark")
	err := testDB.SaveOwner(ctx, owner)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	home := saveTeam(t, season.ID, owner.ID, "Home")
	away := saveTeam(t, season.ID, owner.ID, "Away")

	matchups := []model.Matchup{
		{
			Week:         1,
			HomeTeamID:   home.ID,
			AwayTeamID:   away.ID,
			HomeScore:    112.42,
			AwayScore:    98.16,
			WinnerTeamID: &home.ID,
		},
		{
			Week:       2,
			HomeTeamID: home.ID,
			AwayTeamID: away.ID,
			HomeScore:  85.5,
			AwayScore:  85.5,
			IsTie:      true,
		},
	}
	err = testDB.UpsertMatchups(ctx, season.ID, matchups)
	assertFatalf(t, err == nil, "error upserting matchups: %v", err)

	// A reimport of the same weeks updates scores in place instead of
	// inserting duplicate rows.
	matchups[0].HomeScore = 120.0
	err = testDB.UpsertMatchups(ctx, season.ID, matchups)
	assertFatalf(t, err == nil, "error upserting matchups a second time: %v", err)

	res, err := testDB.GetMatchupsBySeason(ctx, season.ID)
	assertFatalf(t, err == nil, "error listing matchups: %v", err)
	assertEquals(t, "len(matchups)", 2, len(res))
	assertEquals(t, "week 1 HomeScore", 120.0, res[0].HomeScore)
	assertFatalf(t, res[0].WinnerTeamID != nil, "expected week 1 to have a winner")
	assertEquals(t, "week 1 WinnerTeamID", home.ID, *res[0].WinnerTeamID)
	assertTrue(t, "week 2 IsTie", res[1].IsTie)

	forOwner, err := testDB.GetOwnerMatchups(ctx, owner.ID)
	assertFatalf(t, err == nil, "error listing owner matchups: %v", err)
	// The owner holds both teams, so each matchup appears once per side.
	assertEquals(t, "len(forOwner)", 4, len(forOwner))
	assertEquals(t, "forOwner[0].SeasonYear", 2019, forOwner[0].SeasonYear)
	assertEquals(t, "forOwner[0].Week", 1, forOwner[0].Matchup.Week)
}

func TestTrade_upsert(t *testing.T) {
	ctx := context.Background()
	league := saveLeague(t, "Trade League")
	season := saveSeason(t, league.ID, 2018)

	owner := newOwner("Trader")
	err := testDB.SaveOwner(ctx, owner)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	teamA := saveTeam(t, season.ID, owner.ID, "Side A")
	teamB := saveTeam(t, season.ID, owner.ID, "Side B")
	teamC := saveTeam(t, season.ID, owner.ID, "Side C")

	trade := &model.Trade{
		SeasonID:        season.ID,
		PlatformTradeID: fmt.Sprintf("trade-%d", atomic.AddInt32(&idCtr, 1)),
		TradeDate:       time.Date(2018, 10, 2, 17, 30, 0, 0, time.UTC),
		Week:            5,
		Status:          "complete",
		Assets: map[string]*model.TradeAssets{
			"1": {Received: []string{"Tyler Lockett"}, Sent: []string{"Jalen Hurts"}},
			"2": {Received: []string{"Jalen Hurts"}, Sent: []string{"Tyler Lockett"}},
		},
		TeamIDs: []int32{teamA.ID, teamB.ID},
	}
	err = testDB.UpsertTrade(ctx, trade)
	assertFatalf(t, err == nil, "error upserting trade: %v", err)
	firstID := trade.ID

	// Reimporting the same platform transaction replaces the team links
	// rather than appending to them.
	trade.TeamIDs = []int32{teamA.ID, teamC.ID}
	err = testDB.UpsertTrade(ctx, trade)
	assertFatalf(t, err == nil, "error upserting trade a second time: %v", err)
	assertEquals(t, "ID", firstID, trade.ID)

	res, err := testDB.GetTradesBySeason(ctx, season.ID)
	assertFatalf(t, err == nil, "error listing trades: %v", err)
	assertEquals(t, "len(trades)", 1, len(res))
	assertEquals(t, "Week", 5, res[0].Week)
	assertEquals(t, "Status", "complete", res[0].Status)
	assertEquals(t, "TradeDate", trade.TradeDate, res[0].TradeDate.UTC())
	if !reflect.DeepEqual(trade.Assets, res[0].Assets) {
		t.Errorf("Assets - expected: %v, got: %v", trade.Assets, res[0].Assets)
	}

	want := []int32{teamA.ID, teamC.ID}
	if !reflect.DeepEqual(want, res[0].TeamIDs) {
		t.Errorf("TeamIDs - expected: %v, got: %v", want, res[0].TeamIDs)
	}

	byOwner, err := testDB.GetTradesByOwner(ctx, owner.ID)
	assertFatalf(t, err == nil, "error listing trades by owner: %v", err)
	assertEquals(t, "len(byOwner)", 1, len(byOwner))
	assertEquals(t, "byOwner[0].ID", trade.ID, byOwner[0].ID)
}

func TestTrade_moveSeason(t *testing.T) {
	ctx := context.Background()
	league := saveLeague(t, "Chain League")
	season1 := saveSeason(t, league.ID, 2015)
	season2 := saveSeason(t, league.ID, 2016)

	owner := newOwner("Mover")
	err := testDB.SaveOwner(ctx, owner)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	team := saveTeam(t, season1.ID, owner.ID, "Movers")

	trade := &model.Trade{
		SeasonID:        season1.ID,
		PlatformTradeID: fmt.Sprintf("trade-%d", atomic.AddInt32(&idCtr, 1)),
		TradeDate:       time.Date(2015, 10, 6, 0, 0, 0, 0, time.UTC),
		Week:            4,
		Status:          "complete",
		TeamIDs:         []int32{team.ID},
	}
	err = testDB.UpsertTrade(ctx, trade)
	assertFatalf(t, err == nil, "error upserting trade: %v", err)

	// The same platform transaction reimported under a different season
	// follows the season imported last.
	trade.SeasonID = season2.ID
	err = testDB.UpsertTrade(ctx, trade)
	assertFatalf(t, err == nil, "error upserting trade a second time: %v", err)

	old, err := testDB.GetTradesBySeason(ctx, season1.ID)
	assertFatalf(t, err == nil, "error listing trades: %v", err)
	assertEquals(t, "len(old season trades)", 0, len(old))

	moved, err := testDB.GetTradesBySeason(ctx, season2.ID)
	assertFatalf(t, err == nil, "error listing trades: %v", err)
	assertEquals(t, "len(new season trades)", 1, len(moved))
	assertEquals(t, "moved[0].ID", trade.ID, moved[0].ID)
}

func TestToken_roundTrip(t *testing.T) {
	ctx := context.Background()
	sessionID := fmt.Sprintf("session-%d", atomic.AddInt32(&idCtr, 1))

	token := &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		TokenType:    "bearer",
		Expiry:       time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	err := testDB.SaveToken(ctx, sessionID, token)
	assertFatalf(t, err == nil, "error saving token: %v", err)

	res, err := testDB.GetToken(ctx, sessionID)
	assertFatalf(t, err == nil, "error retreiving token: %v", err)
	assertEquals(t, "AccessToken", "access-1", res.AccessToken)
	assertEquals(t, "RefreshToken", "refresh-1", res.RefreshToken)
	assertEquals(t, "TokenType", "bearer", res.TokenType)
	assertEquals(t, "Expiry", token.Expiry, res.Expiry.UTC())

	// A refresh overwrites the stored token for the session.
	token.AccessToken = "access-2"
	err = testDB.SaveToken(ctx, sessionID, token)
	assertFatalf(t, err == nil, "error saving refreshed token: %v", err)

	res, err = testDB.GetToken(ctx, sessionID)
	assertFatalf(t, err == nil, "error retreiving refreshed token: %v", err)
	assertEquals(t, "AccessToken", "access-2", res.AccessToken)

	err = testDB.DeleteToken(ctx, sessionID)
	assertFatalf(t, err == nil, "error deleting token: %v", err)

	_, err = testDB.GetToken(ctx, sessionID)
	assertTrue(t, "GetToken err", errors.Is(err, ErrTokenNotFound))
}

func TestDeleteLeague(t *testing.T) {
	ctx := context.Background()
	league := saveLeague(t, "Doomed League")
	season := saveSeason(t, league.ID, 2017)

	owner := newOwner("Survivor")
	err := testDB.SaveOwner(ctx, owner)
	assertFatalf(t, err == nil, "error saving owner: %v", err)

	home := saveTeam(t, season.ID, owner.ID, "Doomed Home")
	away := saveTeam(t, season.ID, owner.ID, "Doomed Away")

	err = testDB.SetSeasonResults(ctx, season.ID, &home.ID, &away.ID)
	assertFatalf(t, err == nil, "error setting season results: %v", err)

	matchups := []model.Matchup{
		{Week: 1, HomeTeamID: home.ID, AwayTeamID: away.ID, HomeScore: 100, AwayScore: 90, WinnerTeamID: &home.ID},
	}
	err = testDB.UpsertMatchups(ctx, season.ID, matchups)
	assertFatalf(t, err == nil, "error upserting matchups: %v", err)

	trade := &model.Trade{
		SeasonID:        season.ID,
		PlatformTradeID: fmt.Sprintf("trade-%d", atomic.AddInt32(&idCtr, 1)),
		TradeDate:       time.Date(2017, 11, 7, 0, 0, 0, 0, time.UTC),
		Week:            9,
		Status:          "complete",
		TeamIDs:         []int32{home.ID, away.ID},
	}
	err = testDB.UpsertTrade(ctx, trade)
	assertFatalf(t, err == nil, "error upserting trade: %v", err)

	err = testDB.DeleteLeague(ctx, league.ID)
	assertFatalf(t, err == nil, "error deleting league: %v", err)

	_, err = testDB.GetLeague(ctx, league.ID)
	assertTrue(t, "league deleted", errors.Is(err, ErrLeagueNotFound))

	_, err = testDB.GetSeason(ctx, season.ID)
	assertTrue(t, "season deleted", errors.Is(err, ErrSeasonNotFound))

	_, err = testDB.GetTeam(ctx, home.ID)
	assertTrue(t, "team deleted", errors.Is(err, ErrTeamNotFound))

	trades, err := testDB.GetTradesByOwner(ctx, owner.ID)
	assertFatalf(t, err == nil, "error listing trades by owner: %v", err)
	assertEquals(t, "len(trades)", 0, len(trades))

	// The owner is shared data, not league data, and stays behind.
	_, err = testDB.GetOwner(ctx, owner.ID)
	assertFatalf(t, err == nil, "expected the owner to survive the delete: %v", err)
}

func newOwner(name string) *model.Owner {
	id := atomic.AddInt32(&idCtr, 1)

	return &model.Owner{
		Name:          name,
		SleeperUserID: fmt.Sprintf("sleeper-%d", id),
		YahooUserID:   fmt.Sprintf("yahoo-%d", id),
	}
}

func saveLeague(t *testing.T, name string) *model.League {
	t.Helper()
	id := atomic.AddInt32(&idCtr, 1)

	l := &model.League{
		Platform:         model.PlatformSleeper,
		PlatformLeagueID: fmt.Sprintf("league-%d", id),
		Name:             name,
		TeamCount:        10,
		ScoringType:      "Half PPR",
	}
	if err := testDB.UpsertLeague(context.Background(), l); err != nil {
		t.Fatalf("error saving league: %v", err)
	}
	return l
}

func saveSeason(t *testing.T, leagueID int32, year int) *model.Season {
	t.Helper()

	s := &model.Season{
		LeagueID:           leagueID,
		Year:               year,
		RegularSeasonWeeks: 14,
		PlayoffWeeks:       3,
		PlayoffTeamCount:   6,
	}
	if err := testDB.UpsertSeason(context.Background(), s); err != nil {
		t.Fatalf("error saving season: %v", err)
	}
	return s
}

func saveTeam(t *testing.T, seasonID, ownerID int32, name string) *model.Team {
	t.Helper()
	id := atomic.AddInt32(&idCtr, 1)

	team := &model.Team{
		SeasonID:       seasonID,
		OwnerID:        ownerID,
		Name:           name,
		PlatformTeamID: fmt.Sprintf("team-%d", id),
		Wins:           7,
		Losses:         7,
	}
	if err := testDB.UpsertTeam(context.Background(), team); err != nil {
		t.Fatalf("error saving team: %v", err)
	}
	return team
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}
