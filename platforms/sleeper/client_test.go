package sleeper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/amolgulati/LeagueLegacy/testutils"
)

func TestGetLeague(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	l, err := c.GetLeague(testutils.SleeperLeagueID2024)
	if err != nil {
		t.Fatalf("unexpected error getting league: %v", err)
	}

	expected := &League{
		ID:               testutils.SleeperLeagueID2024,
		Name:             "Footclan & Friends Dynasty",
		Season:           "2024",
		Status:           "complete",
		PreviousLeagueID: testutils.SleeperLeagueID2023,
		TotalRosters:     4,
		PlayoffWeekStart: 15,
		PlayoffTeams:     2,
		RecPoints:        0.5,
	}
	if !reflect.DeepEqual(expected, l) {
		t.Errorf("expected: %+v, but got %+v", expected, l)
	}
	if !l.Complete() {
		t.Error("expected league to be complete")
	}
}

func TestGetLeague_notFound(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	_, err := c.GetLeague("1234")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestGetLeagueHistory(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	leagues, err := c.GetLeagueHistory(testutils.SleeperLeagueID2024)
	if err != nil {
		t.Fatalf("unexpected error getting league history: %v", err)
	}

	if len(leagues) != 2 {
		t.Fatalf("expected 2 leagues in the chain, got %d", len(leagues))
	}
	if leagues[0].Season != "2024" || leagues[1].Season != "2023" {
		t.Errorf("expected seasons newest to oldest, got %s then %s",
			leagues[0].Season, leagues[1].Season)
	}
}

func TestGetLeagueUsers(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	users, err := c.GetLeagueUsers(testutils.SleeperLeagueID2024)
	if err != nil {
		t.Fatalf("unexpected error getting league users: %v", err)
	}

	expected := []User{
		{ID: "300638784440004608", DisplayName: "8thAndFinalRule", Avatar: "c2d31f2dc12c0aeeac4f9aaa4e3a7bfa", TeamName: "Puk Nukem"},
		{ID: "362744067425296384", DisplayName: "mww", Avatar: "8f2f4f9a72b3f86c1a2d6b3c9e0d11aa", TeamName: "No-Bell Prizes"},
		{ID: "300368913101774848", DisplayName: "gee17"},
		{ID: "325106323354046464", DisplayName: "Jollymon", Avatar: "11aa22bb33cc44dd55ee66ff77889900", TeamName: "Jolly Roger"},
	}
	if !reflect.DeepEqual(expected, users) {
		t.Errorf("expected: %v, but got %v", expected, users)
	}
}

func TestGetLeagueRosters(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	rosters, err := c.GetLeagueRosters(testutils.SleeperLeagueID2024)
	if err != nil {
		t.Fatalf("unexpected error getting league rosters: %v", err)
	}

	if len(rosters) != 4 {
		t.Fatalf("expected 4 rosters, got %d", len(rosters))
	}

	r := rosters[0]
	if r.ID != 1 || r.OwnerID != "300638784440004608" {
		t.Errorf("unexpected first roster: %+v", r)
	}
	if r.Wins != 10 || r.Losses != 4 || r.Ties != 0 {
		t.Errorf("unexpected record on first roster: %+v", r)
	}
	if r.PointsFor != 1520.44 {
		t.Errorf("expected points for 1520.44, got %f", r.PointsFor)
	}
	if r.PointsAgainst != 1400.12 {
		t.Errorf("expected points against 1400.12, got %f", r.PointsAgainst)
	}
}

func TestGetMatchups(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	matchups, err := c.GetMatchups(testutils.SleeperLeagueID2024, 1)
	if err != nil {
		t.Fatalf("unexpected error getting matchups: %v", err)
	}

	if len(matchups) != 4 {
		t.Fatalf("expected 4 matchup entries, got %d", len(matchups))
	}
	if matchups[0].RosterID != 1 || matchups[0].Points != 112.42 {
		t.Errorf("unexpected first entry: %+v", matchups[0])
	}
	if matchups[0].MatchupID == nil || *matchups[0].MatchupID != 1 {
		t.Errorf("unexpected matchup id on first entry: %+v", matchups[0])
	}

	// Weeks without data come back empty, not as an error.
	matchups, err = c.GetMatchups(testutils.SleeperLeagueID2024, 9)
	if err != nil {
		t.Fatalf("unexpected error getting matchups: %v", err)
	}
	if len(matchups) != 0 {
		t.Errorf("expected no matchups for week 9, got %d", len(matchups))
	}
}

func TestGetTrades(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	trades, err := c.GetTrades(testutils.SleeperLeagueID2024, 2)
	if err != nil {
		t.Fatalf("unexpected error getting trades: %v", err)
	}

	// The waiver claim and the failed trade are filtered out.
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}

	trade := trades[0]
	if trade.ID != "1112223334445556667" {
		t.Errorf("unexpected trade id: %s", trade.ID)
	}
	if trade.Week != 2 {
		t.Errorf("expected week 2, got %d", trade.Week)
	}
	if !trade.Date.Equal(time.UnixMilli(1726012800000).UTC()) {
		t.Errorf("unexpected trade date: %v", trade.Date)
	}
	if !reflect.DeepEqual([]int{1, 2}, trade.RosterIDs) {
		t.Errorf("unexpected roster ids: %v", trade.RosterIDs)
	}
	if trade.Adds["2374"] != 1 || trade.Adds["6904"] != 2 {
		t.Errorf("unexpected adds: %v", trade.Adds)
	}
	if len(trade.DraftPicks) != 1 {
		t.Fatalf("expected 1 draft pick, got %d", len(trade.DraftPicks))
	}
	pick := trade.DraftPicks[0]
	if pick.Season != "2025" || pick.Round != 1 || pick.OwnerRosterID != 1 {
		t.Errorf("unexpected draft pick: %+v", pick)
	}
}

func TestGetWinnersBracket(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	games, err := c.GetWinnersBracket(testutils.SleeperLeagueID2024)
	if err != nil {
		t.Fatalf("unexpected error getting winners bracket: %v", err)
	}

	if len(games) != 4 {
		t.Fatalf("expected 4 bracket games, got %d", len(games))
	}

	final := games[2]
	if final.Round != 2 || final.Match != 3 {
		t.Errorf("unexpected final game: %+v", final)
	}
	if final.Winner == nil || *final.Winner != 1 {
		t.Errorf("unexpected final winner: %+v", final.Winner)
	}
	if final.Loser == nil || *final.Loser != 2 {
		t.Errorf("unexpected final loser: %+v", final.Loser)
	}
}

func TestLoadPlayers(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	players, err := c.LoadPlayers()
	if err != nil {
		t.Fatalf("unexpected error loading players: %v", err)
	}

	tests := []struct {
		id   string
		name string
	}{
		{id: "2374", name: "Tyler Lockett"},
		{id: "9509", name: "Bijan Robinson"},
		{id: "SEA", name: "Player SEA"},
	}
	for _, tc := range tests {
		p, found := players[tc.id]
		if !found {
			t.Fatalf("player %s missing from response", tc.id)
		}
		if p.Name != tc.name {
			t.Errorf("expected name %q for %s, got %q", tc.name, tc.id, p.Name)
		}
	}
}

func TestSleeperRequest_httpError(t *testing.T) {
	fakeSleeper := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusInternalServerError)
	}))
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL)

	_, err := c.LoadPlayers()
	if err == nil {
		t.Fatal("expected an error, but got none")
	}
}
