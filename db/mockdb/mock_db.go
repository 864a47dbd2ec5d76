package mockdb

import (
	"context"

	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetOwner(ctx context.Context, id int32) (*model.Owner, error) {
	args := db.Called(ctx, id)

	var o *model.Owner
	if args.Get(0) != nil {
		o = args.Get(0).(*model.Owner)
	}
	return o, args.Error(1)
}

func (db *DB) GetOwnerByPlatformID(ctx context.Context, platform, externalID string) (*model.Owner, error) {
	args := db.Called(ctx, platform, externalID)

	var o *model.Owner
	if args.Get(0) != nil {
		o = args.Get(0).(*model.Owner)
	}
	return o, args.Error(1)
}

func (db *DB) SaveOwner(ctx context.Context, o *model.Owner) error {
	args := db.Called(ctx, o)
	return args.Error(0)
}

func (db *DB) ListOwners(ctx context.Context) ([]model.Owner, error) {
	args := db.Called(ctx)

	var owners []model.Owner
	if args.Get(0) != nil {
		owners = args.Get(0).([]model.Owner)
	}
	return owners, args.Error(1)
}

func (db *DB) MergeOwners(ctx context.Context, primaryID, secondaryID int32) (*model.Owner, error) {
	args := db.Called(ctx, primaryID, secondaryID)

	var o *model.Owner
	if args.Get(0) != nil {
		o = args.Get(0).(*model.Owner)
	}
	return o, args.Error(1)
}

func (db *DB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	args := db.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) GetLeagueByPlatformID(ctx context.Context, platform, platformLeagueID string) (*model.League, error) {
	args := db.Called(ctx, platform, platformLeagueID)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) UpsertLeague(ctx context.Context, l *model.League) error {
	args := db.Called(ctx, l)
	return args.Error(0)
}

func (db *DB) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := db.Called(ctx)

	var leagues []model.League
	if args.Get(0) != nil {
		leagues = args.Get(0).([]model.League)
	}
	return leagues, args.Error(1)
}

func (db *DB) DeleteLeague(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) GetSeason(ctx context.Context, id int32) (*model.Season, error) {
	args := db.Called(ctx, id)

	var s *model.Season
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Season)
	}
	return s, args.Error(1)
}

func (db *DB) UpsertSeason(ctx context.Context, s *model.Season) error {
	args := db.Called(ctx, s)
	return args.Error(0)
}

func (db *DB) ListSeasons(ctx context.Context, leagueID int32) ([]model.Season, error) {
	args := db.Called(ctx, leagueID)

	var seasons []model.Season
	if args.Get(0) != nil {
		seasons = args.Get(0).([]model.Season)
	}
	return seasons, args.Error(1)
}

func (db *DB) SetSeasonResults(ctx context.Context, seasonID int32, championTeamID, runnerUpTeamID *int32) error {
	args := db.Called(ctx, seasonID, championTeamID, runnerUpTeamID)
	return args.Error(0)
}

func (db *DB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	args := db.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (db *DB) UpsertTeam(ctx context.Context, t *model.Team) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) GetTeamsBySeason(ctx context.Context, seasonID int32) ([]model.Team, error) {
	args := db.Called(ctx, seasonID)

	var teams []model.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]model.Team)
	}
	return teams, args.Error(1)
}

func (db *DB) GetTeamsByOwner(ctx context.Context, ownerID int32) ([]model.Team, error) {
	args := db.Called(ctx, ownerID)

	var teams []model.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]model.Team)
	}
	return teams, args.Error(1)
}

func (db *DB) UpsertMatchups(ctx context.Context, seasonID int32, matchups []model.Matchup) error {
	args := db.Called(ctx, seasonID, matchups)
	return args.Error(0)
}

func (db *DB) GetMatchupsBySeason(ctx context.Context, seasonID int32) ([]model.Matchup, error) {
	args := db.Called(ctx, seasonID)

	var matchups []model.Matchup
	if args.Get(0) != nil {
		matchups = args.Get(0).([]model.Matchup)
	}
	return matchups, args.Error(1)
}

func (db *DB) GetOwnerMatchups(ctx context.Context, ownerID int32) ([]model.OwnerMatchup, error) {
	args := db.Called(ctx, ownerID)

	var matchups []model.OwnerMatchup
	if args.Get(0) != nil {
		matchups = args.Get(0).([]model.OwnerMatchup)
	}
	return matchups, args.Error(1)
}

func (db *DB) UpsertTrade(ctx context.Context, t *model.Trade) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) GetTradesBySeason(ctx context.Context, seasonID int32) ([]model.Trade, error) {
	args := db.Called(ctx, seasonID)

	var trades []model.Trade
	if args.Get(0) != nil {
		trades = args.Get(0).([]model.Trade)
	}
	return trades, args.Error(1)
}

func (db *DB) GetTradesByOwner(ctx context.Context, ownerID int32) ([]model.Trade, error) {
	args := db.Called(ctx, ownerID)

	var trades []model.Trade
	if args.Get(0) != nil {
		trades = args.Get(0).([]model.Trade)
	}
	return trades, args.Error(1)
}

func (db *DB) SaveToken(ctx context.Context, sessionID string, token *oauth2.Token) error {
	args := db.Called(ctx, sessionID, token)
	return args.Error(0)
}

func (db *DB) GetToken(ctx context.Context, sessionID string) (*oauth2.Token, error) {
	args := db.Called(ctx, sessionID)

	var t *oauth2.Token
	if args.Get(0) != nil {
		t = args.Get(0).(*oauth2.Token)
	}
	return t, args.Error(1)
}

func (db *DB) DeleteToken(ctx context.Context, sessionID string) error {
	args := db.Called(ctx, sessionID)
	return args.Error(0)
}
