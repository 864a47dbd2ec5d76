package mockcontroller

import (
	"context"

	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) ImportSleeperLeague(ctx context.Context, leagueID string) (*model.LeagueImportResult, error) {
	args := c.Called(ctx, leagueID)

	var r *model.LeagueImportResult
	if args.Get(0) != nil {
		r = args.Get(0).(*model.LeagueImportResult)
	}
	return r, args.Error(1)
}

func (c *C) ImportYahooLeague(ctx context.Context, sessionID, leagueKey string) (*model.LeagueImportResult, error) {
	args := c.Called(ctx, sessionID, leagueKey)

	var r *model.LeagueImportResult
	if args.Get(0) != nil {
		r = args.Get(0).(*model.LeagueImportResult)
	}
	return r, args.Error(1)
}

func (c *C) ImportAllYahooLeagues(ctx context.Context, sessionID string, gameKeys []string) ([]model.LeagueImportResult, error) {
	args := c.Called(ctx, sessionID, gameKeys)

	var r []model.LeagueImportResult
	if args.Get(0) != nil {
		r = args.Get(0).([]model.LeagueImportResult)
	}
	return r, args.Error(1)
}

func (c *C) OAuthStart() (string, error) {
	args := c.Called()
	return args.String(0), args.Error(1)
}

func (c *C) OAuthExchange(ctx context.Context, state, code string) (string, error) {
	args := c.Called(ctx, state, code)
	return args.String(0), args.Error(1)
}

func (c *C) OAuthStatus(ctx context.Context, sessionID string) (bool, error) {
	args := c.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (c *C) OAuthLogout(ctx context.Context, sessionID string) error {
	args := c.Called(ctx, sessionID)
	return args.Error(0)
}

func (c *C) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := c.Called(ctx)

	var leagues []model.League
	if args.Get(0) != nil {
		leagues = args.Get(0).([]model.League)
	}
	return leagues, args.Error(1)
}

func (c *C) GetLeagueSeasons(ctx context.Context, leagueID int32) ([]model.SeasonSummary, error) {
	args := c.Called(ctx, leagueID)

	var seasons []model.SeasonSummary
	if args.Get(0) != nil {
		seasons = args.Get(0).([]model.SeasonSummary)
	}
	return seasons, args.Error(1)
}

func (c *C) GetSeasonDetail(ctx context.Context, seasonID int32) (*model.SeasonDetail, error) {
	args := c.Called(ctx, seasonID)

	var d *model.SeasonDetail
	if args.Get(0) != nil {
		d = args.Get(0).(*model.SeasonDetail)
	}
	return d, args.Error(1)
}

func (c *C) DeleteLeague(ctx context.Context, leagueID int32) error {
	args := c.Called(ctx, leagueID)
	return args.Error(0)
}

func (c *C) ListOwners(ctx context.Context) ([]model.Owner, error) {
	args := c.Called(ctx)

	var owners []model.Owner
	if args.Get(0) != nil {
		owners = args.Get(0).([]model.Owner)
	}
	return owners, args.Error(1)
}

func (c *C) GetOwner(ctx context.Context, id int32) (*model.Owner, error) {
	args := c.Called(ctx, id)

	var o *model.Owner
	if args.Get(0) != nil {
		o = args.Get(0).(*model.Owner)
	}
	return o, args.Error(1)
}

func (c *C) UpdateOwnerName(ctx context.Context, id int32, name string) (*model.Owner, error) {
	args := c.Called(ctx, id, name)

	var o *model.Owner
	if args.Get(0) != nil {
		o = args.Get(0).(*model.Owner)
	}
	return o, args.Error(1)
}

func (c *C) MergeOwners(ctx context.Context, primaryID, secondaryID int32) (*model.Owner, error) {
	args := c.Called(ctx, primaryID, secondaryID)

	var o *model.Owner
	if args.Get(0) != nil {
		o = args.Get(0).(*model.Owner)
	}
	return o, args.Error(1)
}

func (c *C) MapOwnerPlatform(ctx context.Context, ownerID int32, platform, externalID string) (*model.Owner, error) {
	args := c.Called(ctx, ownerID, platform, externalID)

	var o *model.Owner
	if args.Get(0) != nil {
		o = args.Get(0).(*model.Owner)
	}
	return o, args.Error(1)
}

func (c *C) UnlinkOwnerPlatform(ctx context.Context, ownerID int32, platform string) (*model.Owner, error) {
	args := c.Called(ctx, ownerID, platform)

	var o *model.Owner
	if args.Get(0) != nil {
		o = args.Get(0).(*model.Owner)
	}
	return o, args.Error(1)
}

func (c *C) GetOwnerHistory(ctx context.Context, ownerID int32) (*model.OwnerHistory, error) {
	args := c.Called(ctx, ownerID)

	var h *model.OwnerHistory
	if args.Get(0) != nil {
		h = args.Get(0).(*model.OwnerHistory)
	}
	return h, args.Error(1)
}

func (c *C) GetHeadToHead(ctx context.Context, ownerAID, ownerBID int32) (*model.HeadToHead, error) {
	args := c.Called(ctx, ownerAID, ownerBID)

	var h *model.HeadToHead
	if args.Get(0) != nil {
		h = args.Get(0).(*model.HeadToHead)
	}
	return h, args.Error(1)
}

func (c *C) GetLeagueRecords(ctx context.Context, leagueID int32) (*model.LeagueRecords, error) {
	args := c.Called(ctx, leagueID)

	var r *model.LeagueRecords
	if args.Get(0) != nil {
		r = args.Get(0).(*model.LeagueRecords)
	}
	return r, args.Error(1)
}

func (c *C) GetHallOfFame(ctx context.Context) (*model.HallOfFame, error) {
	args := c.Called(ctx)

	var h *model.HallOfFame
	if args.Get(0) != nil {
		h = args.Get(0).(*model.HallOfFame)
	}
	return h, args.Error(1)
}

func (c *C) GetOwnerTrades(ctx context.Context, ownerID int32) (*model.TradeHistory, error) {
	args := c.Called(ctx, ownerID)

	var h *model.TradeHistory
	if args.Get(0) != nil {
		h = args.Get(0).(*model.TradeHistory)
	}
	return h, args.Error(1)
}
