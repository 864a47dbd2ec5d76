package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"golang.org/x/oauth2"

	"github.com/amolgulati/LeagueLegacy/db"
	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/amolgulati/LeagueLegacy/platforms/sleeper"
	"github.com/amolgulati/LeagueLegacy/platforms/yahoo"
	"github.com/amolgulati/LeagueLegacy/playercache"
)

// ErrValidation marks errors caused by bad caller input. Wrap it with
// fmt.Errorf("%w: ...") so the web layer can map it to a 400.
var ErrValidation = errors.New("invalid request")

// C encapsulates business logic without worrying about any web layers
type C interface {
	// ImportSleeperLeague imports the league and every historical
	// season reachable through its previous_league_id chain.
	ImportSleeperLeague(ctx context.Context, leagueID string) (*model.LeagueImportResult, error)
	// ImportYahooLeague imports one yahoo league and its renew chain
	// using the session's oauth token.
	ImportYahooLeague(ctx context.Context, sessionID, leagueKey string) (*model.LeagueImportResult, error)
	// ImportAllYahooLeagues discovers the user's leagues across the
	// given game keys (or the defaults) and imports each of them.
	ImportAllYahooLeagues(ctx context.Context, sessionID string, gameKeys []string) ([]model.LeagueImportResult, error)

	OAuthStart() (string, error)
	// OAuthExchange trades the authorization code for a token and
	// returns the session id the token is stored under.
	OAuthExchange(ctx context.Context, state, code string) (string, error)
	OAuthStatus(ctx context.Context, sessionID string) (bool, error)
	OAuthLogout(ctx context.Context, sessionID string) error

	ListLeagues(ctx context.Context) ([]model.League, error)
	GetLeagueSeasons(ctx context.Context, leagueID int32) ([]model.SeasonSummary, error)
	GetSeasonDetail(ctx context.Context, seasonID int32) (*model.SeasonDetail, error)
	DeleteLeague(ctx context.Context, leagueID int32) error

	ListOwners(ctx context.Context) ([]model.Owner, error)
	GetOwner(ctx context.Context, id int32) (*model.Owner, error)
	UpdateOwnerName(ctx context.Context, id int32, name string) (*model.Owner, error)
	// MergeOwners moves everything owned by secondary onto primary and
	// deletes secondary. Primary's existing fields win.
	MergeOwners(ctx context.Context, primaryID, secondaryID int32) (*model.Owner, error)
	MapOwnerPlatform(ctx context.Context, ownerID int32, platform, externalID string) (*model.Owner, error)
	UnlinkOwnerPlatform(ctx context.Context, ownerID int32, platform string) (*model.Owner, error)

	GetOwnerHistory(ctx context.Context, ownerID int32) (*model.OwnerHistory, error)
	GetHeadToHead(ctx context.Context, ownerAID, ownerBID int32) (*model.HeadToHead, error)
	GetLeagueRecords(ctx context.Context, leagueID int32) (*model.LeagueRecords, error)
	GetHallOfFame(ctx context.Context) (*model.HallOfFame, error)
	GetOwnerTrades(ctx context.Context, ownerID int32) (*model.TradeHistory, error)
}

type controller struct {
	clock       clock.Clock
	db          db.DB
	sleeper     sleeper.Client
	yahoo       *yahoo.Client
	players     *playercache.Cache
	yahooConfig *oauth2.Config

	mu          sync.Mutex
	oauthStates map[string]time.Time
}

func New(clock clock.Clock, db db.DB, sleeperClient sleeper.Client, yahooClient *yahoo.Client,
	players *playercache.Cache, yahooConfig *oauth2.Config) (C, error) {
	c := &controller{
		clock:       clock,
		db:          db,
		sleeper:     sleeperClient,
		yahoo:       yahooClient,
		players:     players,
		yahooConfig: yahooConfig,
		oauthStates: make(map[string]time.Time),
	}
	return c, nil
}
