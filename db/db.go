package db

import (
	"context"

	"github.com/amolgulati/LeagueLegacy/model"
	"golang.org/x/oauth2"
)

type DB interface {
	GetOwner(ctx context.Context, id int32) (*model.Owner, error)
	// Looks up an owner by their native identity on one platform.
	// Returns ErrOwnerNotFound when no owner has that identity.
	GetOwnerByPlatformID(ctx context.Context, platform, externalID string) (*model.Owner, error)
	// Inserts when o.ID is zero (and fills it in), updates otherwise. A
	// platform id that is already mapped to a different owner surfaces as
	// an OwnerMappedError, not a raw constraint violation.
	SaveOwner(ctx context.Context, o *model.Owner) error
	ListOwners(ctx context.Context) ([]model.Owner, error)
	// Reassigns every team from secondary to primary, copies the display
	// fields and platform ids primary is missing, and deletes secondary.
	// All in one transaction.
	MergeOwners(ctx context.Context, primaryID, secondaryID int32) (*model.Owner, error)

	GetLeague(ctx context.Context, id int32) (*model.League, error)
	GetLeagueByPlatformID(ctx context.Context, platform, platformLeagueID string) (*model.League, error)
	// Find-by-(platform, platform_league_id)-else-create, then update the
	// mutable fields. Fills in l.ID.
	UpsertLeague(ctx context.Context, l *model.League) error
	ListLeagues(ctx context.Context) ([]model.League, error)
	DeleteLeague(ctx context.Context, id int32) error

	GetSeason(ctx context.Context, id int32) (*model.Season, error)
	// Find-by-(league_id, year)-else-create, then update. Fills in s.ID.
	// Never clears champion/runner-up/regular-season-winner fields that are
	// nil on s but set in the row.
	UpsertSeason(ctx context.Context, s *model.Season) error
	ListSeasons(ctx context.Context, leagueID int32) ([]model.Season, error)
	SetSeasonResults(ctx context.Context, seasonID int32, championTeamID, runnerUpTeamID *int32) error

	GetTeam(ctx context.Context, id int32) (*model.Team, error)
	// Find-by-(season_id, platform_team_id)-else-create, then update.
	UpsertTeam(ctx context.Context, t *model.Team) error
	GetTeamsBySeason(ctx context.Context, seasonID int32) ([]model.Team, error)
	GetTeamsByOwner(ctx context.Context, ownerID int32) ([]model.Team, error)

	// Upserts a batch of one season's matchups in a single transaction,
	// keyed by (season, week, home, away).
	UpsertMatchups(ctx context.Context, seasonID int32, matchups []model.Matchup) error
	GetMatchupsBySeason(ctx context.Context, seasonID int32) ([]model.Matchup, error)
	// All matchups any of the owner's teams played in, with the season
	// year attached for (year, week) ordering.
	GetOwnerMatchups(ctx context.Context, ownerID int32) ([]model.OwnerMatchup, error)

	// Upserts one trade keyed by its platform transaction id and replaces
	// the trade's team links, all in one transaction.
	UpsertTrade(ctx context.Context, t *model.Trade) error
	GetTradesBySeason(ctx context.Context, seasonID int32) ([]model.Trade, error)
	GetTradesByOwner(ctx context.Context, ownerID int32) ([]model.Trade, error)

	SaveToken(ctx context.Context, sessionID string, token *oauth2.Token) error
	GetToken(ctx context.Context, sessionID string) (*oauth2.Token, error)
	DeleteToken(ctx context.Context, sessionID string) error
}
