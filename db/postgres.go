package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrOwnerNotFound  error = errors.New("owner not found")
	ErrLeagueNotFound error = errors.New("league not found")
	ErrSeasonNotFound error = errors.New("season not found")
	ErrTeamNotFound   error = errors.New("team not found")
	ErrTokenNotFound  error = errors.New("token not found")
)

// OwnerMappedError is returned when a platform identity is already linked to
// a different owner. It carries the owner's name so callers can show
// "already mapped to owner X" instead of a raw constraint violation.
type OwnerMappedError struct {
	Platform   string
	ExternalID string
	OwnerName  string
}

func (e *OwnerMappedError) Error() string {
	return fmt.Sprintf("%s user id '%s' is already mapped to owner '%s'", e.Platform, e.ExternalID, e.OwnerName)
}

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}
