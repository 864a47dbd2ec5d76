package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/oauth2"
)

// OAuth tokens are stored one per session so the Yahoo client can survive
// process restarts.

func (db *postgresDB) SaveToken(ctx context.Context, sessionID string, token *oauth2.Token) error {
	if token == nil {
		return errors.New("SaveToken - token is nil")
	}

	const upsert = `INSERT INTO oauth_tokens (session_id, access_token, refresh_token, token_type, expiry, updated)
		VALUES (@sessionID, @accessToken, @refreshToken, @tokenType, @expiry, @now)
		ON CONFLICT (session_id) DO UPDATE
		SET access_token=@accessToken,
			refresh_token=@refreshToken,
			token_type=@tokenType,
			expiry=@expiry,
			updated=@now`

	args := pgx.NamedArgs{
		"sessionID":    sessionID,
		"accessToken":  token.AccessToken,
		"refreshToken": token.RefreshToken,
		"tokenType":    token.TokenType,
		"expiry":       pgtype.Timestamptz{Time: token.Expiry.UTC(), Valid: !token.Expiry.IsZero()},
		"now":          pgtype.Timestamptz{Time: db.clock.Now().UTC(), Valid: true},
	}
	if _, err := db.pool.Exec(ctx, upsert, args); err != nil {
		return fmt.Errorf("error saving token for session %s: %w", sessionID, err)
	}
	return nil
}

func (db *postgresDB) GetToken(ctx context.Context, sessionID string) (*oauth2.Token, error) {
	const query = `SELECT access_token, refresh_token, token_type, expiry
		FROM oauth_tokens WHERE session_id=@sessionID`

	var token oauth2.Token
	var expiry pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"sessionID": sessionID}).
		Scan(&token.AccessToken, &token.RefreshToken, &token.TokenType, &expiry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("error reading token for session %s: %w", sessionID, err)
	}
	token.Expiry = expiry.Time

	return &token, nil
}

func (db *postgresDB) DeleteToken(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM oauth_tokens WHERE session_id=@sessionID`
	if _, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"sessionID": sessionID}); err != nil {
		return fmt.Errorf("error deleting token for session %s: %w", sessionID, err)
	}
	return nil
}
