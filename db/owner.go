package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const ownerColumns = `id, name, display_name, avatar_url, sleeper_user_id, yahoo_user_id`

func (db *postgresDB) GetOwner(ctx context.Context, id int32) (*model.Owner, error) {
	const query = `SELECT ` + ownerColumns + ` FROM owners WHERE id=@id`

	o, err := scanOwner(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("error scanning owner %d: %w", id, err)
	}
	return o, nil
}

func (db *postgresDB) GetOwnerByPlatformID(ctx context.Context, platform, externalID string) (*model.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE sleeper_user_id=@externalID`
	if platform == model.PlatformYahoo {
		query = `SELECT ` + ownerColumns + ` FROM owners WHERE yahoo_user_id=@externalID`
	}

	o, err := scanOwner(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"externalID": externalID}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("error scanning owner %s/%s: %w", platform, externalID, err)
	}
	return o, nil
}

func (db *postgresDB) SaveOwner(ctx context.Context, o *model.Owner) error {
	if o == nil {
		return errors.New("SaveOwner - owner is nil")
	}

	if err := db.checkOwnerMappings(ctx, o); err != nil {
		return err
	}

	if o.ID == 0 {
		const insert = `INSERT INTO owners (name, display_name, avatar_url, sleeper_user_id, yahoo_user_id, created, updated)
			VALUES (@name, @displayName, @avatarURL, @sleeperUserID, @yahooUserID, @now, @now)
			RETURNING id`

		args := namedArgsForOwner(o)
		args["now"] = pgtype.Timestamptz{Time: db.clock.Now().UTC(), Valid: true}
		if err := db.pool.QueryRow(ctx, insert, args).Scan(&o.ID); err != nil {
			return fmt.Errorf("error inserting owner '%s': %w", o.Name, err)
		}
		return nil
	}

	const update = `UPDATE owners
		SET name=@name,
			display_name=@displayName,
			avatar_url=@avatarURL,
			sleeper_user_id=@sleeperUserID,
			yahoo_user_id=@yahooUserID,
			updated=@now
		WHERE id=@id`

	args := namedArgsForOwner(o)
	args["id"] = o.ID
	args["now"] = pgtype.Timestamptz{Time: db.clock.Now().UTC(), Valid: true}
	if _, err := db.pool.Exec(ctx, update, args); err != nil {
		return fmt.Errorf("error updating owner %d: %w", o.ID, err)
	}
	return nil
}

// checkOwnerMappings turns a would-be unique violation into an
// OwnerMappedError naming the owner that already holds the identity.
func (db *postgresDB) checkOwnerMappings(ctx context.Context, o *model.Owner) error {
	check := func(platform, externalID string) error {
		if externalID == "" {
			return nil
		}
		existing, err := db.GetOwnerByPlatformID(ctx, platform, externalID)
		if err != nil {
			if errors.Is(err, ErrOwnerNotFound) {
				return nil
			}
			return err
		}
		if existing.ID != o.ID {
			return &OwnerMappedError{Platform: platform, ExternalID: externalID, OwnerName: existing.Name}
		}
		return nil
	}

	if err := check(model.PlatformSleeper, o.SleeperUserID); err != nil {
		return err
	}
	return check(model.PlatformYahoo, o.YahooUserID)
}

func (db *postgresDB) ListOwners(ctx context.Context) ([]model.Owner, error) {
	const query = `SELECT ` + ownerColumns + ` FROM owners ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing owners: %w", err)
	}

	results := make([]model.Owner, 0, 16)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *o)
	}
	return results, nil
}

func (db *postgresDB) MergeOwners(ctx context.Context, primaryID, secondaryID int32) (*model.Owner, error) {
	if primaryID == secondaryID {
		return nil, errors.New("cannot merge an owner with itself")
	}

	primary, err := db.GetOwner(ctx, primaryID)
	if err != nil {
		return nil, err
	}
	secondary, err := db.GetOwner(ctx, secondaryID)
	if err != nil {
		return nil, err
	}

	// Primary's existing data always wins, so only take what it is missing.
	if primary.SleeperUserID == "" {
		primary.SleeperUserID = secondary.SleeperUserID
	}
	if primary.YahooUserID == "" {
		primary.YahooUserID = secondary.YahooUserID
	}
	if primary.DisplayName == "" {
		primary.DisplayName = secondary.DisplayName
	}
	if primary.AvatarURL == "" {
		primary.AvatarURL = secondary.AvatarURL
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const reassignTeams = `UPDATE teams SET owner_id=@primaryID WHERE owner_id=@secondaryID`
	if _, err := tx.Exec(ctx, reassignTeams, pgx.NamedArgs{"primaryID": primaryID, "secondaryID": secondaryID}); err != nil {
		return nil, fmt.Errorf("error reassigning teams from owner %d to %d: %w", secondaryID, primaryID, err)
	}

	// Clear the secondary's unique ids before the primary takes them over,
	// otherwise the uniqueness constraint trips mid-transaction.
	const clearIDs = `UPDATE owners SET sleeper_user_id=NULL, yahoo_user_id=NULL WHERE id=@id`
	if _, err := tx.Exec(ctx, clearIDs, pgx.NamedArgs{"id": secondaryID}); err != nil {
		return nil, fmt.Errorf("error clearing platform ids on owner %d: %w", secondaryID, err)
	}

	const update = `UPDATE owners
		SET display_name=@displayName,
			avatar_url=@avatarURL,
			sleeper_user_id=@sleeperUserID,
			yahoo_user_id=@yahooUserID,
			updated=@now
		WHERE id=@id`
	args := namedArgsForOwner(primary)
	args["id"] = primaryID
	args["now"] = pgtype.Timestamptz{Time: db.clock.Now().UTC(), Valid: true}
	if _, err := tx.Exec(ctx, update, args); err != nil {
		return nil, fmt.Errorf("error updating merged owner %d: %w", primaryID, err)
	}

	const deleteSecondary = `DELETE FROM owners WHERE id=@id`
	if _, err := tx.Exec(ctx, deleteSecondary, pgx.NamedArgs{"id": secondaryID}); err != nil {
		return nil, fmt.Errorf("error deleting owner %d: %w", secondaryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing owner merge: %w", err)
	}
	return primary, nil
}

func scanOwner(row pgx.Row) (*model.Owner, error) {
	var result model.Owner
	var displayName, avatarURL, sleeperID, yahooID sql.NullString
	err := row.Scan(
		&result.ID,
		&result.Name,
		&displayName,
		&avatarURL,
		&sleeperID,
		&yahooID)
	if err != nil {
		return nil, err
	}

	result.DisplayName = valueOrEmpty(displayName)
	result.AvatarURL = valueOrEmpty(avatarURL)
	result.SleeperUserID = valueOrEmpty(sleeperID)
	result.YahooUserID = valueOrEmpty(yahooID)

	return &result, nil
}

func namedArgsForOwner(o *model.Owner) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":          o.Name,
		"displayName":   nullString(o.DisplayName),
		"avatarURL":     nullString(o.AvatarURL),
		"sleeperUserID": nullString(o.SleeperUserID),
		"yahooUserID":   nullString(o.YahooUserID),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}
