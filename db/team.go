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

const teamColumns = `id, season_id, owner_id, name, platform_team_id, wins, losses, ties,
	points_for, points_against, regular_season_rank, final_rank, made_playoffs, longest_win_streak`

func (db *postgresDB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	const query = `SELECT ` + teamColumns + ` FROM teams WHERE id=@id`

	t, err := scanTeam(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("error scanning team %d: %w", id, err)
	}
	return t, nil
}

func (db *postgresDB) UpsertTeam(ctx context.Context, t *model.Team) error {
	if t == nil {
		return errors.New("UpsertTeam - team is nil")
	}

	const find = `SELECT id FROM teams WHERE season_id=@seasonID AND platform_team_id=@platformTeamID`
	args := pgx.NamedArgs{"seasonID": t.SeasonID, "platformTeamID": t.PlatformTeamID}
	err := db.pool.QueryRow(ctx, find, args).Scan(&t.ID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("error looking up team %d/%s: %w", t.SeasonID, t.PlatformTeamID, err)
		}

		const insert = `INSERT INTO teams (season_id, owner_id, name, platform_team_id, wins, losses, ties,
				points_for, points_against, regular_season_rank, final_rank, made_playoffs,
				longest_win_streak, created)
			VALUES (@seasonID, @ownerID, @name, @platformTeamID, @wins, @losses, @ties,
				@pointsFor, @pointsAgainst, @regularSeasonRank, @finalRank, @madePlayoffs,
				@longestWinStreak, @now)
			RETURNING id`

		args := namedArgsForTeam(t)
		args["now"] = pgtype.Timestamptz{Time: db.clock.Now().UTC(), Valid: true}
		if err := db.pool.QueryRow(ctx, insert, args).Scan(&t.ID); err != nil {
			return fmt.Errorf("error inserting team '%s': %w", t.Name, err)
		}
		return nil
	}

	const update = `UPDATE teams
		SET owner_id=@ownerID,
			name=@name,
			wins=@wins,
			losses=@losses,
			ties=@ties,
			points_for=@pointsFor,
			points_against=@pointsAgainst,
			regular_season_rank=@regularSeasonRank,
			final_rank=@finalRank,
			made_playoffs=@madePlayoffs,
			longest_win_streak=@longestWinStreak
		WHERE id=@id`

	uargs := namedArgsForTeam(t)
	uargs["id"] = t.ID
	if _, err := db.pool.Exec(ctx, update, uargs); err != nil {
		return fmt.Errorf("error updating team %d: %w", t.ID, err)
	}
	return nil
}

func (db *postgresDB) GetTeamsBySeason(ctx context.Context, seasonID int32) ([]model.Team, error) {
	const query = `SELECT ` + teamColumns + ` FROM teams WHERE season_id=@seasonID ORDER BY wins DESC, points_for DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"seasonID": seasonID})
	if err != nil {
		return nil, fmt.Errorf("error listing teams for season %d: %w", seasonID, err)
	}
	return collectTeams(rows)
}

func (db *postgresDB) GetTeamsByOwner(ctx context.Context, ownerID int32) ([]model.Team, error) {
	const query = `SELECT ` + teamColumns + ` FROM teams WHERE owner_id=@ownerID ORDER BY season_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"ownerID": ownerID})
	if err != nil {
		return nil, fmt.Errorf("error listing teams for owner %d: %w", ownerID, err)
	}
	return collectTeams(rows)
}

func collectTeams(rows pgx.Rows) ([]model.Team, error) {
	results := make([]model.Team, 0, 12)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *t)
	}
	return results, nil
}

func scanTeam(row pgx.Row) (*model.Team, error) {
	var result model.Team
	var platformTeamID sql.NullString
	var regularSeasonRank, finalRank sql.NullInt32
	err := row.Scan(
		&result.ID,
		&result.SeasonID,
		&result.OwnerID,
		&result.Name,
		&platformTeamID,
		&result.Wins,
		&result.Losses,
		&result.Ties,
		&result.PointsFor,
		&result.PointsAgainst,
		&regularSeasonRank,
		&finalRank,
		&result.MadePlayoffs,
		&result.LongestWinStreak)
	if err != nil {
		return nil, err
	}

	result.PlatformTeamID = valueOrEmpty(platformTeamID)
	result.RegularSeasonRank = int(regularSeasonRank.Int32)
	result.FinalRank = int(finalRank.Int32)

	return &result, nil
}

func namedArgsForTeam(t *model.Team) pgx.NamedArgs {
	return pgx.NamedArgs{
		"seasonID":          t.SeasonID,
		"ownerID":           t.OwnerID,
		"name":              t.Name,
		"platformTeamID":    nullString(t.PlatformTeamID),
		"wins":              t.Wins,
		"losses":            t.Losses,
		"ties":              t.Ties,
		"pointsFor":         t.PointsFor,
		"pointsAgainst":     t.PointsAgainst,
		"regularSeasonRank": sql.NullInt32{Int32: int32(t.RegularSeasonRank), Valid: t.RegularSeasonRank != 0},
		"finalRank":         sql.NullInt32{Int32: int32(t.FinalRank), Valid: t.FinalRank != 0},
		"madePlayoffs":      t.MadePlayoffs,
		"longestWinStreak":  t.LongestWinStreak,
	}
}
