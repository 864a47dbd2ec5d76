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

const matchupColumns = `id, season_id, week, home_team_id, away_team_id, home_score, away_score,
	is_playoff, is_championship, is_consolation, is_tie, winner_team_id`

func (db *postgresDB) UpsertMatchups(ctx context.Context, seasonID int32, matchups []model.Matchup) error {
	if len(matchups) == 0 {
		return nil
	}

	const find = `SELECT id FROM matchups
		WHERE season_id=@seasonID AND week=@week AND home_team_id=@homeTeamID AND away_team_id=@awayTeamID`

	const insert = `INSERT INTO matchups (season_id, week, home_team_id, away_team_id, home_score,
			away_score, is_playoff, is_championship, is_consolation, is_tie, winner_team_id, created)
		VALUES (@seasonID, @week, @homeTeamID, @awayTeamID, @homeScore,
			@awayScore, @isPlayoff, @isChampionship, @isConsolation, @isTie, @winnerTeamID, @now)
		RETURNING id`

	const update = `UPDATE matchups
		SET home_score=@homeScore,
			away_score=@awayScore,
			is_playoff=@isPlayoff,
			is_championship=@isChampionship,
			is_consolation=@isConsolation,
			is_tie=@isTie,
			winner_team_id=@winnerTeamID
		WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range matchups {
		m := &matchups[i]
		m.SeasonID = seasonID

		findArgs := pgx.NamedArgs{
			"seasonID":   seasonID,
			"week":       m.Week,
			"homeTeamID": m.HomeTeamID,
			"awayTeamID": m.AwayTeamID,
		}
		err := tx.QueryRow(ctx, find, findArgs).Scan(&m.ID)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("error looking up matchup week %d: %w", m.Week, err)
			}

			args := namedArgsForMatchup(m)
			args["now"] = pgtype.Timestamptz{Time: db.clock.Now().UTC(), Valid: true}
			if err := tx.QueryRow(ctx, insert, args).Scan(&m.ID); err != nil {
				return fmt.Errorf("error inserting matchup week %d: %w", m.Week, err)
			}
			continue
		}

		args := namedArgsForMatchup(m)
		args["id"] = m.ID
		if _, err := tx.Exec(ctx, update, args); err != nil {
			return fmt.Errorf("error updating matchup %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing matchup batch: %w", err)
	}
	return nil
}

func (db *postgresDB) GetMatchupsBySeason(ctx context.Context, seasonID int32) ([]model.Matchup, error) {
	const query = `SELECT ` + matchupColumns + ` FROM matchups WHERE season_id=@seasonID ORDER BY week, id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"seasonID": seasonID})
	if err != nil {
		return nil, fmt.Errorf("error listing matchups for season %d: %w", seasonID, err)
	}

	results := make([]model.Matchup, 0, 64)
	for rows.Next() {
		m, err := scanMatchup(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *m)
	}
	return results, nil
}

func (db *postgresDB) GetOwnerMatchups(ctx context.Context, ownerID int32) ([]model.OwnerMatchup, error) {
	const query = `SELECT m.id, m.season_id, m.week, m.home_team_id, m.away_team_id, m.home_score,
			m.away_score, m.is_playoff, m.is_championship, m.is_consolation, m.is_tie,
			m.winner_team_id, s.year, t.id
		FROM matchups m
		JOIN seasons s ON m.season_id = s.id
		JOIN teams t ON t.owner_id = @ownerID AND (t.id = m.home_team_id OR t.id = m.away_team_id)
		ORDER BY s.year, m.week`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"ownerID": ownerID})
	if err != nil {
		return nil, fmt.Errorf("error listing matchups for owner %d: %w", ownerID, err)
	}

	results := make([]model.OwnerMatchup, 0, 64)
	for rows.Next() {
		var om model.OwnerMatchup
		var winner sql.NullInt32
		err := rows.Scan(
			&om.Matchup.ID,
			&om.Matchup.SeasonID,
			&om.Matchup.Week,
			&om.Matchup.HomeTeamID,
			&om.Matchup.AwayTeamID,
			&om.Matchup.HomeScore,
			&om.Matchup.AwayScore,
			&om.Matchup.IsPlayoff,
			&om.Matchup.IsChampionship,
			&om.Matchup.IsConsolation,
			&om.Matchup.IsTie,
			&winner,
			&om.SeasonYear,
			&om.TeamID)
		if err != nil {
			return nil, fmt.Errorf("error scanning owner matchup: %w", err)
		}
		om.Matchup.WinnerTeamID = idOrNil(winner)
		results = append(results, om)
	}
	return results, nil
}

func scanMatchup(row pgx.Row) (*model.Matchup, error) {
	var result model.Matchup
	var winner sql.NullInt32
	err := row.Scan(
		&result.ID,
		&result.SeasonID,
		&result.Week,
		&result.HomeTeamID,
		&result.AwayTeamID,
		&result.HomeScore,
		&result.AwayScore,
		&result.IsPlayoff,
		&result.IsChampionship,
		&result.IsConsolation,
		&result.IsTie,
		&winner)
	if err != nil {
		return nil, err
	}

	result.WinnerTeamID = idOrNil(winner)
	return &result, nil
}

func namedArgsForMatchup(m *model.Matchup) pgx.NamedArgs {
	return pgx.NamedArgs{
		"seasonID":       m.SeasonID,
		"week":           m.Week,
		"homeTeamID":     m.HomeTeamID,
		"awayTeamID":     m.AwayTeamID,
		"homeScore":      m.HomeScore,
		"awayScore":      m.AwayScore,
		"isPlayoff":      m.IsPlayoff,
		"isChampionship": m.IsChampionship,
		"isConsolation":  m.IsConsolation,
		"isTie":          m.IsTie,
		"winnerTeamID":   nullID(m.WinnerTeamID),
	}
}
