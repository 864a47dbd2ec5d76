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

const leagueColumns = `id, name, platform, platform_league_id, team_count, scoring_type`

func (db *postgresDB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues WHERE id=@id`

	l, err := scanLeague(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league %d: %w", id, err)
	}
	return l, nil
}

func (db *postgresDB) GetLeagueByPlatformID(ctx context.Context, platform, platformLeagueID string) (*model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues
		WHERE platform=@platform AND platform_league_id=@platformLeagueID`

	args := pgx.NamedArgs{"platform": platform, "platformLeagueID": platformLeagueID}
	l, err := scanLeague(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league %s/%s: %w", platform, platformLeagueID, err)
	}
	return l, nil
}

func (db *postgresDB) UpsertLeague(ctx context.Context, l *model.League) error {
	if l == nil {
		return errors.New("UpsertLeague - league is nil")
	}

	existing, err := db.GetLeagueByPlatformID(ctx, l.Platform, l.PlatformLeagueID)
	if err != nil {
		if !errors.Is(err, ErrLeagueNotFound) {
			return err
		}

		const insert = `INSERT INTO leagues (name, platform, platform_league_id, team_count, scoring_type, created)
			VALUES (@name, @platform, @platformLeagueID, @teamCount, @scoringType, @now)
			RETURNING id`

		args := namedArgsForLeague(l)
		args["now"] = pgtype.Timestamptz{Time: db.clock.Now().UTC(), Valid: true}
		if err := db.pool.QueryRow(ctx, insert, args).Scan(&l.ID); err != nil {
			return fmt.Errorf("error inserting league '%s': %w", l.Name, err)
		}
		return nil
	}

	l.ID = existing.ID

	const update = `UPDATE leagues
		SET name=@name, team_count=@teamCount, scoring_type=@scoringType
		WHERE id=@id`

	args := namedArgsForLeague(l)
	args["id"] = l.ID
	if _, err := db.pool.Exec(ctx, update, args); err != nil {
		return fmt.Errorf("error updating league %d: %w", l.ID, err)
	}
	return nil
}

func (db *postgresDB) ListLeagues(ctx context.Context) ([]model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing leagues: %w", err)
	}

	results := make([]model.League, 0, 4)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *l)
	}
	return results, nil
}

func (db *postgresDB) DeleteLeague(ctx context.Context, id int32) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Child rows first: trade links, trades, matchups, teams, seasons.
	statements := []string{
		`DELETE FROM trade_teams WHERE trade_id IN
			(SELECT t.id FROM trades t JOIN seasons s ON t.season_id=s.id WHERE s.league_id=@id)`,
		`DELETE FROM trades WHERE season_id IN (SELECT id FROM seasons WHERE league_id=@id)`,
		`DELETE FROM matchups WHERE season_id IN (SELECT id FROM seasons WHERE league_id=@id)`,
		`UPDATE seasons SET champion_team_id=NULL, runner_up_team_id=NULL, regular_season_winner_id=NULL WHERE league_id=@id`,
		`DELETE FROM teams WHERE season_id IN (SELECT id FROM seasons WHERE league_id=@id)`,
		`DELETE FROM seasons WHERE league_id=@id`,
		`DELETE FROM leagues WHERE id=@id`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("error deleting league %d: %w", id, err)
		}
	}

	return tx.Commit(ctx)
}

const seasonColumns = `id, league_id, year, regular_season_weeks, playoff_weeks, playoff_team_count,
	is_complete, champion_team_id, runner_up_team_id, regular_season_winner_id`

func (db *postgresDB) GetSeason(ctx context.Context, id int32) (*model.Season, error) {
	const query = `SELECT ` + seasonColumns + ` FROM seasons WHERE id=@id`

	s, err := scanSeason(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("error scanning season %d: %w", id, err)
	}
	return s, nil
}

func (db *postgresDB) UpsertSeason(ctx context.Context, s *model.Season) error {
	if s == nil {
		return errors.New("UpsertSeason - season is nil")
	}

	const find = `SELECT ` + seasonColumns + ` FROM seasons WHERE league_id=@leagueID AND year=@year`
	existing, err := scanSeason(db.pool.QueryRow(ctx, find, pgx.NamedArgs{"leagueID": s.LeagueID, "year": s.Year}))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("error looking up season %d/%d: %w", s.LeagueID, s.Year, err)
		}

		const insert = `INSERT INTO seasons (league_id, year, regular_season_weeks, playoff_weeks,
				playoff_team_count, is_complete, created)
			VALUES (@leagueID, @year, @regularSeasonWeeks, @playoffWeeks, @playoffTeamCount, @isComplete, @now)
			RETURNING id`

		args := namedArgsForSeason(s)
		args["now"] = pgtype.Timestamptz{Time: db.clock.Now().UTC(), Valid: true}
		if err := db.pool.QueryRow(ctx, insert, args).Scan(&s.ID); err != nil {
			return fmt.Errorf("error inserting season %d/%d: %w", s.LeagueID, s.Year, err)
		}
		return nil
	}

	s.ID = existing.ID

	// Result fields stay as they are; SetSeasonResults owns them.
	s.ChampionTeamID = existing.ChampionTeamID
	s.RunnerUpTeamID = existing.RunnerUpTeamID
	if s.RegularSeasonWinnerID == nil {
		s.RegularSeasonWinnerID = existing.RegularSeasonWinnerID
	}

	const update = `UPDATE seasons
		SET regular_season_weeks=@regularSeasonWeeks,
			playoff_weeks=@playoffWeeks,
			playoff_team_count=@playoffTeamCount,
			is_complete=@isComplete,
			regular_season_winner_id=@regularSeasonWinnerID
		WHERE id=@id`

	args := namedArgsForSeason(s)
	args["id"] = s.ID
	args["regularSeasonWinnerID"] = nullID(s.RegularSeasonWinnerID)
	if _, err := db.pool.Exec(ctx, update, args); err != nil {
		return fmt.Errorf("error updating season %d: %w", s.ID, err)
	}
	return nil
}

func (db *postgresDB) ListSeasons(ctx context.Context, leagueID int32) ([]model.Season, error) {
	const query = `SELECT ` + seasonColumns + ` FROM seasons WHERE league_id=@leagueID ORDER BY year DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error listing seasons for league %d: %w", leagueID, err)
	}

	results := make([]model.Season, 0, 8)
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *s)
	}
	return results, nil
}

func (db *postgresDB) SetSeasonResults(ctx context.Context, seasonID int32, championTeamID, runnerUpTeamID *int32) error {
	const update = `UPDATE seasons
		SET champion_team_id=@championTeamID, runner_up_team_id=@runnerUpTeamID
		WHERE id=@id`

	args := pgx.NamedArgs{
		"id":             seasonID,
		"championTeamID": nullID(championTeamID),
		"runnerUpTeamID": nullID(runnerUpTeamID),
	}
	if _, err := db.pool.Exec(ctx, update, args); err != nil {
		return fmt.Errorf("error setting results on season %d: %w", seasonID, err)
	}
	return nil
}

func scanLeague(row pgx.Row) (*model.League, error) {
	var result model.League
	var teamCount sql.NullInt32
	var scoringType sql.NullString
	err := row.Scan(
		&result.ID,
		&result.Name,
		&result.Platform,
		&result.PlatformLeagueID,
		&teamCount,
		&scoringType)
	if err != nil {
		return nil, err
	}

	result.TeamCount = int(teamCount.Int32)
	result.ScoringType = valueOrEmpty(scoringType)

	return &result, nil
}

func scanSeason(row pgx.Row) (*model.Season, error) {
	var result model.Season
	var champion, runnerUp, regularSeasonWinner sql.NullInt32
	err := row.Scan(
		&result.ID,
		&result.LeagueID,
		&result.Year,
		&result.RegularSeasonWeeks,
		&result.PlayoffWeeks,
		&result.PlayoffTeamCount,
		&result.IsComplete,
		&champion,
		&runnerUp,
		&regularSeasonWinner)
	if err != nil {
		return nil, err
	}

	result.ChampionTeamID = idOrNil(champion)
	result.RunnerUpTeamID = idOrNil(runnerUp)
	result.RegularSeasonWinnerID = idOrNil(regularSeasonWinner)

	return &result, nil
}

func namedArgsForLeague(l *model.League) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":             l.Name,
		"platform":         l.Platform,
		"platformLeagueID": l.PlatformLeagueID,
		"teamCount":        l.TeamCount,
		"scoringType":      nullString(l.ScoringType),
	}
}

func namedArgsForSeason(s *model.Season) pgx.NamedArgs {
	return pgx.NamedArgs{
		"leagueID":           s.LeagueID,
		"year":               s.Year,
		"regularSeasonWeeks": s.RegularSeasonWeeks,
		"playoffWeeks":       s.PlayoffWeeks,
		"playoffTeamCount":   s.PlayoffTeamCount,
		"isComplete":         s.IsComplete,
	}
}

func nullID(id *int32) sql.NullInt32 {
	if id == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *id, Valid: true}
}

func idOrNil(v sql.NullInt32) *int32 {
	if !v.Valid {
		return nil
	}
	id := v.Int32
	return &id
}
