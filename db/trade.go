package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func (db *postgresDB) UpsertTrade(ctx context.Context, t *model.Trade) error {
	if t == nil {
		return errors.New("UpsertTrade - trade is nil")
	}
	if t.PlatformTradeID == "" {
		return errors.New("UpsertTrade - trade has no platform transaction id")
	}

	assets, err := json.Marshal(t.Assets)
	if err != nil {
		return fmt.Errorf("error encoding assets for trade %s: %w", t.PlatformTradeID, err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const find = `SELECT id FROM trades WHERE platform_trade_id=@platformTradeID`
	err = tx.QueryRow(ctx, find, pgx.NamedArgs{"platformTradeID": t.PlatformTradeID}).Scan(&t.ID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("error looking up trade %s: %w", t.PlatformTradeID, err)
		}

		const insert = `INSERT INTO trades (season_id, platform_trade_id, trade_date, week, status,
				assets_exchanged, created)
			VALUES (@seasonID, @platformTradeID, @tradeDate, @week, @status, @assets, @now)
			RETURNING id`

		args := pgx.NamedArgs{
			"seasonID":        t.SeasonID,
			"platformTradeID": t.PlatformTradeID,
			"tradeDate":       pgtype.Timestamptz{Time: t.TradeDate.UTC(), Valid: true},
			"week":            t.Week,
			"status":          t.Status,
			"assets":          string(assets),
			"now":             pgtype.Timestamptz{Time: db.clock.Now().UTC(), Valid: true},
		}
		if err := tx.QueryRow(ctx, insert, args).Scan(&t.ID); err != nil {
			return fmt.Errorf("error inserting trade %s: %w", t.PlatformTradeID, err)
		}
	} else {
		const update = `UPDATE trades
			SET season_id=@seasonID, week=@week, status=@status, assets_exchanged=@assets
			WHERE id=@id`

		args := pgx.NamedArgs{
			"id":       t.ID,
			"seasonID": t.SeasonID,
			"week":     t.Week,
			"status":   t.Status,
			"assets":   string(assets),
		}
		if _, err := tx.Exec(ctx, update, args); err != nil {
			return fmt.Errorf("error updating trade %d: %w", t.ID, err)
		}
	}

	// Replace the participant links; appending would duplicate them on
	// every reimport.
	const clearLinks = `DELETE FROM trade_teams WHERE trade_id=@tradeID`
	if _, err := tx.Exec(ctx, clearLinks, pgx.NamedArgs{"tradeID": t.ID}); err != nil {
		return fmt.Errorf("error clearing team links for trade %d: %w", t.ID, err)
	}

	const insertLink = `INSERT INTO trade_teams (trade_id, team_id) VALUES (@tradeID, @teamID)`
	for _, teamID := range t.TeamIDs {
		if _, err := tx.Exec(ctx, insertLink, pgx.NamedArgs{"tradeID": t.ID, "teamID": teamID}); err != nil {
			return fmt.Errorf("error linking team %d to trade %d: %w", teamID, t.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing trade %s: %w", t.PlatformTradeID, err)
	}
	return nil
}

func (db *postgresDB) GetTradesBySeason(ctx context.Context, seasonID int32) ([]model.Trade, error) {
	const query = `SELECT id, season_id, platform_trade_id, trade_date, week, status, assets_exchanged
		FROM trades WHERE season_id=@seasonID ORDER BY trade_date`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"seasonID": seasonID})
	if err != nil {
		return nil, fmt.Errorf("error listing trades for season %d: %w", seasonID, err)
	}
	return db.collectTrades(ctx, rows)
}

func (db *postgresDB) GetTradesByOwner(ctx context.Context, ownerID int32) ([]model.Trade, error) {
	const query = `SELECT DISTINCT t.id, t.season_id, t.platform_trade_id, t.trade_date, t.week,
			t.status, t.assets_exchanged
		FROM trades t
		JOIN trade_teams tt ON tt.trade_id = t.id
		JOIN teams tm ON tm.id = tt.team_id
		WHERE tm.owner_id=@ownerID
		ORDER BY t.trade_date`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"ownerID": ownerID})
	if err != nil {
		return nil, fmt.Errorf("error listing trades for owner %d: %w", ownerID, err)
	}
	return db.collectTrades(ctx, rows)
}

func (db *postgresDB) collectTrades(ctx context.Context, rows pgx.Rows) ([]model.Trade, error) {
	results := make([]model.Trade, 0, 8)
	for rows.Next() {
		var t model.Trade
		var created pgtype.Timestamptz
		var assets string
		err := rows.Scan(&t.ID, &t.SeasonID, &t.PlatformTradeID, &created, &t.Week, &t.Status, &assets)
		if err != nil {
			return nil, fmt.Errorf("error scanning trade: %w", err)
		}
		t.TradeDate = created.Time

		if assets != "" {
			if err := json.Unmarshal([]byte(assets), &t.Assets); err != nil {
				return nil, fmt.Errorf("error decoding assets for trade %d: %w", t.ID, err)
			}
		}
		results = append(results, t)
	}

	const linkQuery = `SELECT team_id FROM trade_teams WHERE trade_id=@tradeID ORDER BY team_id`
	for i := range results {
		linkRows, err := db.pool.Query(ctx, linkQuery, pgx.NamedArgs{"tradeID": results[i].ID})
		if err != nil {
			return nil, fmt.Errorf("error listing teams for trade %d: %w", results[i].ID, err)
		}
		for linkRows.Next() {
			var teamID int32
			if err := linkRows.Scan(&teamID); err != nil {
				return nil, err
			}
			results[i].TeamIDs = append(results[i].TeamIDs, teamID)
		}
	}

	return results, nil
}
