package model

import "time"

// TradeAssets describes what one participant received and sent in a trade.
// Entries are display strings: resolved player names or "Pick: 2025 Round 2".
type TradeAssets struct {
	Received []string `json:"received"`
	Sent     []string `json:"sent"`
}

// Trade is one completed multi-team transaction. Assets is keyed by the
// platform-native team id of each participant.
type Trade struct {
	ID              int32                   `json:"id"`
	SeasonID        int32                   `json:"season_id"`
	PlatformTradeID string                  `json:"platform_trade_id"`
	TradeDate       time.Time               `json:"trade_date"`
	Week            int                     `json:"week"`
	Status          string                  `json:"status"`
	Assets          map[string]*TradeAssets `json:"assets"`
	TeamIDs         []int32                 `json:"team_ids"`
}

// AssetsFor returns the entry for a participant, creating it if needed.
func (t *Trade) AssetsFor(platformTeamID string) *TradeAssets {
	if t.Assets == nil {
		t.Assets = make(map[string]*TradeAssets)
	}
	a, ok := t.Assets[platformTeamID]
	if !ok {
		a = &TradeAssets{Received: []string{}, Sent: []string{}}
		t.Assets[platformTeamID] = a
	}
	return a
}
