package model

// SeasonSummary is a season with its champion and runner-up resolved to
// owner-facing names for list views.
type SeasonSummary struct {
	Season       Season `json:"season"`
	ChampionName string `json:"champion_name,omitempty"`
	RunnerUpName string `json:"runner_up_name,omitempty"`
}

// TeamStanding is a team with its owner resolved.
type TeamStanding struct {
	Team      Team   `json:"team"`
	OwnerID   int32  `json:"owner_id"`
	OwnerName string `json:"owner_name"`
}

// SeasonDetail is everything recorded for one season.
type SeasonDetail struct {
	Season     Season         `json:"season"`
	LeagueName string         `json:"league_name"`
	Standings  []TeamStanding `json:"standings"`
	Matchups   []Matchup      `json:"matchups"`
	Trades     []Trade        `json:"trades"`
}

// CareerStats aggregates an owner's record across every imported season.
type CareerStats struct {
	Seasons            int     `json:"seasons"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	Ties               int     `json:"ties"`
	WinPct             float64 `json:"win_pct"`
	PointsFor          float64 `json:"points_for"`
	PointsAgainst      float64 `json:"points_against"`
	Championships      int     `json:"championships"`
	PlayoffAppearances int     `json:"playoff_appearances"`
}

// OwnerSeason is one year of an owner's franchise history.
type OwnerSeason struct {
	Year         int     `json:"year"`
	LeagueName   string  `json:"league_name"`
	TeamName     string  `json:"team_name"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Ties         int     `json:"ties"`
	PointsFor    float64 `json:"points_for"`
	FinalRank    int     `json:"final_rank,omitempty"`
	MadePlayoffs bool    `json:"made_playoffs"`
	Champion     bool    `json:"champion"`
}

// OwnerHistory is an owner's career summary plus year-by-year results.
type OwnerHistory struct {
	Owner   Owner         `json:"owner"`
	Career  CareerStats   `json:"career"`
	Seasons []OwnerSeason `json:"seasons"`
}

// Meeting is one head-to-head game between two owners.
type Meeting struct {
	Year       int     `json:"year"`
	Week       int     `json:"week"`
	ScoreA     float64 `json:"score_a"`
	ScoreB     float64 `json:"score_b"`
	WinnerName string  `json:"winner_name,omitempty"`
	IsPlayoff  bool    `json:"is_playoff"`
	IsTie      bool    `json:"is_tie"`
}

// HeadToHead is the all-time record between two owners.
type HeadToHead struct {
	OwnerA   Owner     `json:"owner_a"`
	OwnerB   Owner     `json:"owner_b"`
	WinsA    int       `json:"wins_a"`
	WinsB    int       `json:"wins_b"`
	Ties     int       `json:"ties"`
	PointsA  float64   `json:"points_a"`
	PointsB  float64   `json:"points_b"`
	Meetings []Meeting `json:"meetings"`
}

// ScoreRecord is a single-week scoring record.
type ScoreRecord struct {
	OwnerName string  `json:"owner_name"`
	TeamName  string  `json:"team_name"`
	Year      int     `json:"year"`
	Week      int     `json:"week"`
	Score     float64 `json:"score"`
}

// BlowoutRecord is the largest single-game margin of victory.
type BlowoutRecord struct {
	WinnerName string  `json:"winner_name"`
	LoserName  string  `json:"loser_name"`
	Year       int     `json:"year"`
	Week       int     `json:"week"`
	Margin     float64 `json:"margin"`
}

// StreakRecord is an owner's longest win streak within one season.
type StreakRecord struct {
	OwnerName string `json:"owner_name"`
	Year      int    `json:"year"`
	Length    int    `json:"length"`
}

// TradeCountRecord is the season with the most trades.
type TradeCountRecord struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// LeagueRecords is the record book for one league across all seasons.
type LeagueRecords struct {
	LeagueID           int32             `json:"league_id"`
	HighestWeeklyScore *ScoreRecord      `json:"highest_weekly_score,omitempty"`
	BiggestBlowout     *BlowoutRecord    `json:"biggest_blowout,omitempty"`
	LongestWinStreaks  []StreakRecord    `json:"longest_win_streaks"`
	MostTradesSeason   *TradeCountRecord `json:"most_trades_season,omitempty"`
}

// ChampionEntry is one owner's championship tally.
type ChampionEntry struct {
	OwnerID   int32  `json:"owner_id"`
	OwnerName string `json:"owner_name"`
	Titles    int    `json:"titles"`
	Years     []int  `json:"years"`
}

// Dynasty is a run of consecutive championships by one owner.
type Dynasty struct {
	OwnerID   int32  `json:"owner_id"`
	OwnerName string `json:"owner_name"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
	Titles    int    `json:"titles"`
}

// HallOfFame is the cross-league championship leaderboard.
type HallOfFame struct {
	Champions []ChampionEntry `json:"champions"`
	Dynasties []Dynasty       `json:"dynasties"`
}

// TradePartner counts trades between one owner and another.
type TradePartner struct {
	OwnerID   int32  `json:"owner_id"`
	OwnerName string `json:"owner_name"`
	Count     int    `json:"count"`
}

// TradeWinRate compares an owner's win rate before and after their first
// trade. Ties are excluded from both sides.
type TradeWinRate struct {
	FirstTradeYear int     `json:"first_trade_year"`
	FirstTradeWeek int     `json:"first_trade_week"`
	WinRateBefore  float64 `json:"win_rate_before"`
	WinRateAfter   float64 `json:"win_rate_after"`
	GamesBefore    int     `json:"games_before"`
	GamesAfter     int     `json:"games_after"`
}

// TradeHistory is an owner's trading activity.
type TradeHistory struct {
	OwnerID     int32          `json:"owner_id"`
	TotalTrades int            `json:"total_trades"`
	Partners    []TradePartner `json:"partners"`
	WinRate     *TradeWinRate  `json:"win_rate,omitempty"`
	Trades      []Trade        `json:"trades"`
}
