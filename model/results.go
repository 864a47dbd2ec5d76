package model

// SeasonImportResult reports what one season's import wrote.
type SeasonImportResult struct {
	SeasonYear       int    `json:"season_year"`
	TeamsImported    int    `json:"teams_imported"`
	MatchupsImported int    `json:"matchups_imported"`
	TradesImported   int    `json:"trades_imported"`
	Error            string `json:"error,omitempty"`
}

// LeagueImportResult aggregates an import across every discovered season.
type LeagueImportResult struct {
	LeagueID         int32                `json:"league_id"`
	LeagueName       string               `json:"league_name"`
	SeasonsImported  int                  `json:"seasons_imported"`
	Seasons          []SeasonImportResult `json:"seasons"`
	TeamsImported    int                  `json:"teams_imported"`
	MatchupsImported int                  `json:"matchups_imported"`
	TradesImported   int                  `json:"trades_imported"`
	ChampionTeamID   *int32               `json:"champion_team_id,omitempty"`
	ChampionName     string               `json:"champion_name,omitempty"`
}
