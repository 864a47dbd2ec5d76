package model

// Matchup is one head-to-head game in one week of one Season. The home/away
// orientation is whatever order the platform returned the pair in; the upsert
// key is (season, week, home, away) in that orientation.
type Matchup struct {
	ID             int32   `json:"id"`
	SeasonID       int32   `json:"season_id"`
	Week           int     `json:"week"`
	HomeTeamID     int32   `json:"home_team_id"`
	AwayTeamID     int32   `json:"away_team_id"`
	HomeScore      float64 `json:"home_score"`
	AwayScore      float64 `json:"away_score"`
	IsPlayoff      bool    `json:"is_playoff"`
	IsChampionship bool    `json:"is_championship"`
	IsConsolation  bool    `json:"is_consolation"`
	IsTie          bool    `json:"is_tie"`
	WinnerTeamID   *int32  `json:"winner_team_id"`
}

// OwnerMatchup is a matchup from the point of view of one owner, with the
// season year attached so matchups can be ordered by (year, week).
type OwnerMatchup struct {
	Matchup    Matchup
	SeasonYear int
	TeamID     int32 // the owner's team in this matchup
}

// Won reports whether the owner's team won. Ties are not wins.
func (om *OwnerMatchup) Won() bool {
	return om.Matchup.WinnerTeamID != nil && *om.Matchup.WinnerTeamID == om.TeamID
}

// Decided reports whether the matchup has a result: either a winner or an
// explicit tie with points on the board.
func (m *Matchup) Decided() bool {
	if m.WinnerTeamID != nil {
		return true
	}
	return m.IsTie && (m.HomeScore > 0 || m.AwayScore > 0)
}
