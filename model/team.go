package model

import "fmt"

// Team is one Owner's entry in one Season. PlatformTeamID is the roster id
// (Sleeper) or team key (Yahoo) and is unique within the season.
type Team struct {
	ID                int32   `json:"id"`
	SeasonID          int32   `json:"season_id"`
	OwnerID           int32   `json:"owner_id"`
	Name              string  `json:"name"`
	PlatformTeamID    string  `json:"platform_team_id"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Ties              int     `json:"ties"`
	PointsFor         float64 `json:"points_for"`
	PointsAgainst     float64 `json:"points_against"`
	RegularSeasonRank int     `json:"regular_season_rank"`
	FinalRank         int     `json:"final_rank"`
	MadePlayoffs      bool    `json:"made_playoffs"`
	LongestWinStreak  int     `json:"longest_win_streak"`
}

// Record formats the team's win-loss-tie record, omitting ties when zero.
func (t *Team) Record() string {
	if t.Ties == 0 {
		return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
	}
	return fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties)
}
