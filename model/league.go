package model

var PlatformSleeper = "sleeper"
var PlatformYahoo = "yahoo"

func IsPlatformSupported(platform string) bool {
	return platform == PlatformSleeper || platform == PlatformYahoo
}

// League is one persistent competition on one platform. A single League row
// spans every season of the same logical league, even when the platform hands
// out a fresh native id per year.
type League struct {
	ID               int32  `json:"id"`
	Platform         string `json:"platform"`
	PlatformLeagueID string `json:"platform_league_id"`
	Name             string `json:"name"`
	TeamCount        int    `json:"team_count"`
	ScoringType      string `json:"scoring_type"`
}

// Season is one year of a League.
type Season struct {
	ID                    int32  `json:"id"`
	LeagueID              int32  `json:"league_id"`
	Year                  int    `json:"year"`
	RegularSeasonWeeks    int    `json:"regular_season_weeks"`
	PlayoffWeeks          int    `json:"playoff_weeks"`
	PlayoffTeamCount      int    `json:"playoff_team_count"`
	IsComplete            bool   `json:"is_complete"`
	ChampionTeamID        *int32 `json:"champion_team_id"`
	RunnerUpTeamID        *int32 `json:"runner_up_team_id"`
	RegularSeasonWinnerID *int32 `json:"regular_season_winner_id"`
}
