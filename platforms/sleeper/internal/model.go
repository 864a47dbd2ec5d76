package internal

type League struct {
	LeagueID         string           `json:"league_id"`
	Name             string           `json:"name"`
	Season           string           `json:"season"`
	Status           string           `json:"status"`
	TotalRosters     int              `json:"total_rosters"`
	PreviousLeagueID string           `json:"previous_league_id"`
	Settings         *LeagueSettings  `json:"settings"`
	ScoringSettings  *ScoringSettings `json:"scoring_settings"`
}

type LeagueSettings struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	PlayoffTeams     int `json:"playoff_teams"`
	Leg              int `json:"leg"`
}

type ScoringSettings struct {
	Rec float64 `json:"rec"`
}

type User struct {
	UserID      string        `json:"user_id"`
	DisplayName string        `json:"display_name"`
	Avatar      string        `json:"avatar"`
	Metadata    *UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

type Roster struct {
	RosterID int             `json:"roster_id"`
	OwnerID  string          `json:"owner_id"`
	Settings *RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	FPts               int `json:"fpts"`
	FPtsDecimal        int `json:"fpts_decimal"`
	FPtsAgainst        int `json:"fpts_against"`
	FPtsAgainstDecimal int `json:"fpts_against_decimal"`
}

// Points reassembles the score sleeper splits into whole and
// fractional parts.
func (s *RosterSettings) Points() float64 {
	return float64(s.FPts) + float64(s.FPtsDecimal)/100
}

func (s *RosterSettings) PointsAgainst() float64 {
	return float64(s.FPtsAgainst) + float64(s.FPtsAgainstDecimal)/100
}

type MatchupEntry struct {
	RosterID  int     `json:"roster_id"`
	MatchupID *int    `json:"matchup_id"`
	Points    float64 `json:"points"`
}

type Transaction struct {
	TransactionID string         `json:"transaction_id"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Created       int64          `json:"created"`
	Leg           int            `json:"leg"`
	RosterIDs     []int          `json:"roster_ids"`
	Adds          map[string]int `json:"adds"`
	Drops         map[string]int `json:"drops"`
	DraftPicks    []DraftPick    `json:"draft_picks"`
}

type DraftPick struct {
	Season          string `json:"season"`
	Round           int    `json:"round"`
	RosterID        int    `json:"roster_id"`
	OwnerID         int    `json:"owner_id"`
	PreviousOwnerID int    `json:"previous_owner_id"`
}

// BracketGame is one game in a playoff bracket. The winner is nil
// until the game has been played. The t1/t2 fields are omitted
// because sleeper encodes them as either ints or placeholder objects.
type BracketGame struct {
	Round  int  `json:"r"`
	Match  int  `json:"m"`
	Winner *int `json:"w"`
	Loser  *int `json:"l"`
}

type Player struct {
	PlayerID  string `json:"player_id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
}
