package internal

type FantasyContent struct {
	League *League `xml:"league"`
	Users  *Users  `xml:"users"`
}

type League struct {
	Key          string        `xml:"league_key"`
	ID           string        `xml:"league_id"`
	Name         string        `xml:"name"`
	Season       int           `xml:"season"`
	NumTeams     int           `xml:"num_teams"`
	ScoringType  string        `xml:"scoring_type"`
	CurrentWeek  int           `xml:"current_week"`
	StartWeek    int           `xml:"start_week"`
	EndWeek      int           `xml:"end_week"`
	IsFinished   int           `xml:"is_finished"`
	Renew        string        `xml:"renew"`
	Settings     *Settings     `xml:"settings"`
	Standings    *Standings    `xml:"standings"`
	Scoreboard   *Scoreboard   `xml:"scoreboard"`
	Transactions *Transactions `xml:"transactions"`
}

type Settings struct {
	PlayoffStartWeek int `xml:"playoff_start_week"`
	NumPlayoffTeams  int `xml:"num_playoff_teams"`
}

type Standings struct {
	Teams *Teams `xml:"teams"`
}

type Teams struct {
	Teams []Team `xml:"team"`
}

type Team struct {
	Key           string         `xml:"team_key"`
	ID            string         `xml:"team_id"`
	Name          string         `xml:"name"`
	Logos         *TeamLogos     `xml:"team_logos"`
	Managers      *Managers      `xml:"managers"`
	TeamPoints    *TeamPoints    `xml:"team_points"`
	TeamStandings *TeamStandings `xml:"team_standings"`
}

type TeamLogos struct {
	Logos []TeamLogo `xml:"team_logo"`
}

type TeamLogo struct {
	URL string `xml:"url"`
}

type Managers struct {
	Managers []Manager `xml:"manager"`
}

type Manager struct {
	GUID     string `xml:"guid"`
	Nickname string `xml:"nickname"`
	ImageURL string `xml:"image_url"`
}

type TeamPoints struct {
	Total float64 `xml:"total"`
}

type TeamStandings struct {
	Rank          int            `xml:"rank"`
	PlayoffSeed   int            `xml:"playoff_seed"`
	OutcomeTotals *OutcomeTotals `xml:"outcome_totals"`
	PointsFor     float64        `xml:"points_for"`
	PointsAgainst float64        `xml:"points_against"`
}

type OutcomeTotals struct {
	Wins   int `xml:"wins"`
	Losses int `xml:"losses"`
	Ties   int `xml:"ties"`
}

type Scoreboard struct {
	Week     int       `xml:"week"`
	Matchups *Matchups `xml:"matchups"`
}

type Matchups struct {
	Matchups []Matchup `xml:"matchup"`
}

type Matchup struct {
	Week          int    `xml:"week"`
	IsPlayoffs    int    `xml:"is_playoffs"`
	IsConsolation int    `xml:"is_consolation"`
	IsTied        int    `xml:"is_tied"`
	WinnerTeamKey string `xml:"winner_team_key"`
	Teams         *Teams `xml:"teams"`
}

type Transactions struct {
	Transactions []Transaction `xml:"transaction"`
}

type Transaction struct {
	Key       string   `xml:"transaction_key"`
	ID        string   `xml:"transaction_id"`
	Type      string   `xml:"type"`
	Status    string   `xml:"status"`
	Timestamp int64    `xml:"timestamp"`
	Players   *Players `xml:"players"`
}

type Players struct {
	Players []Player `xml:"player"`
}

type Player struct {
	Key             string           `xml:"player_key"`
	ID              string           `xml:"player_id"`
	Name            *PlayerName      `xml:"name"`
	Position        string           `xml:"primary_position"`
	TransactionData *TransactionData `xml:"transaction_data"`
}

type PlayerName struct {
	Full  string `xml:"full"`
	First string `xml:"first"`
	Last  string `xml:"last"`
}

type TransactionData struct {
	Type                string `xml:"type"`
	SourceTeamKey       string `xml:"source_team_key"`
	SourceTeamName      string `xml:"source_team_name"`
	DestinationTeamKey  string `xml:"destination_team_key"`
	DestinationTeamName string `xml:"destination_team_name"`
}

type Users struct {
	Users []User `xml:"user"`
}

type User struct {
	GUID  string `xml:"guid"`
	Games *Games `xml:"games"`
}

type Games struct {
	Games []Game `xml:"game"`
}

type Game struct {
	Key     string   `xml:"game_key"`
	Season  int      `xml:"season"`
	Leagues *Leagues `xml:"leagues"`
}

type Leagues struct {
	Leagues []League `xml:"league"`
}
