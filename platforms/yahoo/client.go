package yahoo

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/amolgulati/LeagueLegacy/platforms/yahoo/internal"
)

const YahooURL = "https://fantasysports.yahooapis.com"

// DefaultGameKeys are the NFL game keys searched when discovering a
// user's leagues, newest season first.
var DefaultGameKeys = []string{"461", "449", "423", "406", "399", "390"}

var leagueKeyRegex = regexp.MustCompile(`^\d+\.l\.\d+$`)

// ValidateLeagueKey checks a league key of the form "449.l.12345".
func ValidateLeagueKey(key string) error {
	if !leagueKeyRegex.MatchString(key) {
		return fmt.Errorf("invalid yahoo league key: %s", key)
	}
	return nil
}

// AuthError indicates yahoo rejected the request's credentials. The
// caller can refresh the access token and retry once.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("yahoo rejected credentials with status %d", e.StatusCode)
}

// APIError is any non-auth error response from the yahoo API.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status code from yahoo: %d", e.StatusCode)
}

type League struct {
	Key              string
	Name             string
	Season           int
	NumTeams         int
	ScoringType      string
	CurrentWeek      int
	StartWeek        int
	EndWeek          int
	IsFinished       bool
	PlayoffStartWeek int
	NumPlayoffTeams  int
	renew            string
}

// PreviousLeagueKey returns the league key of the prior season, or ""
// when this is the league's first season. Yahoo encodes the link as
// "gameid_leagueid".
func (l *League) PreviousLeagueKey() string {
	parts := strings.SplitN(l.renew, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return fmt.Sprintf("%s.l.%s", parts[0], parts[1])
}

type Team struct {
	Key           string
	Name          string
	ManagerGUID   string
	ManagerName   string
	LogoURL       string
	Wins          int
	Losses        int
	Ties          int
	Rank          int
	PlayoffSeed   int
	PointsFor     float64
	PointsAgainst float64
}

type MatchupTeam struct {
	Key    string
	Points float64
}

type Matchup struct {
	Week          int
	IsPlayoffs    bool
	IsConsolation bool
	IsTied        bool
	WinnerTeamKey string
	Teams         [2]MatchupTeam
}

type TradedPlayer struct {
	Name        string
	FromTeamKey string
	ToTeamKey   string
}

type Trade struct {
	ID      string
	Status  string
	Date    time.Time
	Players []TradedPlayer
}

type Client struct {
	url string
}

func New() (*Client, error) {
	return &Client{url: YahooURL}, nil
}

func NewForTest(url string) *Client {
	return &Client{url: url}
}

func (c *Client) GetLeague(httpClient *http.Client, leagueKey string) (*League, error) {
	content, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/settings", leagueKey)
	if err != nil {
		return nil, err
	}

	if content == nil || content.League == nil || content.League.Key == "" {
		return nil, errors.New("league not found")
	}

	return convertLeague(content.League), nil
}

func (c *Client) GetStandings(httpClient *http.Client, leagueKey string) ([]Team, error) {
	content, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/standings", leagueKey)
	if err != nil {
		return nil, err
	}

	if content == nil ||
		content.League == nil ||
		content.League.Standings == nil ||
		content.League.Standings.Teams == nil ||
		content.League.Standings.Teams.Teams == nil {
		return nil, errors.New("league has no teams")
	}

	resp := make([]Team, 0, 12)
	for _, t := range content.League.Standings.Teams.Teams {
		team := Team{
			Key:  t.Key,
			Name: t.Name,
		}
		if t.Managers != nil && len(t.Managers.Managers) > 0 {
			team.ManagerGUID = t.Managers.Managers[0].GUID
			team.ManagerName = t.Managers.Managers[0].Nickname
			team.LogoURL = t.Managers.Managers[0].ImageURL
		}
		if t.Logos != nil && len(t.Logos.Logos) > 0 && team.LogoURL == "" {
			team.LogoURL = t.Logos.Logos[0].URL
		}
		if s := t.TeamStandings; s != nil {
			team.Rank = s.Rank
			team.PlayoffSeed = s.PlayoffSeed
			team.PointsFor = s.PointsFor
			team.PointsAgainst = s.PointsAgainst
			if s.OutcomeTotals != nil {
				team.Wins = s.OutcomeTotals.Wins
				team.Losses = s.OutcomeTotals.Losses
				team.Ties = s.OutcomeTotals.Ties
			}
		}
		resp = append(resp, team)
	}

	return resp, nil
}

func (c *Client) GetScoreboard(httpClient *http.Client, leagueKey string, week int) ([]Matchup, error) {
	content, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/scoreboard;week=%d", leagueKey, week)
	if err != nil {
		return nil, err
	}

	if content == nil ||
		content.League == nil ||
		content.League.Scoreboard == nil ||
		content.League.Scoreboard.Matchups == nil {
		return nil, errors.New("league scoreboard not found")
	}

	results := make([]Matchup, 0, 6)
	for _, m := range content.League.Scoreboard.Matchups.Matchups {
		if err := validateTeams(m.Teams); err != nil {
			return nil, err
		}

		matchup := Matchup{
			Week:          week,
			IsPlayoffs:    m.IsPlayoffs == 1,
			IsConsolation: m.IsConsolation == 1,
			IsTied:        m.IsTied == 1,
			WinnerTeamKey: m.WinnerTeamKey,
		}
		for i := 0; i < 2; i++ {
			t := m.Teams.Teams[i]
			matchup.Teams[i] = MatchupTeam{
				Key:    t.Key,
				Points: t.TeamPoints.Total,
			}
		}

		results = append(results, matchup)
	}

	return results, nil
}

func (c *Client) GetTrades(httpClient *http.Client, leagueKey string) ([]Trade, error) {
	content, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/transactions;type=trade", leagueKey)
	if err != nil {
		return nil, err
	}

	if content == nil ||
		content.League == nil ||
		content.League.Transactions == nil ||
		content.League.Transactions.Transactions == nil {
		// A league with no trades returns an empty transactions node.
		return nil, nil
	}

	results := make([]Trade, 0, 4)
	for _, t := range content.League.Transactions.Transactions {
		if t.Type != "trade" || t.Status != "successful" {
			continue
		}
		trade := Trade{
			ID:     t.ID,
			Status: t.Status,
			Date:   time.Unix(t.Timestamp, 0).UTC(),
		}
		if t.Players != nil {
			for _, p := range t.Players.Players {
				if p.TransactionData == nil || p.Name == nil {
					continue
				}
				trade.Players = append(trade.Players, TradedPlayer{
					Name:        p.Name.Full,
					FromTeamKey: p.TransactionData.SourceTeamKey,
					ToTeamKey:   p.TransactionData.DestinationTeamKey,
				})
			}
		}
		results = append(results, trade)
	}

	return results, nil
}

// GetUserLeagues returns the logged-in user's leagues for one NFL
// game key. Game keys the user never played return an empty slice.
func (c *Client) GetUserLeagues(httpClient *http.Client, gameKey string) ([]League, error) {
	content, err := c.yahooRequest(httpClient, "/fantasy/v2/users;use_login=1/games;game_keys=%s/leagues", gameKey)
	if err != nil {
		return nil, err
	}

	if content == nil || content.Users == nil || content.Users.Users == nil {
		return nil, errors.New("user leagues not found")
	}

	results := make([]League, 0, 4)
	for _, u := range content.Users.Users {
		if u.Games == nil {
			continue
		}
		for _, g := range u.Games.Games {
			if g.Leagues == nil {
				continue
			}
			for _, l := range g.Leagues.Leagues {
				results = append(results, *convertLeague(&l))
			}
		}
	}

	return results, nil
}

func validateTeams(teams *internal.Teams) error {
	if teams == nil || len(teams.Teams) != 2 {
		return errors.New("invalid teams in result")
	}
	for _, t := range teams.Teams {
		if t.Key == "" || t.TeamPoints == nil {
			return errors.New("invalid team in results")
		}
	}
	return nil
}

func convertLeague(l *internal.League) *League {
	res := &League{
		Key:         l.Key,
		Name:        l.Name,
		Season:      l.Season,
		NumTeams:    l.NumTeams,
		ScoringType: l.ScoringType,
		CurrentWeek: l.CurrentWeek,
		StartWeek:   l.StartWeek,
		EndWeek:     l.EndWeek,
		IsFinished:  l.IsFinished == 1,
		renew:       l.Renew,
	}
	if l.Settings != nil {
		res.PlayoffStartWeek = l.Settings.PlayoffStartWeek
		res.NumPlayoffTeams = l.Settings.NumPlayoffTeams
	}
	return res
}

func (c *Client) yahooRequest(httpClient *http.Client, path string, args ...any) (*internal.FantasyContent, error) {
	p := fmt.Sprintf(path, args...)
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s%s", c.url, p), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating yahoo http request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending yahoo http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var res internal.FantasyContent
	err = xml.NewDecoder(resp.Body).Decode(&res)
	if err != nil {
		return nil, fmt.Errorf("error parsing response from yahoo: %w", err)
	}

	return &res, nil
}
