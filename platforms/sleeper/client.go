package sleeper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/amolgulati/LeagueLegacy/platforms/sleeper/internal"
)

const SleeperURL = "https://api.sleeper.app"

// ErrNotFound is returned when sleeper has no record of the requested
// league or user.
var ErrNotFound = errors.New("not found on sleeper")

type League struct {
	ID               string
	Name             string
	Season           string
	Status           string
	PreviousLeagueID string
	TotalRosters     int
	PlayoffWeekStart int
	PlayoffTeams     int
	RecPoints        float64
}

// Complete reports whether sleeper has closed out the season.
func (l *League) Complete() bool {
	return l.Status == "complete"
}

type User struct {
	ID          string
	DisplayName string
	Avatar      string
	TeamName    string
}

type Roster struct {
	ID            int
	OwnerID       string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
}

type MatchupEntry struct {
	RosterID int
	// MatchupID pairs the two entries that played each other. It is
	// nil for rosters on a bye.
	MatchupID *int
	Points    float64
}

type DraftPickAsset struct {
	Season          string
	Round           int
	OwnerRosterID   int
	TradedByRoster  int
	CurrentRosterID int
}

type Trade struct {
	ID         string
	Week       int
	Date       time.Time
	RosterIDs  []int
	Adds       map[string]int
	Drops      map[string]int
	DraftPicks []DraftPickAsset
}

type BracketGame struct {
	Round  int
	Match  int
	Winner *int
	Loser  *int
}

type Player struct {
	ID       string
	Name     string
	Position string
	Team     string
}

type Client interface {
	GetLeague(leagueID string) (*League, error)
	GetLeagueUsers(leagueID string) ([]User, error)
	GetLeagueRosters(leagueID string) ([]Roster, error)
	GetMatchups(leagueID string, week int) ([]MatchupEntry, error)
	GetTrades(leagueID string, week int) ([]Trade, error)
	GetWinnersBracket(leagueID string) ([]BracketGame, error)
	GetLeagueHistory(leagueID string) ([]*League, error)
	LoadPlayers() (map[string]Player, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New() (Client, error) {
	c := &client{
		url: SleeperURL,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *client) GetLeague(leagueID string) (*League, error) {
	var parsed internal.League
	if err := c.sleeperRequest(&parsed, "/v1/league/%s", leagueID); err != nil {
		return nil, err
	}
	if parsed.LeagueID == "" {
		return nil, ErrNotFound
	}
	return convertLeague(&parsed), nil
}

// GetLeagueHistory walks the previous_league_id chain starting at
// leagueID and returns the leagues from newest to oldest. Already
// visited leagues terminate the walk so that a bad link on sleeper's
// side cannot loop forever.
func (c *client) GetLeagueHistory(leagueID string) ([]*League, error) {
	visited := make(map[string]bool)
	results := make([]*League, 0, 8)

	id := leagueID
	for id != "" && id != "0" {
		if visited[id] {
			break
		}
		visited[id] = true

		l, err := c.GetLeague(id)
		if err != nil {
			if errors.Is(err, ErrNotFound) && len(results) > 0 {
				// The chain can reference seasons sleeper has purged.
				break
			}
			return nil, err
		}
		results = append(results, l)
		id = l.PreviousLeagueID
	}

	return results, nil
}

func (c *client) GetLeagueUsers(leagueID string) ([]User, error) {
	var parsed []internal.User
	if err := c.sleeperRequest(&parsed, "/v1/league/%s/users", leagueID); err != nil {
		return nil, err
	}

	results := make([]User, 0, len(parsed))
	for _, u := range parsed {
		user := User{
			ID:          u.UserID,
			DisplayName: u.DisplayName,
			Avatar:      u.Avatar,
		}
		if u.Metadata != nil {
			user.TeamName = u.Metadata.TeamName
		}
		results = append(results, user)
	}
	return results, nil
}

func (c *client) GetLeagueRosters(leagueID string) ([]Roster, error) {
	var parsed []internal.Roster
	if err := c.sleeperRequest(&parsed, "/v1/league/%s/rosters", leagueID); err != nil {
		return nil, err
	}

	results := make([]Roster, 0, len(parsed))
	for _, r := range parsed {
		roster := Roster{
			ID:      r.RosterID,
			OwnerID: r.OwnerID,
		}
		if r.Settings != nil {
			roster.Wins = r.Settings.Wins
			roster.Losses = r.Settings.Losses
			roster.Ties = r.Settings.Ties
			roster.PointsFor = r.Settings.Points()
			roster.PointsAgainst = r.Settings.PointsAgainst()
		}
		results = append(results, roster)
	}
	return results, nil
}

func (c *client) GetMatchups(leagueID string, week int) ([]MatchupEntry, error) {
	var parsed []internal.MatchupEntry
	if err := c.sleeperRequest(&parsed, "/v1/league/%s/matchups/%d", leagueID, week); err != nil {
		return nil, err
	}

	results := make([]MatchupEntry, 0, len(parsed))
	for _, m := range parsed {
		results = append(results, MatchupEntry{
			RosterID:  m.RosterID,
			MatchupID: m.MatchupID,
			Points:    m.Points,
		})
	}
	return results, nil
}

func (c *client) GetTrades(leagueID string, week int) ([]Trade, error) {
	var parsed []internal.Transaction
	if err := c.sleeperRequest(&parsed, "/v1/league/%s/transactions/%d", leagueID, week); err != nil {
		return nil, err
	}

	results := make([]Trade, 0, 2)
	for _, t := range parsed {
		if t.Type != "trade" || t.Status != "complete" {
			continue
		}
		trade := Trade{
			ID:        t.TransactionID,
			Week:      t.Leg,
			Date:      time.UnixMilli(t.Created).UTC(),
			RosterIDs: t.RosterIDs,
			Adds:      t.Adds,
			Drops:     t.Drops,
		}
		if trade.Week == 0 {
			trade.Week = week
		}
		for _, p := range t.DraftPicks {
			trade.DraftPicks = append(trade.DraftPicks, DraftPickAsset{
				Season:          p.Season,
				Round:           p.Round,
				OwnerRosterID:   p.OwnerID,
				TradedByRoster:  p.PreviousOwnerID,
				CurrentRosterID: p.RosterID,
			})
		}
		results = append(results, trade)
	}
	return results, nil
}

func (c *client) GetWinnersBracket(leagueID string) ([]BracketGame, error) {
	var parsed []internal.BracketGame
	if err := c.sleeperRequest(&parsed, "/v1/league/%s/winners_bracket", leagueID); err != nil {
		return nil, err
	}

	results := make([]BracketGame, 0, len(parsed))
	for _, g := range parsed {
		results = append(results, BracketGame{
			Round:  g.Round,
			Match:  g.Match,
			Winner: g.Winner,
			Loser:  g.Loser,
		})
	}
	return results, nil
}

func (c *client) LoadPlayers() (map[string]Player, error) {
	var parsed map[string]internal.Player
	if err := c.sleeperRequest(&parsed, "/v1/players/nfl"); err != nil {
		return nil, err
	}

	results := make(map[string]Player, len(parsed))
	for id, p := range parsed {
		results[id] = Player{
			ID:       id,
			Name:     playerName(&p, id),
			Position: p.Position,
			Team:     p.Team,
		}
	}
	return results, nil
}

// playerName falls back from full_name to assembled first/last to a
// placeholder so trades can always render an asset label.
func playerName(p *internal.Player, id string) string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.FirstName != "" || p.LastName != "" {
		return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
	}
	return fmt.Sprintf("Player %s", id)
}

func convertLeague(l *internal.League) *League {
	res := &League{
		ID:               l.LeagueID,
		Name:             l.Name,
		Season:           l.Season,
		Status:           l.Status,
		PreviousLeagueID: l.PreviousLeagueID,
		TotalRosters:     l.TotalRosters,
	}
	if l.Settings != nil {
		res.PlayoffWeekStart = l.Settings.PlayoffWeekStart
		res.PlayoffTeams = l.Settings.PlayoffTeams
	}
	if l.ScoringSettings != nil {
		res.RecPoints = l.ScoringSettings.Rec
	}
	return res
}

func (c *client) sleeperRequest(out any, path string, args ...any) error {
	p := fmt.Sprintf(path, args...)
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s%s", c.url, p), nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from sleeper: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	return nil
}
