package playercache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/amolgulati/LeagueLegacy/platforms/sleeper"
)

const (
	cacheFileName = "sleeper_players.json"
	cacheTTL      = 24 * time.Hour
)

// Cache holds the sleeper player list so trade imports can turn
// player ids into names. The full list is large and changes rarely,
// so it is kept on disk and refreshed at most once a day.
type Cache struct {
	client sleeper.Client
	clock  clock.Clock
	path   string

	mu      sync.RWMutex
	players map[string]sleeper.Player
}

type cacheFile struct {
	Fetched time.Time                 `json:"fetched"`
	Players map[string]sleeper.Player `json:"players"`
}

func New(client sleeper.Client, clock clock.Clock, dir string) *Cache {
	return &Cache{
		client:  client,
		clock:   clock,
		path:    filepath.Join(dir, cacheFileName),
		players: make(map[string]sleeper.Player),
	}
}

// Load populates the cache from disk when the file is fresh, and
// from sleeper otherwise. A fetch failure with a stale file on disk
// falls back to the stale data.
func (c *Cache) Load() error {
	if file, err := c.readFile(); err == nil {
		fresh := c.clock.Now().Sub(file.Fetched) < cacheTTL
		if fresh {
			c.set(file.Players)
			return nil
		}

		players, fetchErr := c.client.LoadPlayers()
		if fetchErr != nil {
			log.Printf("player refresh failed, using stale cache: %v", fetchErr)
			c.set(file.Players)
			return nil
		}
		c.set(players)
		return c.writeFile(players)
	}

	players, err := c.client.LoadPlayers()
	if err != nil {
		return fmt.Errorf("error loading players from sleeper: %w", err)
	}
	c.set(players)
	return c.writeFile(players)
}

// Name returns the player's display name, or a placeholder when the
// id is unknown.
func (c *Cache) Name(id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if p, found := c.players[id]; found && p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("Player %s", id)
}

func (c *Cache) set(players map[string]sleeper.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.players = players
}

func (c *Cache) readFile() (*cacheFile, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return nil, err
	}

	var file cacheFile
	if err := json.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("error parsing player cache file: %w", err)
	}
	return &file, nil
}

func (c *Cache) writeFile(players map[string]sleeper.Player) error {
	b, err := json.Marshal(&cacheFile{
		Fetched: c.clock.Now(),
		Players: players,
	})
	if err != nil {
		return fmt.Errorf("error encoding player cache file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("error creating player cache dir: %w", err)
	}
	if err := os.WriteFile(c.path, b, 0o644); err != nil {
		return fmt.Errorf("error writing player cache file: %w", err)
	}
	return nil
}
