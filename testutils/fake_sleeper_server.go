package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// League IDs served by the fake sleeper server. The 2024 league links
// back to the 2023 league through previous_league_id.
const (
	SleeperLeagueID2024 = "924039165950484480"
	SleeperLeagueID2023 = "824039165950484480"
)

//go:embed sleeperdata
var sleeperdata embed.FS

type FakeSleeperServer struct {
	s *httptest.Server
}

func NewFakeSleeperServer() *FakeSleeperServer {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", nflPlayersHandler)

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", leagueHandler)
			r.Get("/users", leagueUsersHandler)
			r.Get("/rosters", leagueRostersHandler)
			r.Get("/matchups/{week}", leagueMatchupsHandler)
			r.Get("/transactions/{week}", leagueTransactionsHandler)
			r.Get("/winners_bracket", winnersBracketHandler)
		})
	})

	return &FakeSleeperServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

func nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	serveSleeperFile(w, "players.json")
}

func leagueHandler(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "leagueID") {
	case SleeperLeagueID2024:
		serveSleeperFile(w, "league_2024.json")
	case SleeperLeagueID2023:
		serveSleeperFile(w, "league_2023.json")
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("null"))
	}
}

func leagueUsersHandler(w http.ResponseWriter, r *http.Request) {
	if !knownLeague(r) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serveSleeperFile(w, "users.json")
}

func leagueRostersHandler(w http.ResponseWriter, r *http.Request) {
	if !knownLeague(r) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serveSleeperFile(w, "rosters.json")
}

func leagueMatchupsHandler(w http.ResponseWriter, r *http.Request) {
	if !knownLeague(r) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if chi.URLParam(r, "week") == "1" {
		serveSleeperFile(w, "matchups_1.json")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("[]"))
}

func leagueTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	if !knownLeague(r) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if chi.URLParam(r, "week") == "2" {
		serveSleeperFile(w, "transactions_2.json")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("[]"))
}

func winnersBracketHandler(w http.ResponseWriter, r *http.Request) {
	if !knownLeague(r) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serveSleeperFile(w, "winners_bracket.json")
}

func knownLeague(r *http.Request) bool {
	id := chi.URLParam(r, "leagueID")
	return id == SleeperLeagueID2024 || id == SleeperLeagueID2023
}

func serveSleeperFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
