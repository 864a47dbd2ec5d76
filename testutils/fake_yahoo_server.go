package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// YahooLeagueKey is the only league the fake yahoo server knows about.
const YahooLeagueKey = "449.l.431"

//go:embed yahoodata
var yahoodata embed.FS

type FakeYahooServer struct {
	s *httptest.Server
}

func NewFakeYahooServer() *FakeYahooServer {
	r := chi.NewRouter()
	r.Use(requireAuthHeader)
	// https://fantasysports.yahooapis.com/fantasy/v2/league/449.l.431/standings
	r.Route("/fantasy/v2", func(r chi.Router) {
		r.Route("/league/{leagueKey}", func(r chi.Router) {
			r.Get("/settings", yahooSettingsHandler)
			r.Get("/standings", yahooStandingsHandler)
			r.Get("/scoreboard;week={week}", yahooScoreboardHandler)
			r.Get("/transactions;type=trade", yahooTransactionsHandler)
		})
		r.Get("/users;use_login=1/games;game_keys={gameKey}/leagues", yahooUserLeaguesHandler)
	})

	return &FakeYahooServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeYahooServer) Close() {
	f.s.Close()
}

func (f *FakeYahooServer) URL() string {
	return f.s.URL
}

// requireAuthHeader rejects requests without a bearer token the way
// yahoo rejects expired credentials.
func requireAuthHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func yahooSettingsHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueKey") != YahooLeagueKey {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(forbiddenMessage))
		return
	}
	serveYahooFile(w, "settings.xml")
}

func yahooStandingsHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueKey") != YahooLeagueKey {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(forbiddenMessage))
		return
	}
	serveYahooFile(w, "standings.xml")
}

func yahooScoreboardHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueKey") != YahooLeagueKey {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(forbiddenMessage))
		return
	}

	switch chi.URLParam(r, "week") {
	case "1":
		serveYahooFile(w, "scoreboard_1.xml")
	case "16":
		serveYahooFile(w, "scoreboard_16.xml")
	default:
		serveYahooFile(w, "scoreboard_empty.xml")
	}
}

func yahooTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueKey") != YahooLeagueKey {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(forbiddenMessage))
		return
	}
	serveYahooFile(w, "transactions.xml")
}

func yahooUserLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "gameKey") == "449" {
		serveYahooFile(w, "user_leagues_449.xml")
		return
	}
	serveYahooFile(w, "user_leagues_empty.xml")
}

func serveYahooFile(w http.ResponseWriter, name string) {
	b, err := yahoodata.ReadFile(fmt.Sprintf("yahoodata/%s", name))
	if err != nil {
		log.Printf("error reading yahoodata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

const forbiddenMessage = `<?xml version="1.0" encoding="UTF-8"?>
<error xml:lang="en-us" yahoo:uri="http://fantasysports.yahooapis.com/fantasy/v2/league/449.l.149975"
xmlns:yahoo="http://www.yahooapis.com/v1/base.rng" xmlns="http://www.yahooapis.com/v1/base.rng">
    <description>You are not allowed to view this page because you are not in this league.</description>
    <detail/>
</error>`
