package web

import (
	"time"

	"github.com/amolgulati/LeagueLegacy/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The 10 second timeout is applied per group rather than on the
	// whole router: a nested timeout can only shorten an inherited
	// deadline, and the import routes need their full 5 minutes.

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/", rootHandler(ctrl, render))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/sleeper", func(r chi.Router) {
			// Imports walk every season of a league and can take a while.
			r.Use(middleware.Timeout(5 * time.Minute))
			r.Post("/import", importSleeperHandler(ctrl, render))
		})

		r.Route("/yahoo", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				r.Use(middleware.Timeout(10 * time.Second))
				r.Get("/login", oauthLoginHandler(ctrl, render))
				r.Get("/callback", oauthCallbackHandler(ctrl, render))
				r.Get("/status", oauthStatusHandler(ctrl, render))
				r.Post("/logout", oauthLogoutHandler(ctrl, render))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(5 * time.Minute))
				r.Post("/import", importYahooHandler(ctrl, render))
				r.Post("/import/all", importAllYahooHandler(ctrl, render))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(10 * time.Second))

			r.Route("/leagues", func(r chi.Router) {
				r.Get("/", listLeaguesHandler(ctrl, render))
				r.Route("/{leagueID:\\d+}", func(r chi.Router) {
					r.Delete("/", deleteLeagueHandler(ctrl, render))
					r.Get("/seasons", leagueSeasonsHandler(ctrl, render))
					r.Get("/records", leagueRecordsHandler(ctrl, render))
				})
			})

			r.Get("/seasons/{seasonID:\\d+}", seasonDetailHandler(ctrl, render))

			r.Route("/owners", func(r chi.Router) {
				r.Get("/", listOwnersHandler(ctrl, render))
				r.Route("/{ownerID:\\d+}", func(r chi.Router) {
					r.Get("/", getOwnerHandler(ctrl, render))
					r.Put("/", updateOwnerHandler(ctrl, render))
					r.Post("/merge", mergeOwnersHandler(ctrl, render))
					r.Post("/mappings", mapOwnerPlatformHandler(ctrl, render))
					r.Delete("/mappings/{platform}", unlinkOwnerPlatformHandler(ctrl, render))
					r.Get("/history", ownerHistoryHandler(ctrl, render))
					r.Get("/trades", ownerTradesHandler(ctrl, render))
				})
			})

			r.Get("/head-to-head", headToHeadHandler(ctrl, render))
			r.Get("/hall-of-fame", hallOfFameHandler(ctrl, render))
		})
	})

	return r
}
