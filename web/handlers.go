package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/amolgulati/LeagueLegacy/controller"
	"github.com/amolgulati/LeagueLegacy/db"
	"github.com/amolgulati/LeagueLegacy/platforms/sleeper"
	"github.com/amolgulati/LeagueLegacy/platforms/yahoo"
	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

const sessionCookie = "session_id"

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "league legacy api")
	}
}

func importSleeperHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			LeagueID string `json:"league_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, fmt.Errorf("%w: %v", controller.ErrValidation, err))
			return
		}

		result, err := ctrl.ImportSleeperLeague(r.Context(), body.LeagueID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, result)
	}
}

func importYahooHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := sessionID(r)
		if sid == "" {
			renderError(render, w, &yahoo.AuthError{StatusCode: http.StatusUnauthorized})
			return
		}

		var body struct {
			LeagueKey string `json:"league_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, fmt.Errorf("%w: %v", controller.ErrValidation, err))
			return
		}

		result, err := ctrl.ImportYahooLeague(r.Context(), sid, body.LeagueKey)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, result)
	}
}

func importAllYahooHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := sessionID(r)
		if sid == "" {
			renderError(render, w, &yahoo.AuthError{StatusCode: http.StatusUnauthorized})
			return
		}

		// The body is optional: an empty one imports the default game keys.
		var body struct {
			GameKeys []string `json:"game_keys"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			renderError(render, w, fmt.Errorf("%w: %v", controller.ErrValidation, err))
			return
		}

		results, err := ctrl.ImportAllYahooLeagues(r.Context(), sid, body.GameKeys)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, results)
	}
}

func oauthLoginHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := ctrl.OAuthStart()
		if err != nil {
			renderError(render, w, err)
			return
		}
		http.Redirect(w, r, url, http.StatusSeeOther)
	}
}

func oauthCallbackHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		state := params.Get("state")
		code := params.Get("code")

		sid, err := ctrl.OAuthExchange(r.Context(), state, code)
		if err != nil {
			renderError(render, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		render.JSON(w, http.StatusOK, map[string]bool{"connected": true})
	}
}

func oauthStatusHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connected := false
		if sid := sessionID(r); sid != "" {
			var err error
			connected, err = ctrl.OAuthStatus(r.Context(), sid)
			if err != nil {
				renderError(render, w, err)
				return
			}
		}
		render.JSON(w, http.StatusOK, map[string]bool{"connected": connected})
	}
}

func oauthLogoutHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sid := sessionID(r); sid != "" {
			if err := ctrl.OAuthLogout(r.Context(), sid); err != nil {
				renderError(render, w, err)
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:   sessionCookie,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		render.JSON(w, http.StatusOK, map[string]bool{"connected": false})
	}
}

func listLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func deleteLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "leagueID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		if err := ctrl.DeleteLeague(r.Context(), id); err != nil {
			renderError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func leagueSeasonsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "leagueID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		seasons, err := ctrl.GetLeagueSeasons(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, seasons)
	}
}

func leagueRecordsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "leagueID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		records, err := ctrl.GetLeagueRecords(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, records)
	}
}

func seasonDetailHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "seasonID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		detail, err := ctrl.GetSeasonDetail(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, detail)
	}
}

func listOwnersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owners, err := ctrl.ListOwners(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, owners)
	}
}

func getOwnerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "ownerID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		owner, err := ctrl.GetOwner(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, owner)
	}
}

func updateOwnerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "ownerID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, fmt.Errorf("%w: %v", controller.ErrValidation, err))
			return
		}

		owner, err := ctrl.UpdateOwnerName(r.Context(), id, body.Name)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, owner)
	}
}

func mergeOwnersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "ownerID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			SecondaryID int32 `json:"secondary_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, fmt.Errorf("%w: %v", controller.ErrValidation, err))
			return
		}

		owner, err := ctrl.MergeOwners(r.Context(), id, body.SecondaryID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, owner)
	}
}

func mapOwnerPlatformHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "ownerID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			Platform   string `json:"platform"`
			ExternalID string `json:"external_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			renderError(render, w, fmt.Errorf("%w: %v", controller.ErrValidation, err))
			return
		}

		owner, err := ctrl.MapOwnerPlatform(r.Context(), id, body.Platform, body.ExternalID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, owner)
	}
}

func unlinkOwnerPlatformHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "ownerID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		owner, err := ctrl.UnlinkOwnerPlatform(r.Context(), id, chi.URLParam(r, "platform"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, owner)
	}
}

func ownerHistoryHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "ownerID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		history, err := ctrl.GetOwnerHistory(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, history)
	}
}

func ownerTradesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "ownerID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		trades, err := ctrl.GetOwnerTrades(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, trades)
	}
}

func headToHeadHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, errA := strconv.Atoi(r.URL.Query().Get("owner_a"))
		b, errB := strconv.Atoi(r.URL.Query().Get("owner_b"))
		if errA != nil || errB != nil {
			renderError(render, w,
				fmt.Errorf("%w: owner_a and owner_b must be numeric owner ids", controller.ErrValidation))
			return
		}

		h2h, err := ctrl.GetHeadToHead(r.Context(), int32(a), int32(b))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, h2h)
	}
}

func hallOfFameHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hof, err := ctrl.GetHallOfFame(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, hof)
	}
}

func sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func urlID(r *http.Request, param string) (int32, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		return 0, fmt.Errorf("%w: error parsing %s: %v", controller.ErrValidation, param, err)
	}
	return int32(id), nil
}

// renderError maps controller and storage errors onto http statuses.
func renderError(render *render.Render, w http.ResponseWriter, err error) {
	body := map[string]string{"error": err.Error()}

	var mapped *db.OwnerMappedError
	var authErr *yahoo.AuthError
	var apiErr *yahoo.APIError
	switch {
	case errors.Is(err, controller.ErrValidation), errors.As(err, &apiErr):
		render.JSON(w, http.StatusBadRequest, body)
	case errors.As(err, &mapped):
		render.JSON(w, http.StatusConflict, body)
	case errors.As(err, &authErr), errors.Is(err, db.ErrTokenNotFound):
		render.JSON(w, http.StatusUnauthorized, body)
	case errors.Is(err, db.ErrOwnerNotFound),
		errors.Is(err, db.ErrLeagueNotFound),
		errors.Is(err, db.ErrSeasonNotFound),
		errors.Is(err, db.ErrTeamNotFound),
		errors.Is(err, sleeper.ErrNotFound):
		render.JSON(w, http.StatusNotFound, body)
	default:
		log.Printf("internal error: %v", err)
		render.JSON(w, http.StatusInternalServerError, body)
	}
}
