package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amolgulati/LeagueLegacy/controller"
	"github.com/amolgulati/LeagueLegacy/controller/mockcontroller"
	"github.com/amolgulati/LeagueLegacy/db"
	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/amolgulati/LeagueLegacy/platforms/yahoo"
	"github.com/stretchr/testify/mock"
)

func runRequest(ctrl controller.C, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	getRouter(ctrl, newRender()).ServeHTTP(w, req)
	return w
}

func TestImportSleeperHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	result := &model.LeagueImportResult{
		LeagueID:        17,
		LeagueName:      "Footclan",
		SeasonsImported: 2,
	}
	ctrl.On("ImportSleeperLeague", mock.Anything, "924039165950484480").Return(result, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/sleeper/import",
		strings.NewReader(`{"league_id": "924039165950484480"}`))
	w := runRequest(ctrl, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}

	var got model.LeagueImportResult
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got.LeagueName != "Footclan" {
		t.Errorf("LeagueName - expected: 'Footclan', got: '%s'", got.LeagueName)
	}
	if got.SeasonsImported != 2 {
		t.Errorf("SeasonsImported - expected: 2, got: %d", got.SeasonsImported)
	}
	ctrl.AssertExpectations(t)
}

// The import routes carry their own 5 minute timeout. A multi-season
// import is much slower than a read, so the read timeout must not
// shrink the deadline the import handler sees.
func TestImportSleeperHandler_timeoutBudget(t *testing.T) {
	ctrl := &mockcontroller.C{}

	var deadline time.Time
	var hasDeadline bool
	ctrl.On("ImportSleeperLeague", mock.Anything, "924039165950484480").
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			deadline, hasDeadline = ctx.Deadline()
		}).
		Return(&model.LeagueImportResult{LeagueID: 1}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/sleeper/import",
		strings.NewReader(`{"league_id": "924039165950484480"}`))
	w := runRequest(ctrl, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}
	if !hasDeadline {
		t.Fatal("expected the import context to carry a deadline")
	}
	if budget := time.Until(deadline); budget <= 10*time.Second {
		t.Errorf("import deadline budget too small: %v", budget)
	}
	ctrl.AssertExpectations(t)
}

func TestImportSleeperHandler_badBody(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodPost, "/api/sleeper/import", strings.NewReader("not json"))
	w := runRequest(ctrl, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertNotCalled(t, "ImportSleeperLeague", mock.Anything, mock.Anything)
}

func TestImportYahooHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	result := &model.LeagueImportResult{LeagueID: 3, LeagueName: "Discovery Bay League"}
	ctrl.On("ImportYahooLeague", mock.Anything, "session-abc", "449.l.431").Return(result, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/yahoo/import",
		strings.NewReader(`{"league_key": "449.l.431"}`))
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-abc"})
	w := runRequest(ctrl, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertExpectations(t)
}

func TestImportYahooHandler_noSession(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodPost, "/api/yahoo/import",
		strings.NewReader(`{"league_key": "449.l.431"}`))
	w := runRequest(ctrl, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertNotCalled(t, "ImportYahooLeague", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportAllYahooHandler_emptyBody(t *testing.T) {
	ctrl := &mockcontroller.C{}
	results := []model.LeagueImportResult{{LeagueID: 3, LeagueName: "Discovery Bay League"}}
	ctrl.On("ImportAllYahooLeagues", mock.Anything, "session-abc", []string(nil)).Return(results, nil)

	// No body at all means import the default game keys.
	req := httptest.NewRequest(http.MethodPost, "/api/yahoo/import/all", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-abc"})
	w := runRequest(ctrl, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertExpectations(t)
}

func TestOAuthCallbackHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("OAuthExchange", mock.Anything, "state-1", "code-1").Return("session-xyz", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/yahoo/auth/callback?state=state-1&code=code-1", nil)
	w := runRequest(ctrl, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}

	cookie := findCookie(w.Result().Cookies(), sessionCookie)
	if cookie == nil {
		t.Fatal("expected a session cookie to be set")
	}
	if cookie.Value != "session-xyz" {
		t.Errorf("cookie value - expected: 'session-xyz', got: '%s'", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("expected the session cookie to be http-only")
	}
	ctrl.AssertExpectations(t)
}

func TestOAuthStatusHandler_noCookie(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodGet, "/api/yahoo/auth/status", nil)
	w := runRequest(ctrl, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}

	var body map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if body["connected"] {
		t.Error("expected connected to be false without a session")
	}
	ctrl.AssertNotCalled(t, "OAuthStatus", mock.Anything, mock.Anything)
}

func TestOAuthLogoutHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("OAuthLogout", mock.Anything, "session-abc").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/yahoo/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-abc"})
	w := runRequest(ctrl, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}

	cookie := findCookie(w.Result().Cookies(), sessionCookie)
	if cookie == nil {
		t.Fatal("expected the session cookie to be cleared")
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("expected a negative MaxAge, got: %d", cookie.MaxAge)
	}
	ctrl.AssertExpectations(t)
}

func TestDeleteLeagueHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("DeleteLeague", mock.Anything, int32(7)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/leagues/7", nil)
	w := runRequest(ctrl, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertExpectations(t)
}

func TestDeleteLeagueHandler_badID(t *testing.T) {
	ctrl := &mockcontroller.C{}

	// The route only matches numeric ids.
	req := httptest.NewRequest(http.MethodDelete, "/api/leagues/abc", nil)
	w := runRequest(ctrl, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertNotCalled(t, "DeleteLeague", mock.Anything, mock.Anything)
}

func TestHeadToHeadHandler_missingParams(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodGet, "/api/head-to-head?owner_a=4", nil)
	w := runRequest(ctrl, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertNotCalled(t, "GetHeadToHead", mock.Anything, mock.Anything, mock.Anything)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation",
			err:  controller.ErrValidation,
			want: http.StatusBadRequest,
		},
		{
			name: "owner not found",
			err:  db.ErrOwnerNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "owner already mapped",
			err:  &db.OwnerMappedError{Platform: "sleeper", ExternalID: "123", OwnerName: "Alice"},
			want: http.StatusConflict,
		},
		{
			name: "token not found",
			err:  db.ErrTokenNotFound,
			want: http.StatusUnauthorized,
		},
		{
			name: "yahoo api",
			err:  &yahoo.APIError{StatusCode: http.StatusBadGateway},
			want: http.StatusBadRequest,
		},
		{
			name: "yahoo auth",
			err:  &yahoo.AuthError{StatusCode: http.StatusUnauthorized},
			want: http.StatusUnauthorized,
		},
		{
			name: "internal",
			err:  errors.New("the database is on fire"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			ctrl.On("GetOwner", mock.Anything, int32(5)).Return(nil, tc.err)

			req := httptest.NewRequest(http.MethodGet, "/api/owners/5", nil)
			w := runRequest(ctrl, req)

			if w.Code != tc.want {
				t.Errorf("unexpected status code. expected: %d, got: %d", tc.want, w.Code)
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message in the response body")
			}
			ctrl.AssertExpectations(t)
		})
	}
}

func TestGetOwnerHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	owner := &model.Owner{ID: 5, Name: "Alice", SleeperUserID: "sleeper-5"}
	ctrl.On("GetOwner", mock.Anything, int32(5)).Return(owner, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/owners/5", nil)
	w := runRequest(ctrl, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}

	var got model.Owner
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("Name - expected: 'Alice', got: '%s'", got.Name)
	}
	ctrl.AssertExpectations(t)
}

func TestSeasonDetailHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	detail := &model.SeasonDetail{
		Season:     model.Season{ID: 9, Year: 2024},
		LeagueName: "Footclan",
	}
	ctrl.On("GetSeasonDetail", mock.Anything, int32(9)).Return(detail, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/seasons/9", nil)
	w := runRequest(ctrl, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}

	var got model.SeasonDetail
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got.LeagueName != "Footclan" {
		t.Errorf("LeagueName - expected: 'Footclan', got: '%s'", got.LeagueName)
	}
	if got.Season.Year != 2024 {
		t.Errorf("Year - expected: 2024, got: %d", got.Season.Year)
	}
	ctrl.AssertExpectations(t)
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
