package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/amolgulati/LeagueLegacy/db"
	"github.com/amolgulati/LeagueLegacy/platforms/yahoo"
)

// tokenExpiryMargin refreshes tokens slightly before yahoo would
// reject them, so a long import doesn't die mid-season.
const tokenExpiryMargin = 5 * time.Minute

const stateTTL = 5 * time.Minute

func (c *controller) OAuthStart() (string, error) {
	if c.yahooConfig == nil {
		return "", errors.New("yahoo oauth client is not configured")
	}

	state := randomToken(15)

	c.mu.Lock()
	c.oauthStates[state] = c.clock.Now().Add(stateTTL)
	c.mu.Unlock()

	return c.yahooConfig.AuthCodeURL(state), nil
}

func (c *controller) OAuthExchange(ctx context.Context, state, code string) (string, error) {
	if c.yahooConfig == nil {
		return "", errors.New("yahoo oauth client is not configured")
	}

	c.mu.Lock()
	expiry, ok := c.oauthStates[state]
	delete(c.oauthStates, state)
	c.mu.Unlock()

	if !ok || c.clock.Now().After(expiry) {
		return "", fmt.Errorf("%w: state parameter is not valid", ErrValidation)
	}

	token, err := c.yahooConfig.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("error exchanging code: %w", err)
	}

	sessionID := randomToken(24)
	if err := c.db.SaveToken(ctx, sessionID, token); err != nil {
		return "", fmt.Errorf("error saving token: %w", err)
	}
	return sessionID, nil
}

func (c *controller) OAuthStatus(ctx context.Context, sessionID string) (bool, error) {
	_, err := c.db.GetToken(ctx, sessionID)
	if errors.Is(err, db.ErrTokenNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *controller) OAuthLogout(ctx context.Context, sessionID string) error {
	return c.db.DeleteToken(ctx, sessionID)
}

// getToken loads the session's token, refreshing and re-saving it when
// it is at or near expiry.
//
// We must manually refresh the token in order to be able to save it
// back. yahooConfig.Client(ctx, t) would refresh in the background but
// never give us access to the new refresh token.
func (c *controller) getToken(ctx context.Context, sessionID string) (*oauth2.Token, error) {
	t, err := c.db.GetToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if t.Expiry.Before(c.clock.Now().Add(tokenExpiryMargin)) {
		return c.refreshToken(ctx, sessionID, t)
	}
	return t, nil
}

func (c *controller) refreshToken(ctx context.Context, sessionID string, t *oauth2.Token) (*oauth2.Token, error) {
	log.Printf("refreshing yahoo token for session %s", sessionID)

	// Clearing the access token forces TokenSource to hit the refresh
	// endpoint instead of handing the old token back.
	stale := &oauth2.Token{RefreshToken: t.RefreshToken}
	fresh, err := c.yahooConfig.TokenSource(ctx, stale).Token()
	if err != nil {
		return nil, fmt.Errorf("error refreshing token: %w", err)
	}

	if err := c.db.SaveToken(ctx, sessionID, fresh); err != nil {
		return nil, fmt.Errorf("error saving refreshed token: %w", err)
	}
	return fresh, nil
}

// withYahooClient runs fn with an authenticated http client. If yahoo
// rejects the credentials mid-call the token is refreshed and fn is
// retried exactly once.
func (c *controller) withYahooClient(ctx context.Context, sessionID string, fn func(httpClient *http.Client) error) error {
	t, err := c.getToken(ctx, sessionID)
	if err != nil {
		return err
	}

	err = fn(c.yahooConfig.Client(ctx, t))

	var authErr *yahoo.AuthError
	if errors.As(err, &authErr) {
		t, refreshErr := c.refreshToken(ctx, sessionID, t)
		if refreshErr != nil {
			return refreshErr
		}
		return fn(c.yahooConfig.Client(ctx, t))
	}
	return err
}

func randomToken(n int) string {
	var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
