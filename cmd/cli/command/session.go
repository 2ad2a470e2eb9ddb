package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mangareader/cmd/cli/authentication"
	"mangareader/internal/apiclient"
)

// now is replaced in tests.
var now = time.Now

func saveSession(s *apiclient.Session, refreshToken string) error {
	if refreshToken == "" {
		refreshToken = s.RefreshToken
	}
	return authentication.StoreTokens(&authentication.StoredCredentials{
		AccessToken:  s.AccessToken,
		RefreshToken: refreshToken,
		Username:     s.Username,
		ExpiresAt:    now().Add(time.Duration(s.ExpiresIn) * time.Second).Unix(),
	})
}

// accessToken returns a usable access token, refreshing it first when the
// stored one has expired.
func accessToken(ctx context.Context, client *apiclient.Client) (string, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return "", err
	}
	if !creds.Expired(now()) {
		return creds.AccessToken, nil
	}
	if creds.RefreshToken == "" {
		return "", authentication.ErrNotLoggedIn
	}

	refreshed, err := client.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			_ = authentication.DeleteTokens()
			return "", fmt.Errorf("session expired: %w", authentication.ErrNotLoggedIn)
		}
		return "", fmt.Errorf("refresh session: %w", err)
	}

	err = saveSession(&apiclient.Session{
		AccessToken: refreshed.AccessToken,
		Username:    creds.Username,
		ExpiresIn:   refreshed.ExpiresIn,
	}, creds.RefreshToken)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}
