package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"tasktracker/internal/config"
)

// ErrNoRefreshToken is returned for a stored token that cannot be renewed.
var ErrNoRefreshToken = errors.New("token.json has no refresh token")

// tokenCheckTimeout bounds the refresh done by CheckToken.
const tokenCheckTimeout = 10 * time.Second

// OAuthConfig reads the installed-app client from oauth_client.json.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	data, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oc, err := google.ConfigFromJSON(data, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oc, nil
}

// LoadToken reads the stored token.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken stores token in the config directory, readable by the owner only.
func SaveToken(cfg *config.Config, token *oauth2.Token) error {
	if err := cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.TokenPath(), data, 0600)
}

// RemoveToken deletes the stored token and reports whether there was one.
// oauth_client.json is kept so login can run again.
func RemoveToken(cfg *config.Config) (bool, error) {
	err := cfg.RemoveToken()
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove token: %w", err)
	}
	return true, nil
}

// CheckToken verifies that the stored token can still be refreshed into an
// access token. It talks to Google only when the access token has expired.
func CheckToken(ctx context.Context, cfg *config.Config) error {
	token, err := LoadToken(cfg)
	if err != nil {
		return err
	}
	if token.RefreshToken == "" {
		return ErrNoRefreshToken
	}
	oc, err := OAuthConfig(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, tokenCheckTimeout)
	defer cancel()
	_, err = oc.TokenSource(ctx, token).Token()
	return err
}
