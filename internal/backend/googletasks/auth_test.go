package googletasks_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"

	"tasktracker/internal/backend/googletasks"
	"tasktracker/internal/config"
)

const oauthClient = `{"installed":{"client_id":"id","client_secret":"secret","redirect_uris":["http://localhost"],"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token"}}`

func TestOAuthConfig(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	if _, err := googletasks.OAuthConfig(cfg); err == nil {
		t.Fatal("expected an error without oauth_client.json")
	}

	if err := os.WriteFile(cfg.OAuthClientPath(), []byte(oauthClient), 0600); err != nil {
		t.Fatal(err)
	}
	oc, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		t.Fatalf("OAuthConfig: %v", err)
	}
	if oc.ClientID != "id" || len(oc.Scopes) != 1 || oc.Scopes[0] != googletasks.Scope {
		t.Errorf("unexpected config: %+v", oc)
	}
}

func TestSaveAndLoadToken(t *testing.T) {
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "nested")}

	want := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}
	if err := googletasks.SaveToken(cfg, want); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	info, err := os.Stat(cfg.TokenPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token.json mode = %o, want 600", perm)
	}

	got, err := googletasks.LoadToken(cfg)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if got.AccessToken != "a" || got.RefreshToken != "r" {
		t.Errorf("got %+v", got)
	}
}

func TestCheckToken_NoRefreshToken(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	if err := os.WriteFile(cfg.OAuthClientPath(), []byte(oauthClient), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte(`{"access_token":"a","token_type":"Bearer"}`), 0600); err != nil {
		t.Fatal(err)
	}

	err := googletasks.CheckToken(context.Background(), cfg)
	if !errors.Is(err, googletasks.ErrNoRefreshToken) {
		t.Errorf("CheckToken = %v, want ErrNoRefreshToken", err)
	}
}

func TestLoadToken_Corrupt(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := googletasks.LoadToken(cfg); err == nil {
		t.Error("expected an error for a corrupt token.json")
	}
}

func TestRemoveToken(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	removed, err := googletasks.RemoveToken(cfg)
	if err != nil || removed {
		t.Errorf("without a token: removed=%v err=%v", removed, err)
	}

	if err := os.WriteFile(cfg.OAuthClientPath(), []byte(oauthClient), 0600); err != nil {
		t.Fatal(err)
	}
	if err := googletasks.SaveToken(cfg, &oauth2.Token{RefreshToken: "r"}); err != nil {
		t.Fatal(err)
	}

	removed, err = googletasks.RemoveToken(cfg)
	if err != nil || !removed {
		t.Errorf("with a token: removed=%v err=%v", removed, err)
	}
	if cfg.HasToken() {
		t.Error("token.json still present")
	}
	if !cfg.HasOAuthClient() {
		t.Error("oauth_client.json must be kept")
	}
}
