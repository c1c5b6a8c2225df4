// Package ghclient builds the GitHub API client shared by the adapters.
package ghclient

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v68/github"
)

// Auth carries the credentials for outbound API calls. The token is threaded
// into the client explicitly; it is never installed as process-wide state.
// An empty Auth yields an unauthenticated client with the lower quota.
type Auth struct {
	// Token is a personal access token. Ignored when App credentials are set.
	Token string

	// GitHub App credentials. All three must be set to take effect.
	AppID          int64
	InstallationID int64
	PrivateKeyPath string

	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
	// Empty means api.github.com.
	BaseURL string
}

func (a Auth) appConfigured() bool {
	return a.AppID != 0 && a.InstallationID != 0 && a.PrivateKeyPath != ""
}

// New creates a GitHub client from the given credentials.
func New(auth Auth) (*github.Client, error) {
	var client *github.Client

	if auth.appConfigured() {
		transport, err := ghinstallation.NewKeyFromFile(
			http.DefaultTransport,
			auth.AppID,
			auth.InstallationID,
			auth.PrivateKeyPath,
		)
		if err != nil {
			return nil, fmt.Errorf("loading app private key: %w", err)
		}
		client = github.NewClient(&http.Client{Transport: transport})
	} else {
		client = github.NewClient(nil)
		if auth.Token != "" {
			client = client.WithAuthToken(auth.Token)
		}
	}

	if auth.BaseURL != "" {
		base := auth.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing api base url: %w", err)
		}
		client.BaseURL = u
	}

	return client, nil
}
