package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// OAuthConfig carries client credentials for the supported providers.
type OAuthConfig struct {
	BaseURL              string
	GitHubClientID       string
	GitHubClientSecret   string
	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
}

// OAuthManager runs the authorization-code flow and maps each provider's
// profile payload into the shared ProviderProfile shape. All provider-specific
// field mapping lives here.
type OAuthManager struct {
	configs map[Provider]*oauth2.Config
	// httpClient is swappable for tests.
	httpClient *http.Client
}

// NewOAuthManager builds provider configurations. Providers with empty client
// credentials are still registered; their consent URL simply will not work,
// which is fine for local setups that only use credential login.
func NewOAuthManager(cfg OAuthConfig) *OAuthManager {
	redirect := func(p Provider) string {
		return fmt.Sprintf("%s/api/auth/%s/callback", cfg.BaseURL, p)
	}
	return &OAuthManager{
		configs: map[Provider]*oauth2.Config{
			ProviderGitHub: {
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				Endpoint:     github.Endpoint,
				RedirectURL:  redirect(ProviderGitHub),
				Scopes:       []string{"read:user", "user:email"},
			},
			ProviderGoogle: {
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				RedirectURL:  redirect(ProviderGoogle),
				Scopes:       []string{"openid", "email", "profile"},
			},
			ProviderFacebook: {
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				RedirectURL:  redirect(ProviderFacebook),
				Scopes:       []string{"email", "public_profile"},
			},
		},
		httpClient: http.DefaultClient,
	}
}

// Supported reports whether the provider name is one we can run a flow for.
func (m *OAuthManager) Supported(p Provider) bool {
	_, ok := m.configs[p]
	return ok
}

// ConsentURL returns the provider's authorization URL for the given state.
func (m *OAuthManager) ConsentURL(p Provider, state string) (string, error) {
	cfg, ok := m.configs[p]
	if !ok {
		return "", fmt.Errorf("unsupported provider %q", p)
	}
	return cfg.AuthCodeURL(state), nil
}

// Exchange trades the callback code for a token and fetches the provider
// profile, normalized into ProviderProfile.
func (m *OAuthManager) Exchange(ctx context.Context, p Provider, code string) (*ProviderProfile, error) {
	cfg, ok := m.configs[p]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q", p)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code with %s: %w", p, err)
	}

	client := cfg.Client(ctx, token)
	switch p {
	case ProviderGitHub:
		return fetchGitHubProfile(ctx, client)
	case ProviderGoogle:
		return fetchGoogleProfile(ctx, client)
	case ProviderFacebook:
		return fetchFacebookProfile(ctx, client)
	default:
		return nil, fmt.Errorf("unsupported provider %q", p)
	}
}

func fetchGitHubProfile(ctx context.Context, client *http.Client) (*ProviderProfile, error) {
	var payload struct {
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := getJSON(ctx, client, "https://api.github.com/user", &payload); err != nil {
		return nil, err
	}

	// The public profile may hide the email; fall back to the primary
	// address from the emails endpoint.
	if payload.Email == "" {
		var emails []struct {
			Email   string `json:"email"`
			Primary bool   `json:"primary"`
		}
		if err := getJSON(ctx, client, "https://api.github.com/user/emails", &emails); err == nil {
			for _, e := range emails {
				if e.Primary {
					payload.Email = e.Email
					break
				}
			}
		}
	}
	if payload.Email == "" {
		return nil, fmt.Errorf("github profile has no email")
	}

	name := payload.Name
	if name == "" {
		name = payload.Login
	}
	return &ProviderProfile{
		Provider:  ProviderGitHub,
		Email:     payload.Email,
		Name:      name,
		AvatarURL: payload.AvatarURL,
	}, nil
}

func fetchGoogleProfile(ctx context.Context, client *http.Client) (*ProviderProfile, error) {
	var payload struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &payload); err != nil {
		return nil, err
	}
	if payload.Email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}
	return &ProviderProfile{
		Provider:  ProviderGoogle,
		Email:     payload.Email,
		Name:      payload.Name,
		AvatarURL: payload.Picture,
	}, nil
}

func fetchFacebookProfile(ctx context.Context, client *http.Client) (*ProviderProfile, error) {
	var payload struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := getJSON(ctx, client, "https://graph.facebook.com/me?fields=id,name,email,picture", &payload); err != nil {
		return nil, err
	}
	if payload.Email == "" {
		return nil, fmt.Errorf("facebook profile has no email")
	}
	return &ProviderProfile{
		Provider:  ProviderFacebook,
		Email:     payload.Email,
		Name:      payload.Name,
		AvatarURL: payload.Picture.Data.URL,
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fetch %s: status %d: %s", url, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
