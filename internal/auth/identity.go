package auth

import "strings"

// Provider identifies where an identity assertion came from.
type Provider string

const (
	ProviderLocal    Provider = "local"
	ProviderGitHub   Provider = "github"
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
)

// Identity is the canonical shape every login path produces, regardless of
// provider.
type Identity struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Country  string `json:"country,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// ProviderProfile is the subset of an external provider's profile payload the
// normalizer consumes. Each provider's field mapping is isolated in the oauth
// package; by the time a profile reaches here it is already in this shape.
type ProviderProfile struct {
	Provider  Provider
	Email     string
	Name      string
	AvatarURL string
}

// ResolveName picks the display name: provider-asserted name, then the stored
// user name, then the local part of the email.
func ResolveName(providerName, storedName, email string) string {
	if providerName != "" {
		return providerName
	}
	if storedName != "" {
		return storedName
	}
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// ResolveImage picks the avatar: application-stored image first, provider
// avatar second, none last.
func ResolveImage(storedImage, providerAvatar string) string {
	if storedImage != "" {
		return storedImage
	}
	return providerAvatar
}
