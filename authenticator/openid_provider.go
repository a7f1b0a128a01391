package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OpenIDProvider verifies ID tokens from any OpenID Connect issuer.
type OpenIDProvider struct {
	verifier *oidc.IDTokenVerifier
}

// OpenIDConfig holds OpenID Connect configuration
type OpenIDConfig struct {
	Issuer   string
	ClientID string
}

// NewOpenIDProvider creates a verifier for the given issuer
func NewOpenIDProvider(cfg OpenIDConfig) (Verifier, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	provider, err := oidc.NewProvider(context.Background(), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover issuer: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	return &OpenIDProvider{verifier: verifier}, nil
}

// Verify checks the raw ID token and extracts the subject identity
func (p *OpenIDProvider) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	idToken, err := p.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: failed to parse claims: %v", ErrUnauthorized, err)
	}

	return &Identity{
		SubjectID: idToken.Subject,
		Email:     claims.Email,
	}, nil
}
