package authenticator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
)

const firebaseIssuerPrefix = "https://securetoken.google.com/"

// FirebaseProvider verifies Firebase ID tokens via the securetoken OIDC
// issuer for the configured project.
type FirebaseProvider struct {
	verifier *oidc.IDTokenVerifier
}

// NewFirebaseProviderWithServiceAccount constructs a provider from a
// service account credentials file. Strict mode: any problem loading or
// parsing the file is a startup error, never a silent fallback.
func NewFirebaseProviderWithServiceAccount(path string) (Verifier, error) {
	if path == "" {
		return nil, errors.New("service account path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}

	var creds struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse service account file: %w", err)
	}
	if creds.ProjectID == "" {
		return nil, errors.New("service account file has no project_id")
	}

	return NewFirebaseProvider(creds.ProjectID)
}

// NewFirebaseProvider constructs a provider from a bare project ID, the
// ambient-credentials mode: only public issuer metadata is used.
func NewFirebaseProvider(projectID string) (Verifier, error) {
	if projectID == "" {
		return nil, errors.New("project ID is required")
	}

	provider, err := oidc.NewProvider(context.Background(), firebaseIssuerPrefix+projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to discover firebase issuer: %w", err)
	}

	// Firebase ID tokens carry the project ID as audience.
	verifier := provider.Verifier(&oidc.Config{ClientID: projectID})

	return &FirebaseProvider{verifier: verifier}, nil
}

// Verify checks the raw ID token and extracts the subject identity
func (p *FirebaseProvider) Verify(ctx context.Context, rawToken string) (*Identity, error) {
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
