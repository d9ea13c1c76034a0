package authenticator

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/shelfmark/backend/config"
	"golang.org/x/oauth2"
)

type OAuth2User struct {
	ID       string
	Username string
	Email    string
	Picture  string
}

type IOAuth2Service interface {
	Service() string
	VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error)
}

type OAuth2Service struct {
	*oidc.Provider
	oauth2.Config

	name    string
	idField string
}

func NewOAuth2Service(ctx context.Context, oauth2Cfg config.OAuth2Config) (*OAuth2Service, error) {
	provider, err := oidc.NewProvider(ctx, oauth2Cfg.Issuer)
	if err != nil {
		return nil, err
	}

	return &OAuth2Service{
		Provider: provider,
		Config: oauth2.Config{
			ClientID:     oauth2Cfg.ClientID,
			ClientSecret: oauth2Cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		name:    oauth2Cfg.Name,
		idField: oauth2Cfg.IDField,
	}, nil
}

func (s *OAuth2Service) Service() string {
	return s.name
}

func (s *OAuth2Service) VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error) {
	verifier := s.Verifier(&oidc.Config{ClientID: s.ClientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return OAuth2User{}, err
	}

	claims := map[string]any{}
	if err := idToken.Claims(&claims); err != nil {
		return OAuth2User{}, err
	}

	id, ok := claims[s.idField].(string)
	if !ok || id == "" {
		return OAuth2User{}, fmt.Errorf("id token has no %s field", s.idField)
	}

	username, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	picture, _ := claims["picture"].(string)
	return OAuth2User{
		ID:       fmt.Sprintf("%s_%s", s.name, id),
		Username: username,
		Email:    email,
		Picture:  picture,
	}, nil
}
