package businesscentral

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/erp/bcadapter/internal/domain/shared"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

const (
	// refreshSkew renews a credential this long before it actually expires
	refreshSkew = 60 * time.Second
	// fallbackLifetime is assumed when neither the response nor the token carries an expiry
	fallbackLifetime = time.Hour
)

// Credential is an issued access token. It is never mutated; refresh replaces it.
type Credential struct {
	AccessToken string
	TokenType   string
	IssuedAt    time.Time
	ExpiresIn   time.Duration
}

// ExpiresAt returns the instant the credential stops being valid
func (c Credential) ExpiresAt() time.Time {
	return c.IssuedAt.Add(c.ExpiresIn)
}

// Stale reports whether the credential is within the refresh window at now
func (c Credential) Stale(now time.Time) bool {
	if c.AccessToken == "" {
		return true
	}
	return !now.Before(c.ExpiresAt().Add(-refreshSkew))
}

// AuthorizationHeader renders the value of the Authorization header
func (c Credential) AuthorizationHeader() string {
	tokenType := c.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + c.AccessToken
}

// TokenProvider hands out the credential attached to every remote request
type TokenProvider interface {
	Credential(ctx context.Context) (Credential, error)
}

// NewTokenProvider builds the provider selected by cfg.AuthType
func NewTokenProvider(cfg *Config, httpClient *http.Client, logger *zap.Logger) (TokenProvider, error) {
	switch cfg.AuthType {
	case AuthTypeBasic:
		return NewBasicTokenProvider(cfg.Username, cfg.Password), nil
	case AuthTypeOAuth:
		return NewOAuthTokenProvider(cfg, httpClient, logger), nil
	default:
		return nil, ErrConfigInvalidAuthType
	}
}

// ----- Basic -----

// BasicTokenProvider returns a constant Basic credential without network traffic
type BasicTokenProvider struct {
	credential Credential
}

// NewBasicTokenProvider creates a Basic provider for username and password
func NewBasicTokenProvider(username, password string) *BasicTokenProvider {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return &BasicTokenProvider{
		credential: Credential{AccessToken: encoded, TokenType: "Basic"},
	}
}

// Credential returns the constant Basic credential
func (p *BasicTokenProvider) Credential(context.Context) (Credential, error) {
	return p.credential, nil
}

// ----- OAuth2 client credentials -----

// OAuthTokenProvider caches a client credentials token and refreshes it
// through a single in-flight exchange shared by all concurrent callers.
type OAuthTokenProvider struct {
	oauth      clientcredentials.Config
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time

	mu     sync.RWMutex
	cached Credential

	flight singleflight.Group
}

// NewOAuthTokenProvider creates a provider for the Microsoft identity platform
func NewOAuthTokenProvider(cfg *Config, httpClient *http.Client, logger *zap.Logger) *OAuthTokenProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OAuthTokenProvider{
		oauth: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       []string{cfg.Scope},
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// Credential returns the cached token, exchanging a new one when it is
// absent or about to expire.
func (p *OAuthTokenProvider) Credential(ctx context.Context) (Credential, error) {
	if c, ok := p.fresh(); ok {
		return c, nil
	}

	ch := p.flight.DoChan("token", func() (any, error) {
		if c, ok := p.fresh(); ok {
			return c, nil
		}
		c, err := p.exchange(context.WithoutCancel(ctx))
		if err != nil {
			return Credential{}, err
		}
		p.mu.Lock()
		p.cached = c
		p.mu.Unlock()
		return c, nil
	})

	select {
	case <-ctx.Done():
		return Credential{}, fmt.Errorf("%w: waiting for token: %v", shared.ErrRemoteUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return Credential{}, res.Err
		}
		return res.Val.(Credential), nil
	}
}

// Invalidate drops the cached credential so the next call exchanges a new one
func (p *OAuthTokenProvider) Invalidate() {
	p.mu.Lock()
	p.cached = Credential{}
	p.mu.Unlock()
}

func (p *OAuthTokenProvider) fresh() (Credential, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cached.Stale(p.now()) {
		return Credential{}, false
	}
	return p.cached, true
}

func (p *OAuthTokenProvider) exchange(ctx context.Context) (Credential, error) {
	issuedAt := p.now()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := p.oauth.Token(ctx)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: token exchange: %v", shared.ErrRemoteAuth, err)
	}

	c := Credential{
		AccessToken: tok.AccessToken,
		TokenType:   tok.Type(),
		IssuedAt:    issuedAt,
		ExpiresIn:   lifetime(tok, issuedAt),
	}
	p.logger.Debug("Business Central token issued",
		zap.Time("expires_at", c.ExpiresAt()),
	)
	return c, nil
}

// lifetime prefers expires_in, then the token's own expiry, then the exp claim.
func lifetime(tok *oauth2.Token, issuedAt time.Time) time.Duration {
	if tok.ExpiresIn > 0 {
		return time.Duration(tok.ExpiresIn) * time.Second
	}
	if !tok.Expiry.IsZero() {
		return tok.Expiry.Sub(issuedAt)
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Sub(issuedAt)
	}
	return fallbackLifetime
}
