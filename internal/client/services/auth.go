// Package services holds the two long-lived objects at the core of the site:
// the credential manager (AuthService) and the team collection fetcher
// (TeamService). Both are built once at startup and shared by pointer.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/clinicsite/internal/client/client"
	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/client/repositories/kv"
	"github.com/dmitrijs2005/clinicsite/internal/common"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

// AuthService obtains and hands out CMS bearer credentials.
//
// Contract:
//   - Login: authenticate (nil credentials mean the configured fallback
//     identity), keep the credential in memory and persist a snapshot to
//     every storage tier. Any failure clears all credential state.
//   - AccessToken / RefreshToken: memory first, then the storage tiers in
//     priority order. "" when nothing usable is cached.
//   - IsAuthenticated: the only place expiry is checked; an expired
//     credential is logged out.
//   - Logout: clear memory and every tier. Idempotent.
//   - AuthHeader: bearer header, logging in with the fallback identity when
//     no token resolves. AuthHeaderSync never touches the network.
//   - Claims: unverified JWT claims of the current access token.
type AuthService interface {
	Login(ctx context.Context, creds *models.Credentials) error
	AccessToken(ctx context.Context) string
	RefreshToken(ctx context.Context) string
	IsAuthenticated(ctx context.Context) bool
	Logout(ctx context.Context) error
	AuthHeader(ctx context.Context) (map[string]string, error)
	AuthHeaderSync(ctx context.Context) (map[string]string, error)
	Claims(ctx context.Context) (*TokenClaims, error)
}

// TokenClaims is the operator-facing view of an access token.
type TokenClaims struct {
	Subject   string
	Role      string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type authService struct {
	client   client.Client
	store    *kv.Tiered
	fallback models.Credentials
	log      logging.Logger
	opts     options

	group singleflight.Group

	mu   sync.Mutex
	cred *models.Credential
	// gen changes whenever memory is written or cleared, so a slow storage
	// read never overwrites a newer state.
	gen uint64

	// persistMu orders memory changes together with their tier writes.
	persistMu sync.Mutex
}

// NewAuthService constructs an AuthService over the CMS client and the
// storage tier chain. fallback is the identity used for implicit logins.
func NewAuthService(c client.Client, store *kv.Tiered, fallback models.Credentials, log logging.Logger, opts ...Option) AuthService {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &authService{
		client:   c,
		store:    store,
		fallback: fallback,
		log:      log.With("module", "auth"),
		opts:     o,
	}
}

func (a *authService) Login(ctx context.Context, creds *models.Credentials) error {
	err := a.login(ctx, creds)
	a.opts.metrics.login(err)
	if err != nil {
		a.log.Warn(ctx, "login failed", "error", err)
		if cerr := a.Logout(ctx); cerr != nil {
			a.log.Error(ctx, "clearing credentials after failed login", "error", cerr)
		}
		return err
	}
	a.log.Info(ctx, "logged in")
	return nil
}

func (a *authService) login(ctx context.Context, creds *models.Credentials) error {
	identity := a.fallback
	if creds != nil {
		identity = *creds
	}

	resp, err := a.client.Login(ctx, identity)
	if err != nil {
		return err
	}
	if resp.Data.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", client.ErrAuthenticationFailed)
	}

	cred := models.NewCredential(resp, a.opts.now())
	snapshot, err := json.Marshal(cred.Snapshot())
	if err != nil {
		return err
	}

	a.persistMu.Lock()
	defer a.persistMu.Unlock()

	a.mu.Lock()
	a.cred = &cred
	a.gen++
	a.mu.Unlock()

	if err := a.store.Set(ctx, common.CredentialCacheKey, snapshot); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	return nil
}

// resolve returns the current credential from memory or, failing that, the
// storage tiers, hydrating memory on a storage hit.
func (a *authService) resolve(ctx context.Context) (models.Credential, bool) {
	c, _, ok := a.resolveGen(ctx)
	return c, ok
}

// resolveGen is resolve plus the generation the credential belongs to.
func (a *authService) resolveGen(ctx context.Context) (models.Credential, uint64, bool) {
	a.mu.Lock()
	if a.cred != nil {
		c, gen := *a.cred, a.gen
		a.mu.Unlock()
		return c, gen, true
	}
	gen := a.gen
	a.mu.Unlock()

	raw, tier := a.store.Get(ctx, common.CredentialCacheKey, acceptSnapshot)
	if raw == nil {
		return models.Credential{}, gen, false
	}

	var snap models.TokenSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return models.Credential{}, gen, false
	}
	cred := snap.Credential()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gen != gen {
		if a.cred == nil {
			return models.Credential{}, a.gen, false
		}
		return *a.cred, a.gen, true
	}
	a.cred = &cred
	a.log.Debug(ctx, "credentials restored", "tier", tier)
	return cred, gen, true
}

func acceptSnapshot(raw []byte) error {
	var snap models.TokenSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	if snap.AccessToken == "" {
		return errors.New("snapshot without access token")
	}
	return nil
}

func (a *authService) AccessToken(ctx context.Context) string {
	c, _ := a.resolve(ctx)
	return c.AccessToken
}

func (a *authService) RefreshToken(ctx context.Context) string {
	c, _ := a.resolve(ctx)
	return c.RefreshToken
}

func (a *authService) expired(c models.Credential) bool {
	return !c.ExpiresAt.IsZero() && a.opts.now().After(c.ExpiresAt)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	c, gen, ok := a.resolveGen(ctx)
	if !ok || c.AccessToken == "" {
		return false
	}
	if !a.expired(c) {
		return true
	}

	a.log.Info(ctx, "credentials expired", "expires_at", c.ExpiresAt)
	cleared, err := a.clearIfCurrent(ctx, gen)
	if err != nil {
		a.log.Error(ctx, "clearing expired credentials", "error", err)
	}
	if cleared {
		return false
	}

	// A login replaced the expired credential while it was being checked.
	c, ok = a.resolve(ctx)
	return ok && c.AccessToken != "" && !a.expired(c)
}

// clearIfCurrent clears memory and every tier only while the generation is
// still gen. It reports whether it cleared anything.
func (a *authService) clearIfCurrent(ctx context.Context, gen uint64) (bool, error) {
	a.persistMu.Lock()
	defer a.persistMu.Unlock()

	a.mu.Lock()
	if a.gen != gen {
		a.mu.Unlock()
		return false, nil
	}
	a.cred = nil
	a.gen++
	a.mu.Unlock()

	return true, a.store.Delete(ctx, common.CredentialCacheKey)
}

func (a *authService) Logout(ctx context.Context) error {
	a.persistMu.Lock()
	defer a.persistMu.Unlock()

	a.mu.Lock()
	a.cred = nil
	a.gen++
	a.mu.Unlock()

	return a.store.Delete(ctx, common.CredentialCacheKey)
}

func bearer(token string) map[string]string {
	return map[string]string{common.AuthorizationHeaderName: "Bearer " + token}
}

func (a *authService) AuthHeader(ctx context.Context) (map[string]string, error) {
	if tok := a.AccessToken(ctx); tok != "" {
		return bearer(tok), nil
	}

	_, err := sharedCall(ctx, &a.group, "login", func(ctx context.Context) (struct{}, error) {
		if a.AccessToken(ctx) != "" {
			return struct{}{}, nil
		}
		return struct{}{}, a.Login(ctx, nil)
	})
	if err != nil {
		return nil, err
	}

	tok := a.AccessToken(ctx)
	if tok == "" {
		return nil, client.ErrAuthenticationFailed
	}
	return bearer(tok), nil
}

func (a *authService) AuthHeaderSync(ctx context.Context) (map[string]string, error) {
	tok := a.AccessToken(ctx)
	if tok == "" {
		return nil, client.ErrNotAuthenticated
	}
	return bearer(tok), nil
}

func (a *authService) Claims(ctx context.Context) (*TokenClaims, error) {
	tok := a.AccessToken(ctx)
	if tok == "" {
		return nil, client.ErrNotAuthenticated
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	out := &TokenClaims{}
	out.Subject, _ = claims.GetSubject()
	if out.Subject == "" {
		out.Subject, _ = claims["id"].(string)
	}
	out.Role, _ = claims["role"].(string)
	out.Issuer, _ = claims.GetIssuer()
	if iat, _ := claims.GetIssuedAt(); iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, _ := claims.GetExpirationTime(); exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
