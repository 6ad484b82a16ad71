package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/supabase-community/gotrue-go/types"
	supa "github.com/supabase-community/supabase-go"

	"github.com/mizutani/innervoice/internal/domain"
)

// Identity bootstraps the anonymous user session through GoTrue. It resumes
// the session cached on this device when possible and signs in anonymously
// otherwise, so the same identity survives restarts. It implements
// domain.IdentityProvider.
type Identity struct {
	client  *supa.Client
	authURL string
	apiKey  string

	httpClient *http.Client
	cache      domain.SessionCache
	logger     *slog.Logger
}

// NewIdentity creates an Identity backed by the given client and cache.
// projectURL is the Supabase project base URL; apiKey its anon key.
func NewIdentity(client *supa.Client, projectURL, apiKey string, cache domain.SessionCache, logger *slog.Logger) *Identity {
	return &Identity{
		client:  client,
		authURL: strings.TrimSuffix(projectURL, "/") + "/auth/v1",
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:  cache,
		logger: logger,
	}
}

// Bootstrap resolves the acting session: resume first, fresh anonymous
// sign-in only when no session exists.
func (p *Identity) Bootstrap(ctx context.Context) (domain.Session, error) {
	sess, ok, err := p.CurrentSession(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if ok {
		return sess, nil
	}
	return p.CreateAnonymousSession(ctx)
}

// CurrentSession resumes the device-persisted session via the
// refresh-token grant. ok is false when the device has no usable session;
// a stale or revoked token is not an error, the caller just falls back to
// a fresh sign-in.
func (p *Identity) CurrentSession(ctx context.Context) (domain.Session, bool, error) {
	cached, ok, err := p.cache.Load(ctx)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("load cached session: %w", err)
	}
	if !ok || cached.RefreshToken == "" {
		return domain.Session{}, false, nil
	}

	resp, err := p.client.Auth.RefreshToken(cached.RefreshToken)
	if err != nil {
		p.logger.Warn("session refresh failed, will sign in fresh", "error", err)
		return domain.Session{}, false, nil
	}

	sess := domain.Session{
		UserID:       resp.User.ID.String(),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	p.adopt(ctx, sess)
	return sess, true, nil
}

// CreateAnonymousSession signs in anonymously and persists the resulting
// session on this device.
func (p *Identity) CreateAnonymousSession(ctx context.Context) (domain.Session, error) {
	issued, err := p.signInAnonymously(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("anonymous sign-in: %w", err)
	}

	sess := domain.Session{
		UserID:       issued.User.ID,
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
	}
	p.adopt(ctx, sess)
	p.logger.Info("created anonymous session", "user_id", sess.UserID)
	return sess, nil
}

// anonymousSession is the session payload GoTrue returns from /signup.
type anonymousSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID string `json:"id"`
	} `json:"user"`
}

// signInAnonymously requests a fresh anonymous session. GoTrue issues
// these on POST /signup with an empty credential body; gotrue-go has no
// wrapper for that, so call the endpoint directly.
func (p *Identity) signInAnonymously(ctx context.Context) (*anonymousSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.authURL+"/signup", strings.NewReader("{}"))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("auth error (status %d): %s", resp.StatusCode, string(body))
	}

	var issued anonymousSession
	if err := json.Unmarshal(body, &issued); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if issued.User.ID == "" {
		return nil, fmt.Errorf("auth response missing user id")
	}
	return &issued, nil
}

// adopt installs the session on the shared client so data-plane requests
// carry the user's token, and persists it for the next run.
func (p *Identity) adopt(ctx context.Context, sess domain.Session) {
	p.client.UpdateAuthSession(types.Session{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		TokenType:    "bearer",
	})

	if err := p.cache.Save(ctx, sess); err != nil {
		p.logger.Warn("failed to persist session", "error", err)
	}
}
