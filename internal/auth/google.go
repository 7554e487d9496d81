package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	sharedauth "resume-profile/internal/shared/auth"
	"resume-profile/internal/shared/server/middleware"
	"resume-profile/internal/shared/server/respond"
	"resume-profile/internal/shared/telemetry"
	"resume-profile/internal/users"
)

const (
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	defaultAfterSignIn = "/preview"
	sessionMaxAge      = 7 * 24 * time.Hour
)

// GoogleConfig carries the OAuth client settings.
type GoogleConfig struct {
	ClientID      string
	ClientSecret  string
	RedirectURL   string
	UIRedirectURL string
	SecureCookie  bool
}

// GoogleService handles Google OAuth flows and the session cookie.
type GoogleService struct {
	oauthConfig  *oauth2.Config
	uiRedirect   string
	secureCookie bool
	userInfoURL  string
	stateTTL     time.Duration
	stateStore   *stateStore
	users        *users.Service
}

// NewGoogleService builds a GoogleService. usersSvc may be nil, in which case
// accounts are not persisted.
func NewGoogleService(cfg GoogleConfig, usersSvc *users.Service) *GoogleService {
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect:   cfg.UIRedirectURL,
		secureCookie: cfg.SecureCookie,
		userInfoURL:  defaultUserInfoURL,
		stateTTL:     5 * time.Minute,
		stateStore:   newStateStore(),
		users:        usersSvc,
	}
}

// RegisterRoutes attaches the API auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

// RegisterPages attaches the browser-facing sign-in and sign-out routes.
func (s *GoogleService) RegisterPages(r gin.IRoutes) {
	r.GET("/sign-in", s.signIn)
	r.POST("/sign-out", s.signOut)
}

func (s *GoogleService) configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.ClientSecret != "" && s.oauthConfig.RedirectURL != ""
}

// signIn starts the flow and returns the browser to redirect_url afterwards.
func (s *GoogleService) signIn(c *gin.Context) {
	target := localPath(c.Query("redirect_url"))
	if target == "" {
		target = defaultAfterSignIn
	}
	if middleware.UserIDFromContext(c) != "" {
		c.Redirect(http.StatusFound, target)
		return
	}
	s.redirectToProvider(c, target)
}

func (s *GoogleService) start(c *gin.Context) {
	s.redirectToProvider(c, "")
}

func (s *GoogleService) redirectToProvider(c *gin.Context, returnTo string) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}

	state := uuid.NewString()
	s.stateStore.put(state, pendingSignIn{expires: time.Now().Add(s.stateTTL), returnTo: returnTo})

	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

func (s *GoogleService) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}

	pending, ok := s.stateStore.consume(state)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	userInfo, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}
	if userInfo.Sub == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "invalid user profile", nil)
		return
	}

	userID := "google:" + userInfo.Sub
	if s.users != nil {
		err := s.users.UpsertFromAuth(ctx, users.User{
			ID:         userID,
			Email:      userInfo.Email,
			FullName:   userInfo.Name,
			PictureURL: userInfo.Picture,
		})
		if err != nil {
			telemetry.Warn("auth.user_upsert_failed", map[string]any{
				"user_id":    userID,
				"request_id": middleware.RequestIDFromContext(c),
				"error":      err.Error(),
			})
		}
	}

	signed, err := sharedauth.SignJWT(sharedauth.Claims{
		Email:            userInfo.Email,
		Name:             userInfo.Name,
		Picture:          userInfo.Picture,
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to issue token", nil)
		return
	}

	if pending.returnTo == "" && s.uiRedirect != "" {
		redirectURL, err := appendToken(s.uiRedirect, signed)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to redirect", nil)
			return
		}
		c.Redirect(http.StatusFound, redirectURL)
		return
	}

	s.setSessionCookie(c, signed, int(sessionMaxAge.Seconds()))
	target := pending.returnTo
	if target == "" {
		target = defaultAfterSignIn
	}
	c.Redirect(http.StatusFound, target)
}

func (s *GoogleService) signOut(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *GoogleService) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", s.secureCookie, true)
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, err
	}

	// The v2 endpoint reports "id" rather than "sub".
	if info.Sub == "" {
		info.Sub = info.ID
	}
	return info, nil
}

type pendingSignIn struct {
	expires  time.Time
	returnTo string
}

type stateStore struct {
	items map[string]pendingSignIn
	mu    sync.Mutex
}

func newStateStore() *stateStore {
	return &stateStore{items: make(map[string]pendingSignIn)}
}

func (s *stateStore) put(state string, p pendingSignIn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, v := range s.items {
		if now.After(v.expires) {
			delete(s.items, k)
		}
	}
	s.items[state] = p
}

func (s *stateStore) consume(state string) (pendingSignIn, bool) {
	s.mu.Lock()
	p, ok := s.items[state]
	if ok {
		delete(s.items, state)
	}
	s.mu.Unlock()
	if !ok || time.Now().After(p.expires) {
		return pendingSignIn{}, false
	}
	return p, true
}

// localPath accepts only same-site absolute paths.
func localPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return raw
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
