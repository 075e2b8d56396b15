package routes

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/shopify"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	"github.com/fr0stylo/shopreviews/internal/observability"
)

const (
	authSessionName     = "shopreviews-auth"
	oauthSessionName    = "shopreviews-oauth"
	sessionShopKey      = "shop"
	sessionTokenKey     = "accessToken"
	oauthStateKey       = "state"
	oauthProviderKey    = "provider"
	shopSessionContext  = "shopSession"
	oauthStateMaxAgeSec = 600
)

const shopDomainSuffix = ".myshopify.com"

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-]*\.myshopify\.com$`)

// AuthConfig configures the cookie session and the Shopify install flow.
type AuthConfig struct {
	SessionKey     string
	SecureCookies  bool
	APIKey         string
	APISecret      string
	CallbackURL    string
	Scopes         []string
	EnableDevLogin bool
}

// ConfigureAuth initializes the session store shared by the auth routes.
func ConfigureAuth(config AuthConfig) {
	store := sessions.NewCookieStore([]byte(config.SessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = store
}

// AuthRoutes registers authentication endpoints.
type AuthRoutes struct {
	config AuthConfig
}

// NewAuthRoutes constructs auth routes.
func NewAuthRoutes(config AuthConfig) *AuthRoutes {
	return &AuthRoutes{config: config}
}

// RegisterRoutes registers authentication routes on the server.
func (a *AuthRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/logout", a.handleLogout)
	s.GET("/auth/shopify", a.handleAuthBegin)
	s.GET("/auth/shopify/callback", a.handleAuthCallback)
	if a.config.EnableDevLogin {
		s.POST("/auth/dev/login", a.handleDevLogin)
	}
}

// LoadShopSession copies the stored shop credentials into the request.
// Requests without a session pass through with an empty one; services decide
// whether credentials are required.
func LoadShopSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := shopSessionFromCookie(c)
		if session.Shop != "" {
			ctx := observability.WithShop(c.Request().Context(), session.Shop)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		c.Set(shopSessionContext, session)
		return next(c)
	}
}

// GetShopSession returns the credentials loaded by LoadShopSession.
func GetShopSession(c echo.Context) domain.ShopSession {
	session, _ := c.Get(shopSessionContext).(domain.ShopSession)
	return session
}

func (a *AuthRoutes) provider(shop string) *shopify.Provider {
	provider := shopify.New(a.config.APIKey, a.config.APISecret, a.config.CallbackURL, a.config.Scopes...)
	// The provider builds https://{name}.myshopify.com endpoints.
	provider.SetShopName(strings.TrimSuffix(shop, shopDomainSuffix))
	return provider
}

func (a *AuthRoutes) handleAuthBegin(c echo.Context) error {
	if a.config.APIKey == "" || a.config.APISecret == "" {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Shopify OAuth is not configured"})
	}
	shop := strings.ToLower(strings.TrimSpace(c.QueryParam("shop")))
	if !shopDomainPattern.MatchString(shop) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "A valid shop domain is required"})
	}

	state := uuid.NewString()
	provider := a.provider(shop)
	authSession, err := provider.BeginAuth(state)
	if err != nil {
		return err
	}
	authURL, err := authSession.GetAuthURL()
	if err != nil {
		return err
	}

	session, err := gothic.Store.Get(c.Request(), oauthSessionName)
	if err != nil {
		if !isInvalidSecureCookieError(err) {
			return err
		}
		clearSessionCookie(c, oauthSessionName)
	}
	session.Options.MaxAge = oauthStateMaxAgeSec
	session.Values[oauthStateKey] = state
	session.Values[oauthProviderKey] = authSession.Marshal()
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (a *AuthRoutes) handleAuthCallback(c echo.Context) error {
	ctx := c.Request().Context()
	params := c.QueryParams()
	shop := strings.ToLower(strings.TrimSpace(params.Get("shop")))

	oauthSession, err := gothic.Store.Get(c.Request(), oauthSessionName)
	if err != nil {
		clearSessionCookie(c, oauthSessionName)
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "OAuth session expired"})
	}
	expectedState, _ := oauthSession.Values[oauthStateKey].(string)
	marshaled, _ := oauthSession.Values[oauthProviderKey].(string)
	if expectedState == "" || params.Get("state") != expectedState {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "OAuth state mismatch"})
	}
	if !shopDomainPattern.MatchString(shop) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "A valid shop domain is required"})
	}

	provider := a.provider(shop)
	authSession, err := provider.UnmarshalSession(marshaled)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "OAuth session expired"})
	}
	accessToken, err := authSession.Authorize(provider, params)
	if err != nil {
		slog.WarnContext(ctx, "Shopify authorization failed", "shop", shop, "error", err)
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Shopify authorization failed"})
	}

	oauthSession.Options.MaxAge = -1
	if err := oauthSession.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	if err := saveShopSession(c, shop, accessToken); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Shop installed", "shop", shop)
	return c.Redirect(http.StatusFound, "/api/reviews")
}

func (a *AuthRoutes) handleDevLogin(c echo.Context) error {
	if !a.config.EnableDevLogin {
		return c.NoContent(http.StatusNotFound)
	}
	shop := strings.TrimSpace(c.FormValue("shop"))
	accessToken := strings.TrimSpace(c.FormValue("access_token"))
	if shop == "" || accessToken == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "shop and access_token are required"})
	}
	if err := saveShopSession(c, shop, accessToken); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"shop": shop})
}

func (a *AuthRoutes) handleLogout(c echo.Context) error {
	session, err := gothic.Store.Get(c.Request(), authSessionName)
	if err != nil {
		if isInvalidSecureCookieError(err) {
			clearSessionCookie(c, authSessionName)
			clearSessionCookie(c, oauthSessionName)
			return c.NoContent(http.StatusNoContent)
		}
		return err
	}
	delete(session.Values, sessionShopKey)
	delete(session.Values, sessionTokenKey)
	session.Options.MaxAge = -1
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func saveShopSession(c echo.Context, shop, accessToken string) error {
	session, err := gothic.Store.Get(c.Request(), authSessionName)
	if err != nil && !isInvalidSecureCookieError(err) {
		return err
	}
	if session == nil {
		return errors.New("auth session unavailable")
	}
	session.Values[sessionShopKey] = shop
	session.Values[sessionTokenKey] = accessToken
	return session.Save(c.Request(), c.Response())
}

func shopSessionFromCookie(c echo.Context) domain.ShopSession {
	session, err := gothic.Store.Get(c.Request(), authSessionName)
	if err != nil {
		if isInvalidSecureCookieError(err) {
			clearSessionCookie(c, authSessionName)
		}
		return domain.ShopSession{}
	}
	shop, _ := session.Values[sessionShopKey].(string)
	accessToken, _ := session.Values[sessionTokenKey].(string)
	return domain.ShopSession{Shop: shop, AccessToken: accessToken}
}

func isInvalidSecureCookieError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "securecookie") && strings.Contains(msg, "not valid")
}

func clearSessionCookie(c echo.Context, name string) {
	http.SetCookie(c.Response(), &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
