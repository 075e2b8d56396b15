package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/markbates/goth/gothic"
	"github.com/stretchr/testify/mock"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	portmocks "github.com/fr0stylo/shopreviews/internal/app/ports/mocks"
	appservices "github.com/fr0stylo/shopreviews/internal/app/services"
)

func initAuthStoreForTests() {
	store := sessions.NewCookieStore([]byte("test-session-secret-32-bytes-long"))
	store.Options = &sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true, SameSite: http.SameSiteLaxMode}
	gothic.Store = store
}

type testApp struct {
	e       *echo.Echo
	store   *portmocks.MockReviewStore
	fetcher *portmocks.MockProductFetcher
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	initAuthStoreForTests()

	store := portmocks.NewMockReviewStore(t)
	fetcher := portmocks.NewMockProductFetcher(t)
	ingest := appservices.NewReviewIngestService(store)
	lookup := appservices.NewProductLookupService(fetcher)

	e := echo.New()
	NewReviewRoutes(ingest).RegisterRoutes(e)
	NewProductRoutes(lookup, ingest).RegisterRoutes(e)
	NewAuthRoutes(AuthConfig{EnableDevLogin: true}).RegisterRoutes(e)
	HealthRoutes{}.RegisterRoutes(e)
	return testApp{e: e, store: store, fetcher: fetcher}
}

func (a testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// loginCookies runs the dev login and returns the session cookies.
func loginCookies(t *testing.T, app testApp, shop, token string) []*http.Cookie {
	t.Helper()
	rec := app.do(formRequest(http.MethodPost, "/auth/dev/login", url.Values{"shop": {shop}, "access_token": {token}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("dev login: unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("dev login did not set a session cookie")
	}
	return cookies
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestSubmitReviewCreatesReview(t *testing.T) {
	app := newTestApp(t)
	createdAt := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	app.store.EXPECT().Append(mock.Anything, domain.Review{ProductID: "123", Rating: 4, Comment: "solid"}).
		Return(domain.Review{ID: "r-1", ProductID: "123", Rating: 4, Comment: "solid", CreatedAt: createdAt}, nil)

	rec := app.do(formRequest(http.MethodPost, "/api/reviews", url.Values{
		"productId": {"123"},
		"rating":    {"4"},
		"comment":   {"  solid  "},
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var body struct {
		Message string        `json:"message"`
		Review  domain.Review `json:"review"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Review saved successfully" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
	if body.Review.ID != "r-1" || !body.Review.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected review: %+v", body.Review)
	}
}

func TestSubmitReviewAcceptsJSONBody(t *testing.T) {
	app := newTestApp(t)
	app.store.EXPECT().Append(mock.Anything, domain.Review{ProductID: "9", Rating: 5, Comment: "love it"}).
		Return(domain.Review{ID: "r-2", ProductID: "9", Rating: 5, Comment: "love it"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"productId":"9","rating":5,"comment":"love it"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := app.do(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestSubmitReviewReportsEveryInvalidField(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(formRequest(http.MethodPost, "/api/reviews", url.Values{
		"productId": {""},
		"rating":    {"7"},
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}

	var body errorResponse
	decodeBody(t, rec, &body)
	if body.Error == "" {
		t.Fatal("expected error message")
	}
	var names []string
	for _, field := range body.Fields {
		names = append(names, field.Field)
	}
	if strings.Join(names, ",") != "productId,rating,comment" {
		t.Fatalf("unexpected invalid fields: %v", names)
	}
	app.store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSubmitReviewPersistenceFailure(t *testing.T) {
	app := newTestApp(t)
	app.store.EXPECT().Append(mock.Anything, mock.Anything).Return(domain.Review{}, errors.New("read-only file system"))

	rec := app.do(formRequest(http.MethodPost, "/api/reviews", url.Values{
		"productId": {"1"},
		"rating":    {"3"},
		"comment":   {"ok"},
	}))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
	var body errorResponse
	decodeBody(t, rec, &body)
	if body.Error != "Failed to save review" || len(body.Fields) != 0 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestSubmitProductReviewUsesPathProductID(t *testing.T) {
	app := newTestApp(t)
	app.store.EXPECT().Append(mock.Anything, domain.Review{ProductID: "777", Rating: 2, Comment: "meh"}).
		Return(domain.Review{ID: "r-3", ProductID: "777", Rating: 2, Comment: "meh"}, nil)

	rec := app.do(formRequest(http.MethodPost, "/app/products/777/reviews", url.Values{
		"productId": {"ignored"},
		"rating":    {"2"},
		"comment":   {"meh"},
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestListReviews(t *testing.T) {
	app := newTestApp(t)
	app.store.EXPECT().ListAll(mock.Anything).Return([]domain.Review{{ID: "a"}, {ID: "b"}}, nil)
	app.store.EXPECT().ListByProduct(mock.Anything, "p-1").Return([]domain.Review{}, nil)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/reviews", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var all reviewListResponse
	decodeBody(t, rec, &all)
	if len(all.Reviews) != 2 || all.Reviews[0].ID != "a" {
		t.Fatalf("unexpected reviews: %+v", all.Reviews)
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/api/products/p-1/reviews", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"reviews":[]}` {
		t.Fatalf("expected empty list, got %s", rec.Body.String())
	}
}

func TestGetProductWithoutSessionIsUnauthorized(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/app/products/123", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
	app.fetcher.AssertNotCalled(t, "FetchProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProductUsesSessionCredentials(t *testing.T) {
	app := newTestApp(t)
	cookies := loginCookies(t, app, "demo.myshopify.com", "shpat_123")
	app.fetcher.EXPECT().FetchProduct(mock.Anything, "demo.myshopify.com", "shpat_123", "42").
		Return(domain.Product{ID: "gid://shopify/Product/42", Title: "Mug", Handle: "mug"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/app/products/42", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := app.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if strings.TrimSpace(rec.Body.String()) != `{"product":{"id":"gid://shopify/Product/42","title":"Mug","handle":"mug"}}` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetProductMapsUpstreamErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: domain.ErrProductNotFound, status: http.StatusNotFound},
		{name: "unavailable", err: domain.ErrUpstreamUnavailable, status: http.StatusBadGateway},
		{name: "request failed", err: &domain.UpstreamStatusError{StatusCode: http.StatusForbidden}, status: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			cookies := loginCookies(t, app, "demo.myshopify.com", "token")
			app.fetcher.EXPECT().FetchProduct(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(domain.Product{}, tc.err)

			req := httptest.NewRequest(http.MethodGet, "/app/products/1", nil)
			for _, cookie := range cookies {
				req.AddCookie(cookie)
			}
			rec := app.do(req)
			if rec.Code != tc.status {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.status)
			}
		})
	}
}

func TestLogoutClearsShopSession(t *testing.T) {
	app := newTestApp(t)
	cookies := loginCookies(t, app, "demo.myshopify.com", "token")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := app.do(req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == authSessionName && cookie.MaxAge >= 0 {
			t.Fatalf("expected session cookie to expire, got MaxAge=%d", cookie.MaxAge)
		}
	}
}

func TestDevLoginRequiresShopAndToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(formRequest(http.MethodPost, "/auth/dev/login", url.Values{"shop": {"demo.myshopify.com"}}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestAuthBeginRejectsForeignShopDomain(t *testing.T) {
	initAuthStoreForTests()
	e := echo.New()
	NewAuthRoutes(AuthConfig{APIKey: "key", APISecret: "secret", CallbackURL: "http://localhost/auth/shopify/callback"}).RegisterRoutes(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/shopify?shop=evil.example.com", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestAuthBeginRedirectsToShopifyAndCallbackChecksState(t *testing.T) {
	initAuthStoreForTests()
	e := echo.New()
	NewAuthRoutes(AuthConfig{
		APIKey:      "key",
		APISecret:   "secret",
		CallbackURL: "http://localhost/auth/shopify/callback",
		Scopes:      []string{"read_products"},
	}).RegisterRoutes(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/shopify?shop=demo.myshopify.com", nil))
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if location.Host != "demo.myshopify.com" {
		t.Fatalf("expected redirect to the shop, got %s", location)
	}
	state := location.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state in authorize url: %s", location)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/shopify/callback?shop=demo.myshopify.com&code=abc&state=wrong", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	callback := httptest.NewRecorder()
	e.ServeHTTP(callback, req)
	if callback.Code != http.StatusUnauthorized {
		t.Fatalf("expected state mismatch to be rejected, got %d", callback.Code)
	}
}

func TestAuthBeginWithoutCredentialsIsNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/auth/shopify?shop=demo.myshopify.com", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
}
