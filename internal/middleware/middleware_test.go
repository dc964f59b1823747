package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cqhei/cqhei-survey/internal/middleware"
	"github.com/gorilla/csrf"
)

// call wraps a simple 200-OK inner handler in the provided middleware and
// returns the recorded response for a GET of target.
func call(t *testing.T, mw func(http.Handler) http.Handler, target string, setup func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)
	return rec
}

func TestAllowedHostsMiddleware(t *testing.T) {
	mw := middleware.AllowedHostsMiddleware([]string{"localhost", "127.0.0.1", ".azurewebsites.net", " Survey.Example.org "})

	tests := []struct {
		host string
		want int
	}{
		{"localhost", http.StatusOK},
		{"localhost:5050", http.StatusOK},
		{"127.0.0.1:8000", http.StatusOK},
		{"survey.example.org", http.StatusOK},
		{"cqhei.azurewebsites.net", http.StatusOK},
		{"azurewebsites.net", http.StatusOK},
		{"evil.com", http.StatusBadRequest},
		{"notazurewebsites.net", http.StatusBadRequest},
		{"example.org", http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := call(t, mw, "/", func(r *http.Request) { r.Host = tt.host })
		if rec.Code != tt.want {
			t.Errorf("host %q: expected %d, got %d", tt.host, tt.want, rec.Code)
		}
	}
}

func TestAllowedHostsMiddleware_Wildcard(t *testing.T) {
	mw := middleware.AllowedHostsMiddleware([]string{"*"})

	rec := call(t, mw, "/", func(r *http.Request) { r.Host = "anything.test" })
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAllowedHostsMiddleware_EmptyListRejects(t *testing.T) {
	mw := middleware.AllowedHostsMiddleware(nil)

	rec := call(t, mw, "/", func(r *http.Request) { r.Host = "localhost" })
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid host header") {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := call(t, middleware.SecurityHeaders, "/", nil)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "same-origin",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s: expected %q, got %q", k, v, got)
		}
	}
}

func TestSSLRedirect_PlainHTTP(t *testing.T) {
	rec := call(t, middleware.SSLRedirect, "http://cqhei.example.org/success/3/?x=1", nil)

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://cqhei.example.org/success/3/?x=1" {
		t.Errorf("unexpected Location: %q", loc)
	}
}

func TestSSLRedirect_ForwardedHTTPS(t *testing.T) {
	rec := call(t, middleware.SSLRedirect, "/", func(r *http.Request) {
		r.Header.Set("X-Forwarded-Proto", "https, http")
	})

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func newCSRFHandler(t *testing.T) http.Handler {
	t.Helper()

	mw, err := middleware.CSRFMiddleware("test-secret", false)
	if err != nil {
		t.Fatalf("CSRFMiddleware: %v", err)
	}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(csrf.Token(r)))
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return mw(inner)
}

// fetchToken performs a GET and returns the token and the cookie that
// carries its secret.
func fetchToken(t *testing.T, h http.Handler) (string, *http.Cookie) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			return rec.Body.String(), c
		}
	}
	t.Fatalf("no %s cookie set", middleware.CSRFCookieName)
	return "", nil
}

func TestCSRFMiddleware_RejectsMissingToken(t *testing.T) {
	h := newCSRFHandler(t)
	_, cookie := fetchToken(t, h)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("river_code=OH-1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "CSRF token missing or incorrect") {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

func TestCSRFMiddleware_AcceptsFormToken(t *testing.T) {
	h := newCSRFHandler(t)
	token, cookie := fetchToken(t, h)
	if token == "" {
		t.Fatal("empty token")
	}

	form := url.Values{middleware.CSRFFieldName: {token}, "river_code": {"OH-1"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
}

func TestCSRFMiddleware_SecureCookie(t *testing.T) {
	mw, err := middleware.CSRFMiddleware("test-secret", true)
	if err != nil {
		t.Fatalf("CSRFMiddleware: %v", err)
	}
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		csrf.Token(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "https://cqhei.example.org/", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no cookie set")
	}
	if !cookies[0].Secure {
		t.Error("expected Secure cookie in production mode")
	}
}
