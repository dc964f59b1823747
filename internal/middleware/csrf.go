package middleware

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/csrf"
	"golang.org/x/crypto/hkdf"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFFieldName  = "_csrf"
	CSRFHeaderName = "X-CSRFToken"
)

// csrfKey stretches the configured secret into the 32-byte key gorilla/csrf
// signs its cookie with.
func csrfKey(secret string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("cqhei csrf cookie"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive csrf key: %w", err)
	}
	return key, nil
}

// CSRFMiddleware rejects unsafe requests that lack a valid token. The token
// cookie is Secure when secure is set; otherwise requests are treated as
// plain HTTP so local development works without TLS.
func CSRFMiddleware(secret string, secure bool) (func(http.Handler) http.Handler, error) {
	key, err := csrfKey(secret)
	if err != nil {
		return nil, err
	}

	protect := csrf.Protect(key,
		csrf.CookieName(CSRFCookieName),
		csrf.FieldName(CSRFFieldName),
		csrf.RequestHeader(CSRFHeaderName),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Secure(secure),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}, nil
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	log.Printf("[csrf] rejected %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
	http.Error(w, "Forbidden (CSRF token missing or incorrect.)", http.StatusForbidden)
}
