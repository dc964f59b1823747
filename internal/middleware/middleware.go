package middleware

import (
	"net"
	"net/http"
	"strings"
)

// AllowedHostsMiddleware rejects requests whose Host header is not on the
// allow-list. "*" allows every host and a leading "." matches the domain
// and all of its subdomains.
func AllowedHostsMiddleware(hosts []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(hosts))
	var suffixes []string
	allowAll := false
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case h == "":
		case h == "*":
			allowAll = true
		case strings.HasPrefix(h, "."):
			suffixes = append(suffixes, h)
		default:
			allowed[h] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowAll {
				next.ServeHTTP(w, r)
				return
			}

			host := hostOnly(r.Host)
			if _, ok := allowed[host]; ok {
				next.ServeHTTP(w, r)
				return
			}
			for _, s := range suffixes {
				if host == s[1:] || strings.HasSuffix(host, s) {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, "Invalid host header", http.StatusBadRequest)
		})
	}
}

func hostOnly(hostport string) string {
	hostport = strings.ToLower(hostport)
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		return strings.Trim(h, "[]")
	}
	return strings.Trim(hostport, "[]")
}

// SecurityHeaders sets the response headers every page carries.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

// SSLRedirect sends plain-HTTP requests to https. Behind a proxy the
// original scheme comes from X-Forwarded-Proto.
func SSLRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSecure(r) {
			next.ServeHTTP(w, r)
			return
		}
		target := "https://" + r.Host + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}

func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	proto := r.Header.Get("X-Forwarded-Proto")
	// The first entry is the client-facing hop.
	if i := strings.IndexByte(proto, ','); i >= 0 {
		proto = proto[:i]
	}
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}
