package survey

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(svc *Service) http.Handler {
	r := chi.NewRouter()
	h := NewHandler(svc)

	r.Get("/", h.ShowForm)
	r.Post("/", h.SubmitForm)
	r.Get("/success/{survey_id}/", h.Success)
	r.Get("/success/{survey_id}", appendSlash)
	// Results listing stays disabled.

	r.Handle("/static/*", staticHandler())

	return r
}

// appendSlash sends a permanent redirect to the same path with a trailing
// slash, keeping the query string.
func appendSlash(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
