package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/cqhei/cqhei-survey/internal/config"
	"github.com/cqhei/cqhei-survey/internal/db"
	"github.com/cqhei/cqhei-survey/internal/middleware"
	"github.com/cqhei/cqhei-survey/internal/survey"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	csrfProtect, err := middleware.CSRFMiddleware(cfg.SecretKey, cfg.Production)
	if err != nil {
		log.Fatal(err)
	}

	db.Connect(cfg)
	survey.Init(db.DB, cfg.Database.Schema)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders)

	// Probes and scrapes skip the host check and the https redirect.
	r.Get("/healthz", RootHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowedHostsMiddleware(cfg.AllowedHosts))
		if cfg.SSLRedirect() {
			r.Use(middleware.SSLRedirect)
		}
		r.Use(csrfProtect)
		r.Mount("/", survey.SetupRoutes(survey.NewService(db.DB, loc)))
	})

	log.Printf("Server listening on port :%s (tz=%s, production=%t)...", cfg.Port, loc, cfg.Production)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
