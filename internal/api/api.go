package api

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port  int
	IsDev bool
}

var allowedOrigins = []string{
	"https://portal.strct.org",
	"https://dev.portal.strct.org",
	"http://localhost:3001",
	"http://localhost:3000",
}

// NewServer builds the HTTP server for routes without starting it.
func NewServer(cfg Config, routes map[string]http.HandlerFunc) *http.Server {
	finalPort := cfg.Port
	if cfg.IsDev && cfg.Port <= 1024 {
		log.Printf("[API] Dev Mode detected: Switching from privileged port %d to 8080", cfg.Port)
		finalPort = 8080
	}

	mux := http.NewServeMux()
	for path, handler := range routes {
		mux.HandleFunc(path, handler)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", finalPort),
		Handler: c.Handler(mux),
	}
}
