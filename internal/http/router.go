package http

import (
	nethttp "net/http"

	"github.com/kschroeder20/nba-database-2000-2025/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/db", handler.Index)
	mux.HandleFunc("/db.json", handler.Index)
	mux.HandleFunc("/db/", handler.Database)
	mux.HandleFunc("/players/", handler.Players)
	mux.HandleFunc("/teams", handler.Teams)
	mux.HandleFunc("/teams/", handler.Teams)
	mux.HandleFunc("/games/", handler.Games)
	return mux
}
