package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/gridiron-sim/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/teams", handler.Teams)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/games/", handler.Game)
	if admin != nil {
		mux.HandleFunc("/admin/roster/refresh", admin.RefreshRoster)
	}
	mux.Handle("/", handler)
	return mux
}
