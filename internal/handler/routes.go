package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// NewRouter registers the Content API. Non-numeric identifiers never match and fall through to 404.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/stats", h.StatsHandler).Methods(http.MethodGet)
	if h.Metrics != nil {
		router.Handle("/metrics", h.Metrics.Handler()).Methods(http.MethodGet)
	}

	router.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id:[0-9]+}", h.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/posts/{id:[0-9]+}/like", h.LikePost).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id:[0-9]+}/comments", h.GetComments).Methods(http.MethodGet)
	router.HandleFunc("/posts/{id:[0-9]+}/comments", h.CreateComment).Methods(http.MethodPost)
	router.HandleFunc("/comments/{id:[0-9]+}/like", h.LikeComment).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return router
}

// pathID reads the {id} route variable; ok is false when it does not fit an int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
