// Package web renders the newsboard screens and turns button presses into Content API calls.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"newsboard/internal/client"
	"newsboard/internal/models"
	"newsboard/internal/session"
	"newsboard/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// ContentAPI is the subset of the API client the screens use.
type ContentAPI interface {
	ListPosts(ctx context.Context) ([]client.Post, error)
	GetPost(ctx context.Context, postID int64) (*client.Post, error)
	CreatePost(ctx context.Context, req client.CreatePostRequest) (*client.Post, error)
	LikePost(ctx context.Context, postID int64) (*client.LikeResult, error)
	ListComments(ctx context.Context, postID int64) ([]client.Comment, error)
	CreateComment(ctx context.Context, postID int64, req client.CreateCommentRequest) (*client.Comment, error)
	LikeComment(ctx context.Context, commentID int64) (*client.LikeResult, error)
}

type Options struct {
	API           ContentAPI
	Sessions      *session.Manager
	Uploads       storage.Storage
	UploadsDir    string // served under /uploads/ when set
	MemesDir      string
	MaxUploadSize int64
	APILocation   *time.Location // zone the API formats created_at in, time.Local when nil
	Log           logrus.FieldLogger
}

type Server struct {
	api           ContentAPI
	sessions      *session.Manager
	uploads       storage.Storage
	uploadsDir    string
	memesDir      string
	maxUploadSize int64
	apiLocation   *time.Location
	log           logrus.FieldLogger
	templates     map[Screen]*template.Template
}

var screenTemplates = map[Screen]string{
	ScreenList:   "templates/list.html",
	ScreenDetail: "templates/detail.html",
	ScreenCreate: "templates/create.html",
	ScreenRandom: "templates/random.html",
}

func NewServer(opts Options) (*Server, error) {
	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = 10 << 20
	}

	apiLocation := opts.APILocation
	if apiLocation == nil {
		apiLocation = time.Local
	}

	s := &Server{
		api:           opts.API,
		sessions:      opts.Sessions,
		uploads:       opts.Uploads,
		uploadsDir:    opts.UploadsDir,
		memesDir:      opts.MemesDir,
		maxUploadSize: maxUploadSize,
		apiLocation:   apiLocation,
		log:           opts.Log,
		templates:     make(map[Screen]*template.Template, len(screenTemplates)),
	}

	funcs := template.FuncMap{
		"since": s.since,
		"deref": func(v *string) string {
			if v == nil {
				return ""
			}
			return *v
		},
	}
	for screen, file := range screenTemplates {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		s.templates[screen] = tmpl
	}

	return s, nil
}

// since turns an API created_at into "3 minutes ago"; unknown formats render empty.
// The wall clock carries no zone, so it is read in the API's zone.
func (s *Server) since(createdAt string) string {
	t, err := time.ParseInLocation(models.CreatedAtLayout, createdAt, s.apiLocation)
	if err != nil {
		return ""
	}
	return humanize.Time(t)
}

func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", s.Index).Methods(http.MethodGet)
	router.HandleFunc("/action", s.Action).Methods(http.MethodPost)
	router.HandleFunc("/health", s.Health).Methods(http.MethodGet)

	if s.uploadsDir != "" {
		router.PathPrefix(storage.URLPrefix).Handler(
			http.StripPrefix(storage.URLPrefix, http.FileServer(http.Dir(s.uploadsDir)))).Methods(http.MethodGet)
	}
	if s.memesDir != "" {
		router.PathPrefix(memesPrefix).Handler(
			http.StripPrefix(memesPrefix, http.FileServer(http.Dir(s.memesDir)))).Methods(http.MethodGet)
	}

	return router
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Index renders the current screen, then clears the one-shot messages.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, sessionID := s.loadState(ctx, r)

	view := s.buildPage(ctx, &state)

	state.Flash = ""
	state.Error = ""
	if err := s.sessions.Save(ctx, w, sessionID, state); err != nil {
		s.log.WithError(err).Warn("failed to save session")
	}

	var buf bytes.Buffer
	if err := s.templates[state.Screen].Execute(&buf, view); err != nil {
		s.log.WithError(err).WithField("screen", state.Screen).Error("failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) loadState(ctx context.Context, r *http.Request) (State, string) {
	state := NewState()
	sessionID, err := s.sessions.Load(ctx, r, &state)
	if err != nil {
		s.log.WithError(err).Warn("failed to load session, starting fresh")
		state = NewState()
	}
	state.normalize()
	return state, sessionID
}
