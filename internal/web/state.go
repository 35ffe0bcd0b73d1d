package web

import "strings"

type Screen string

const (
	ScreenList   Screen = "list"
	ScreenDetail Screen = "detail"
	ScreenCreate Screen = "create"
	ScreenRandom Screen = "random-image"
)

type PostForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImageURL  string `json:"image_url"`
}

type CommentForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Content   string `json:"content"`
}

// State is everything one browser session remembers between requests.
// Flash and Error are shown once, on the next render.
type State struct {
	Screen      Screen      `json:"screen"`
	PostID      int64       `json:"post_id,omitempty"`
	Meme        string      `json:"meme,omitempty"`
	PostForm    PostForm    `json:"post_form"`
	CommentForm CommentForm `json:"comment_form"`
	Flash       string      `json:"flash,omitempty"`
	Error       string      `json:"error,omitempty"`
}

func NewState() State {
	return State{Screen: ScreenList}
}

func (s *State) normalize() {
	switch s.Screen {
	case ScreenList, ScreenCreate, ScreenRandom:
	case ScreenDetail:
		if s.PostID <= 0 {
			s.Screen = ScreenList
		}
	default:
		s.Screen = ScreenList
	}
}

func composeAuthor(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
