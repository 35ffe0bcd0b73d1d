package web

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"newsboard/internal/client"
)

const memesPrefix = "/memes/"

type page struct {
	Screen Screen
	Flash  string
	Error  string

	Posts     []client.Post
	ListError string

	Post          *client.Post
	PostError     string
	Comments      []client.Comment
	CommentsError string

	PostForm    PostForm
	CommentForm CommentForm

	MemeURL  string
	MemeInfo string
}

func (s *Server) buildPage(ctx context.Context, state *State) page {
	view := page{
		Screen:      state.Screen,
		Flash:       state.Flash,
		Error:       state.Error,
		PostForm:    state.PostForm,
		CommentForm: state.CommentForm,
	}

	switch state.Screen {
	case ScreenList:
		posts, err := s.api.ListPosts(ctx)
		if err != nil {
			view.ListError = "Cannot load posts. " + s.describe(err)
		}
		view.Posts = posts

	case ScreenDetail:
		s.loadDetail(ctx, state.PostID, &view)

	case ScreenRandom:
		if state.Meme == "" || !s.memeExists(state.Meme) {
			meme, err := s.pickMeme("")
			if err != nil {
				s.log.WithError(err).Warn("failed to read memes directory")
			}
			state.Meme = meme
		}
		if state.Meme == "" {
			view.MemeInfo = "No memes found. Put images into the memes folder."
		} else {
			view.MemeURL = memesPrefix + url.PathEscape(state.Meme)
		}
	}

	return view
}

// loadDetail fetches the post and its comments concurrently. A comment failure
// does not cancel the post request; the page still shows the post.
func (s *Server) loadDetail(ctx context.Context, postID int64, view *page) {
	g, gctx := errgroup.WithContext(ctx)

	var post *client.Post
	var comments []client.Comment
	var commentsErr error

	g.Go(func() error {
		var err error
		post, err = s.api.GetPost(gctx, postID)
		return err
	})
	g.Go(func() error {
		comments, commentsErr = s.api.ListComments(gctx, postID)
		return nil
	})

	if err := g.Wait(); err != nil {
		view.PostError = "Cannot load post. " + s.describe(err)
		return
	}

	view.Post = post
	if commentsErr != nil {
		view.CommentsError = "Cannot load comments. " + s.describe(commentsErr)
		return
	}
	view.Comments = comments
}

// describe turns an API failure into a message for the page.
func (s *Server) describe(err error) string {
	var apiErr *client.Error
	if !errors.As(err, &apiErr) {
		s.log.WithError(err).Error("unexpected content API failure")
		return "Something went wrong."
	}

	switch apiErr.Kind {
	case client.KindUnreachable:
		s.log.WithError(err).Warn("content API unreachable")
		return "The content service is unreachable. Is the backend running?"
	case client.KindNotFound, client.KindInvalidInput:
		return apiErr.Message
	default:
		s.log.WithError(err).Error("content API returned an unexpected response")
		return fmt.Sprintf("The content service failed (status %d).", apiErr.Status)
	}
}

func (s *Server) memeFiles() ([]string, error) {
	if s.memesDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(s.memesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// pickMeme returns a random file name, avoiding current when there is a choice.
func (s *Server) pickMeme(current string) (string, error) {
	names, err := s.memeFiles()
	if err != nil || len(names) == 0 {
		return "", err
	}

	if current != "" && len(names) > 1 {
		filtered := names[:0]
		for _, name := range names {
			if name != current {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}

	return names[rand.Intn(len(names))], nil
}

func (s *Server) memeExists(name string) bool {
	names, err := s.memeFiles()
	if err != nil {
		return false
	}
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}
