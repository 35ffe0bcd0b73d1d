package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"newsboard/internal/client"
	"newsboard/internal/storage"
)

const formOverhead = 1 << 20

// Action applies one button press to the session and redirects back to the screen.
func (s *Server) Action(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, sessionID := s.loadState(ctx, r)
	state.Flash = ""
	state.Error = ""

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize+formOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			state.Error = "The upload is too large. The limit is " + humanize.IBytes(uint64(s.maxUploadSize)) + "."
		} else {
			state.Error = "The form could not be read."
		}
		s.finishAction(w, r, sessionID, state)
		return
	}

	switch action := r.FormValue("action"); action {
	case "show-list":
		state.Screen = ScreenList
	case "show-create":
		state.Screen = ScreenCreate
	case "show-random", "next-image":
		state.Screen = ScreenRandom
		state.Meme = s.nextMeme(state.Meme)
	case "view-post":
		if postID, ok := formID(r, "post_id"); ok {
			state.Screen = ScreenDetail
			state.PostID = postID
		} else {
			state.Error = "Invalid post id."
		}
	case "like-post":
		if postID, ok := formID(r, "post_id"); ok {
			if _, err := s.api.LikePost(ctx, postID); err != nil {
				state.Error = "Like failed. " + s.describe(err)
			}
		} else {
			state.Error = "Invalid post id."
		}
	case "like-comment":
		if commentID, ok := formID(r, "comment_id"); ok {
			if _, err := s.api.LikeComment(ctx, commentID); err != nil {
				state.Error = "Like failed. " + s.describe(err)
			}
		} else {
			state.Error = "Invalid comment id."
		}
	case "create-post":
		s.createPost(ctx, r, &state)
	case "create-comment":
		s.createComment(ctx, r, &state)
	default:
		state.Error = "Unknown action."
		s.log.WithField("action", action).Debug("unknown action")
	}

	s.finishAction(w, r, sessionID, state)
}

func (s *Server) finishAction(w http.ResponseWriter, r *http.Request, sessionID string, state State) {
	if err := s.sessions.Save(r.Context(), w, sessionID, state); err != nil {
		s.log.WithError(err).Error("failed to save session")
		http.Error(w, "Session storage is unavailable", http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) nextMeme(current string) string {
	meme, err := s.pickMeme(current)
	if err != nil {
		s.log.WithError(err).Warn("failed to read memes directory")
	}
	return meme
}

func (s *Server) createPost(ctx context.Context, r *http.Request, state *State) {
	form := PostForm{
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		Title:     strings.TrimSpace(r.FormValue("title")),
		Content:   strings.TrimSpace(r.FormValue("content")),
		ImageURL:  strings.TrimSpace(r.FormValue("image_url")),
	}
	state.Screen = ScreenCreate
	state.PostForm = form

	if form.FirstName == "" || form.LastName == "" || form.Title == "" || form.Content == "" {
		state.Error = "Please fill first name, last name, title and content."
		return
	}

	req := client.CreatePostRequest{
		Author:  composeAuthor(form.FirstName, form.LastName),
		Title:   form.Title,
		Content: form.Content,
	}

	objectName, imageURL, err := s.saveUpload(ctx, r)
	if err != nil {
		state.Error = err.Error()
		return
	}
	switch {
	case imageURL != "":
		req.ImageURL = &imageURL
	case form.ImageURL != "":
		req.ImageURL = &form.ImageURL
	}

	if _, err := s.api.CreatePost(ctx, req); err != nil {
		state.Error = "Failed to create post. " + s.describe(err)
		if objectName != "" {
			if err := s.uploads.DeleteImage(ctx, objectName); err != nil {
				s.log.WithError(err).WithField("object", objectName).Warn("failed to remove orphaned upload")
			}
		}
		return
	}

	state.PostForm = PostForm{}
	state.Flash = "Post created!"
}

type uploadError struct {
	message string
}

func (e *uploadError) Error() string { return e.message }

// saveUpload stores the "image" file, if one was sent. It returns empty names when there is none.
func (s *Server) saveUpload(ctx context.Context, r *http.Request) (string, string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", "", nil
	}
	if err != nil {
		return "", "", &uploadError{"The image could not be read."}
	}
	defer file.Close()

	img, err := storage.ReadImage(file, s.maxUploadSize)
	switch {
	case errors.Is(err, storage.ErrImageTooLarge):
		return "", "", &uploadError{"The image is too large. The limit is " + humanize.IBytes(uint64(s.maxUploadSize)) + "."}
	case errors.Is(err, storage.ErrUnsupportedImage):
		return "", "", &uploadError{"Only PNG, JPEG and WebP images are supported."}
	case err != nil:
		return "", "", &uploadError{"The image could not be read."}
	}

	fileName := header.Filename
	if filepath.Ext(fileName) == "" {
		fileName += img.Extension
	}

	objectName, imageURL, err := s.uploads.UploadImage(ctx, fileName, bytes.NewReader(img.Data), int64(len(img.Data)))
	if err != nil {
		s.log.WithError(err).Error("failed to store upload")
		return "", "", &uploadError{"The image could not be saved."}
	}

	s.log.WithField("object", objectName).WithField("size", humanize.IBytes(uint64(len(img.Data)))).Info("image uploaded")
	return objectName, imageURL, nil
}

func (s *Server) createComment(ctx context.Context, r *http.Request, state *State) {
	form := CommentForm{
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		Content:   strings.TrimSpace(r.FormValue("comment")),
	}
	state.CommentForm = form

	if state.Screen != ScreenDetail {
		state.Error = "No post selected."
		return
	}
	if form.FirstName == "" || form.LastName == "" || form.Content == "" {
		state.Error = "Fill all fields."
		return
	}

	_, err := s.api.CreateComment(ctx, state.PostID, client.CreateCommentRequest{
		Author:  composeAuthor(form.FirstName, form.LastName),
		Content: form.Content,
	})
	if err != nil {
		state.Error = "Failed to post comment. " + s.describe(err)
		return
	}

	state.CommentForm = CommentForm{}
	state.Flash = "Comment posted"
}

func formID(r *http.Request, field string) (int64, bool) {
	id, err := strconv.ParseInt(r.FormValue(field), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
