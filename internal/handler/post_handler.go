package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"newsboard/internal/models"
	"newsboard/internal/repository"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

type PostResponse struct {
	ID        int64   `json:"id"`
	Author    string  `json:"author"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	ImageURL  *string `json:"image_url"`
	CreatedAt string  `json:"created_at"`
	Likes     int64   `json:"likes"`
}

type LikeResponse struct {
	ID    int64 `json:"id"`
	Likes int64 `json:"likes"`
}

func formatCreatedAt(t time.Time) string {
	return t.In(time.Local).Format(models.CreatedAtLayout)
}

func newPostResponse(post *models.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Author:    post.Author,
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		CreatedAt: formatCreatedAt(post.CreatedAt),
		Likes:     post.Likes,
	}
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPosts(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Post not found")
		return
	}

	response := make([]PostResponse, 0, len(posts))
	for i := range posts {
		response = append(response, newPostResponse(&posts[i]))
	}

	writeJSON(w, response, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		WriteError(w, "Post not found", http.StatusNotFound)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err, "Post not found")
		return
	}

	writeJSON(w, newPostResponse(post), http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req repository.CreatePostRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Post not found")
		return
	}

	h.recordCreated("post")
	writeJSON(w, newPostResponse(post), http.StatusCreated)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		WriteError(w, "Post not found", http.StatusNotFound)
		return
	}

	result, err := h.PostService.LikePost(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err, "Post not found")
		return
	}

	h.recordLike("post")
	writeJSON(w, LikeResponse{ID: result.ID, Likes: result.Likes}, http.StatusOK)
}
