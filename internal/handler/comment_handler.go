package handlers

import (
	"encoding/json"
	"net/http"

	"newsboard/internal/models"
	"newsboard/internal/repository"
)

type CommentResponse struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"post_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	Likes     int64  `json:"likes"`
}

func newCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Author:    comment.Author,
		Content:   comment.Content,
		CreatedAt: formatCreatedAt(comment.CreatedAt),
		Likes:     comment.Likes,
	}
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		WriteError(w, "Post not found", http.StatusNotFound)
		return
	}

	comments, err := h.CommentService.ListComments(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err, "Post not found")
		return
	}

	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, newCommentResponse(&comments[i]))
	}

	writeJSON(w, response, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		WriteError(w, "Post not found", http.StatusNotFound)
		return
	}

	var req repository.CreateCommentRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), postID, req)
	if err != nil {
		h.writeServiceError(w, r, err, "Post not found")
		return
	}

	h.recordCreated("comment")
	writeJSON(w, newCommentResponse(comment), http.StatusCreated)
}

func (h *Handlers) LikeComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r)
	if !ok {
		WriteError(w, "Comment not found", http.StatusNotFound)
		return
	}

	result, err := h.CommentService.LikeComment(r.Context(), commentID)
	if err != nil {
		h.writeServiceError(w, r, err, "Comment not found")
		return
	}

	h.recordLike("comment")
	writeJSON(w, LikeResponse{ID: result.ID, Likes: result.Likes}, http.StatusOK)
}
