package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"newsboard/internal/models"
)

const postColumns = `id, author, title, content, image_url, created_at, likes`

type CreatePostRequest struct {
	Author   string  `json:"author" validate:"required,max=255"`
	Title    string  `json:"title" validate:"required,max=255"`
	Content  string  `json:"content" validate:"required"`
	ImageURL *string `json:"image_url"`
}

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) List(ctx context.Context) ([]models.Post, error) {
	query := `
        SELECT ` + postColumns + ` FROM posts
        ORDER BY created_at DESC, id DESC
    `

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `
        SELECT ` + postColumns + ` FROM posts
        WHERE id = $1
    `

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// Create stores the post and fills in ID, CreatedAt and Likes.
// The database assigns both id and created_at in the same row insert.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts (author, title, content, image_url, likes)
        VALUES ($1, $2, $3, $4, 0)
        RETURNING id, created_at
    `

	var id int64
	var createdAt time.Time
	err := r.db.QueryRowxContext(ctx, query, post.Author, post.Title, post.Content, post.ImageURL).Scan(&id, &createdAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	post.ID = id
	post.CreatedAt = createdAt.UTC()
	post.Likes = 0
	return nil
}

// Like increments the counter in a single statement so concurrent likes are never lost.
func (r *PostRepositoryImpl) Like(ctx context.Context, postID int64) (*models.LikeResult, error) {
	query := `
        UPDATE posts SET likes = likes + 1
        WHERE id = $1
        RETURNING id, likes
    `

	var result models.LikeResult
	err := r.db.GetContext(ctx, &result, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to like post: %w", err)
	}

	return &result, nil
}
