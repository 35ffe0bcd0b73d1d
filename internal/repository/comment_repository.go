package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"newsboard/internal/models"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

type CreateCommentRequest struct {
	Author  string `json:"author" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type CommentRepositoryImpl struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) ListByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
        SELECT id, post_id, author, content, created_at, likes FROM comments
        WHERE post_id = $1
        ORDER BY created_at ASC, id ASC
    `

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// Create inserts the comment only if its post exists, so a missing post never leaves an orphan row.
func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	query := `
        INSERT INTO comments (post_id, author, content, likes)
        SELECT $1::bigint, $2::text, $3::text, 0
        WHERE EXISTS (SELECT 1 FROM posts WHERE id = $1)
        RETURNING id, created_at
    `

	var id int64
	var createdAt time.Time
	err := r.db.QueryRowxContext(ctx, query, comment.PostID, comment.Author, comment.Content).Scan(&id, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("post %d: %w", comment.PostID, models.ErrNotFound)
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return fmt.Errorf("post %d: %w", comment.PostID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	comment.ID = id
	comment.CreatedAt = createdAt.UTC()
	comment.Likes = 0
	return nil
}

func (r *CommentRepositoryImpl) Like(ctx context.Context, commentID int64) (*models.LikeResult, error) {
	query := `
        UPDATE comments SET likes = likes + 1
        WHERE id = $1
        RETURNING id, likes
    `

	var result models.LikeResult
	err := r.db.GetContext(ctx, &result, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %d: %w", commentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to like comment: %w", err)
	}

	return &result, nil
}
