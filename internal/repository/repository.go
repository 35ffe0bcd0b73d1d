package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"newsboard/internal/models"
)

type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Like(ctx context.Context, postID int64) (*models.LikeResult, error)
}

type CommentRepository interface {
	ListByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Like(ctx context.Context, commentID int64) (*models.LikeResult, error)
}

type StatsRepository interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

type Repository struct {
	Post    PostRepository
	Comment CommentRepository
	Stats   StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Stats:   NewStatsRepository(db),
	}
}
