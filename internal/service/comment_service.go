package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"newsboard/internal/models"
	"newsboard/internal/repository"
)

type CommentService interface {
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID int64, req repository.CreateCommentRequest) (*models.Comment, error)
	LikeComment(ctx context.Context, commentID int64) (*models.LikeResult, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	validate    *validator.Validate
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, validate *validator.Validate) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		validate:    validate,
	}
}

// ListComments distinguishes a missing post (NotFound) from a post without comments (empty slice).
func (c *commentService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, err := c.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return c.commentRepo.ListByPostID(ctx, postID)
}

func (c *commentService) CreateComment(ctx context.Context, postID int64, req repository.CreateCommentRequest) (*models.Comment, error) {
	req.Author = strings.TrimSpace(req.Author)
	req.Content = strings.TrimSpace(req.Content)

	if err := validateStruct(c.validate, req); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		Author:  req.Author,
		Content: req.Content,
	}

	// the repository refuses the insert when the post is missing
	if err := c.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (c *commentService) LikeComment(ctx context.Context, commentID int64) (*models.LikeResult, error) {
	return c.commentRepo.Like(ctx, commentID)
}
