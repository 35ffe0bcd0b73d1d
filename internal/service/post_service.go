package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"newsboard/internal/models"
	"newsboard/internal/repository"
)

type PostService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	LikePost(ctx context.Context, postID int64) (*models.LikeResult, error)
}

type postService struct {
	postRepo repository.PostRepository
	validate *validator.Validate
}

func NewPostService(postRepo repository.PostRepository, validate *validator.Validate) PostService {
	return &postService{
		postRepo: postRepo,
		validate: validate,
	}
}

func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.List(ctx)
}

func (p *postService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	req.Author = strings.TrimSpace(req.Author)
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	// a blank image reference is the same as none
	if req.ImageURL != nil {
		imageURL := strings.TrimSpace(*req.ImageURL)
		if imageURL == "" {
			req.ImageURL = nil
		} else {
			req.ImageURL = &imageURL
		}
	}

	if err := validateStruct(p.validate, req); err != nil {
		return nil, err
	}

	post := &models.Post{
		Author:   req.Author,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) LikePost(ctx context.Context, postID int64) (*models.LikeResult, error) {
	return p.postRepo.Like(ctx, postID)
}
