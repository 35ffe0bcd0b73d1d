package service

import (
	"newsboard/internal/repository"
)

type Service struct {
	Post    PostService
	Comment CommentService
	Stats   StatsService
}

func NewService(rep *repository.Repository) *Service {
	validate := NewValidator()

	return &Service{
		Post:    NewPostService(rep.Post, validate),
		Comment: NewCommentService(rep.Comment, rep.Post, validate),
		Stats:   NewStatsService(rep.Stats),
	}
}
