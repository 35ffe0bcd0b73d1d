// Package memory is an in-process implementation of the repository interfaces.
// It is safe for concurrent use and is intended for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"newsboard/internal/models"
	"newsboard/internal/repository"
)

type Store struct {
	mu            sync.RWMutex
	nextPostID    int64
	nextCommentID int64
	posts         map[int64]*models.Post
	comments      map[int64]*models.Comment
	now           func() time.Time
}

var _ repository.PostRepository = (*Store)(nil)
var _ repository.StatsRepository = (*Store)(nil)

func New() *Store {
	return &Store{
		nextPostID:    1,
		nextCommentID: 1,
		posts:         make(map[int64]*models.Post),
		comments:      make(map[int64]*models.Comment),
		now:           time.Now,
	}
}

// NewRepository returns a repository set backed by a single fresh store.
func NewRepository() *repository.Repository {
	store := New()
	return &repository.Repository{
		Post:    store,
		Comment: store.Comments(),
		Stats:   store,
	}
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Store) List(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, clonePost(post))
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})

	return posts, nil
}

func (s *Store) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}

	result := clonePost(post)
	return &result, nil
}

func (s *Store) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextPostID
	post.CreatedAt = s.timestamp()
	post.Likes = 0
	s.nextPostID++

	stored := clonePost(post)
	s.posts[post.ID] = &stored
	return nil
}

func (s *Store) Like(ctx context.Context, postID int64) (*models.LikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}

	post.Likes++
	return &models.LikeResult{ID: post.ID, Likes: post.Likes}, nil
}

func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.Stats{
		Posts:    int64(len(s.posts)),
		Comments: int64(len(s.comments)),
	}
	for _, post := range s.posts {
		stats.Likes += post.Likes
	}
	for _, comment := range s.comments {
		stats.Likes += comment.Likes
	}

	return stats, nil
}

// Comments exposes the comment side of the store. Post and comment methods
// share names, so they live on separate types.
func (s *Store) Comments() *CommentStore {
	return &CommentStore{store: s}
}

type CommentStore struct {
	store *Store
}

var _ repository.CommentRepository = (*CommentStore)(nil)

func (c *CommentStore) ListByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	comments := []models.Comment{}
	for _, comment := range c.store.comments {
		if comment.PostID == postID {
			comments = append(comments, *comment)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})

	return comments, nil
}

func (c *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if _, ok := c.store.posts[comment.PostID]; !ok {
		return fmt.Errorf("post %d: %w", comment.PostID, models.ErrNotFound)
	}

	comment.ID = c.store.nextCommentID
	comment.CreatedAt = c.store.timestamp()
	comment.Likes = 0
	c.store.nextCommentID++

	stored := *comment
	c.store.comments[comment.ID] = &stored
	return nil
}

func (c *CommentStore) Like(ctx context.Context, commentID int64) (*models.LikeResult, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	comment, ok := c.store.comments[commentID]
	if !ok {
		return nil, fmt.Errorf("comment %d: %w", commentID, models.ErrNotFound)
	}

	comment.Likes++
	return &models.LikeResult{ID: comment.ID, Likes: comment.Likes}, nil
}

func clonePost(post *models.Post) models.Post {
	result := *post
	if post.ImageURL != nil {
		imageURL := *post.ImageURL
		result.ImageURL = &imageURL
	}
	return result
}
