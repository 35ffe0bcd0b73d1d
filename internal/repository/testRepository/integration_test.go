package testRepository

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsboard/internal/database"
	"newsboard/internal/models"
	"newsboard/internal/repository"
)

// setupPostgres connects to DATABASE_URL, applies the schema and empties both tables.
func setupPostgres(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	conn, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	log, _ := logtest.NewNullLogger()
	db := database.NewDB(conn, log)
	require.NoError(t, db.RunMigrations("../../../migrations/001_create_tables.sql"))

	_, err = conn.Exec(`TRUNCATE comments, posts RESTART IDENTITY`)
	require.NoError(t, err)

	return repository.NewRepository(conn)
}

func TestPostgres_PostsAndComments(t *testing.T) {
	repo := setupPostgres(t)
	ctx := context.Background()

	first := &models.Post{Author: "Ada Lovelace", Title: "Hello", Content: "World"}
	require.NoError(t, repo.Post.Create(ctx, first))
	second := &models.Post{Author: "Ada Lovelace", Title: "Again", Content: "More", ImageURL: stringPtr("/uploads/a.png")}
	require.NoError(t, repo.Post.Create(ctx, second))

	posts, err := repo.Post.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
	assert.Nil(t, posts[1].ImageURL)
	require.NotNil(t, posts[0].ImageURL)

	_, err = repo.Post.GetByID(ctx, 999999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	for _, content := range []string{"one", "two"} {
		require.NoError(t, repo.Comment.Create(ctx, &models.Comment{PostID: first.ID, Author: "Bob X", Content: content}))
	}
	comments, err := repo.Comment.ListByPostID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "one", comments[0].Content)

	err = repo.Comment.Create(ctx, &models.Comment{PostID: 999999, Author: "Bob X", Content: "orphan"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	stats, err := repo.Stats.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Posts)
	assert.Equal(t, int64(2), stats.Comments)
}

func TestPostgres_ConcurrentLikes(t *testing.T) {
	repo := setupPostgres(t)
	ctx := context.Background()

	post := &models.Post{Author: "A", Title: "T", Content: "C"}
	require.NoError(t, repo.Post.Create(ctx, post))

	const likes = 50
	var wg sync.WaitGroup
	errs := make(chan error, likes)
	for i := 0; i < likes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Post.Like(ctx, post.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := repo.Post.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(likes), stored.Likes)
}

func TestPostgres_CreatedAtFollowsID(t *testing.T) {
	repo := setupPostgres(t)
	ctx := context.Background()

	var previous *models.Post
	for i := 0; i < 20; i++ {
		post := &models.Post{Author: "A", Title: "T", Content: "C"}
		require.NoError(t, repo.Post.Create(ctx, post))

		stored, err := repo.Post.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, stored.CreatedAt.Equal(post.CreatedAt))

		if previous != nil {
			assert.Greater(t, post.ID, previous.ID)
			assert.False(t, post.CreatedAt.Before(previous.CreatedAt))
		}
		previous = post
	}

	comment := &models.Comment{PostID: previous.ID, Author: "Bob X", Content: "later"}
	require.NoError(t, repo.Comment.Create(ctx, comment))
	assert.False(t, comment.CreatedAt.Before(previous.CreatedAt))
}
