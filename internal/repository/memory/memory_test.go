package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsboard/internal/models"
)

func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Minute)
		return current
	}
}

func newStore() *Store {
	store := New()
	store.now = fixedClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	return store
}

func TestStore_PostsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	posts, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, store.Create(ctx, &models.Post{Author: "Ada Lovelace", Title: title, Content: "body"}))
	}

	posts, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "second", posts[1].Title)
	assert.Equal(t, "first", posts[2].Title)
}

func TestStore_SameTimestampOrdersByID(t *testing.T) {
	ctx := context.Background()
	store := New()
	frozen := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return frozen }

	require.NoError(t, store.Create(ctx, &models.Post{Author: "a", Title: "older", Content: "c"}))
	require.NoError(t, store.Create(ctx, &models.Post{Author: "a", Title: "newer", Content: "c"}))

	posts, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "newer", posts[0].Title)
}

func TestStore_GetByID(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	imageURL := "/uploads/a.png"
	post := &models.Post{Author: "Ada Lovelace", Title: "Hello", Content: "World", ImageURL: &imageURL}
	require.NoError(t, store.Create(ctx, post))
	assert.Equal(t, int64(1), post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := store.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, imageURL, *got.ImageURL)

	// returned values are copies
	*got.ImageURL = "changed"
	again, err := store.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, imageURL, *again.ImageURL)

	_, err = store.GetByID(ctx, 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStore_ConcurrentLikes(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	post := &models.Post{Author: "Ada Lovelace", Title: "Hello", Content: "World"}
	require.NoError(t, store.Create(ctx, post))

	const likes = 200
	var wg sync.WaitGroup
	for i := 0; i < likes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Like(ctx, post.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(likes), got.Likes)

	_, err = store.Like(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCommentStore(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	comments := store.Comments()

	post := &models.Post{Author: "Ada Lovelace", Title: "Hello", Content: "World"}
	require.NoError(t, store.Create(ctx, post))

	list, err := comments.ListByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, content := range []string{"first!", "second"} {
		require.NoError(t, comments.Create(ctx, &models.Comment{PostID: post.ID, Author: "Bob X", Content: content}))
	}

	list, err = comments.ListByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first!", list[0].Content)
	assert.Equal(t, "second", list[1].Content)
	assert.Equal(t, int64(0), list[0].Likes)

	result, err := comments.Like(ctx, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Likes)

	_, err = comments.Like(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCommentStore_NoOrphans(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	err := store.Comments().Create(ctx, &models.Comment{PostID: 7, Author: "Bob X", Content: "Nice!"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Comments)
}

func TestStore_Stats(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	comments := store.Comments()

	post := &models.Post{Author: "Ada Lovelace", Title: "Hello", Content: "World"}
	require.NoError(t, store.Create(ctx, post))
	comment := &models.Comment{PostID: post.ID, Author: "Bob X", Content: "Nice!"}
	require.NoError(t, comments.Create(ctx, comment))
	_, err := store.Like(ctx, post.ID)
	require.NoError(t, err)
	_, err = comments.Like(ctx, comment.ID)
	require.NoError(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Posts: 1, Comments: 1, Likes: 2}, *stats)
}

func TestNewRepository(t *testing.T) {
	repo := NewRepository()

	assert.NotNil(t, repo.Post)
	assert.NotNil(t, repo.Comment)
	assert.NotNil(t, repo.Stats)
}
