package models

import (
	"time"
)

// CreatedAtLayout is the wire format of created_at: day.month.year hour:minute.
const CreatedAtLayout = "02.01.2006 15:04"

type Post struct {
	ID        int64     `json:"id" db:"id"`
	Author    string    `json:"author" db:"author"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Likes     int64     `json:"likes" db:"likes"`
}

type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"post_id" db:"post_id"`
	Author    string    `json:"author" db:"author"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Likes     int64     `json:"likes" db:"likes"`
}

// LikeResult is the counter value after a like was applied.
type LikeResult struct {
	ID    int64 `json:"id" db:"id"`
	Likes int64 `json:"likes" db:"likes"`
}

type Stats struct {
	Posts    int64 `json:"posts" db:"posts"`
	Comments int64 `json:"comments" db:"comments"`
	Likes    int64 `json:"likes" db:"likes"`
}
