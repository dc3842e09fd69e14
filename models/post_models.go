package models

import "time"

// CreatePostRequest defines the structure for creating a new post.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// PostResponse defines the structure for a post returned by the API.
// LikeCount is derived at read time, never stored.
type PostResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount int       `json:"like_count"`
}
