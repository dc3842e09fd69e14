package api

import (
	"net/http"

	"pulsefeed/middleware"
)

// Routes assembles the full route table. Patterns end in "/{$}" so the
// trailing-slash paths match exactly instead of as subtrees.
func Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Auth handlers
	mux.HandleFunc("POST /register/{$}", RegisterHandler)
	mux.HandleFunc("POST /login/{$}", LoginHandler)
	mux.Handle("POST /logout/{$}", middleware.AuthMiddleware(http.HandlerFunc(LogoutHandler)))
	mux.Handle("GET /me/{$}", middleware.AuthMiddleware(http.HandlerFunc(MeHandler)))

	// Post handlers
	mux.Handle("GET /posts/{$}", middleware.AuthMiddleware(http.HandlerFunc(GetPostsHandler)))
	mux.Handle("POST /posts/create/{$}", middleware.AuthMiddleware(http.HandlerFunc(CreatePostHandler)))

	// Like handler
	mux.Handle("POST /posts/{postID}/like/{$}", middleware.AuthMiddleware(http.HandlerFunc(LikePostHandler)))

	// Comment handlers
	mux.Handle("POST /comments/{$}", middleware.AuthMiddleware(http.HandlerFunc(CreateCommentHandler)))
	mux.Handle("GET /posts/{postID}/comments/{$}", middleware.AuthMiddleware(http.HandlerFunc(GetCommentsForPostHandler)))

	// Leaderboard handler
	mux.Handle("GET /leaderboard/{$}", middleware.AuthMiddleware(http.HandlerFunc(GetLeaderboardHandler)))

	return mux
}
