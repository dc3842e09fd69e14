package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pulsefeed/database"
	"pulsefeed/middleware"
	"pulsefeed/models"
)

// CreatePostHandler handles the creation of new posts.
// UserID is fetched from the request context set by AuthMiddleware.
func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok || userID == 0 {
		jsonError(w, "Unauthorized: User ID not found in session context.", http.StatusUnauthorized)
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Error reading request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Content == "" {
		jsonError(w, "Content is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	result, err := database.DB.Exec(`
        INSERT INTO posts (user_id, content, created_at)
        VALUES (?, ?, ?)
    `, userID, req.Content, now)
	if err != nil {
		log.Printf("Error inserting post for user %d: %v", userID, err)
		jsonError(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	postID, err := result.LastInsertId()
	if err != nil {
		log.Printf("Error getting last insert ID for post: %v", err)
		jsonError(w, "Failed to retrieve post ID", http.StatusInternalServerError)
		return
	}

	var authorUsername string
	err = database.DB.QueryRow(`SELECT username FROM users WHERE id = ?`, userID).Scan(&authorUsername)
	if err != nil {
		log.Printf("Error fetching username for author %d of new post %d: %v", userID, postID, err)
		authorUsername = "unknown"
	}

	log.Printf("User %d created post %d", userID, postID)
	writeJSON(w, http.StatusCreated, models.PostResponse{
		ID:        postID,
		Author:    authorUsername,
		Content:   req.Content,
		CreatedAt: now,
		LikeCount: 0,
	})
}

// GetPostsHandler handles fetching all posts, newest first, each with a
// freshly computed like count. The count is a correlated subquery so the
// whole listing stays one statement.
func GetPostsHandler(w http.ResponseWriter, r *http.Request) {
	query := `
        SELECT p.id, u.username, p.content, p.created_at,
               (SELECT COUNT(*) FROM likes l
                WHERE l.target_type = 'POST' AND l.target_id = p.id) AS like_count
        FROM posts p
        JOIN users u ON p.user_id = u.id
        ORDER BY p.created_at DESC, p.id DESC
    `
	rows, err := database.DB.Query(query)
	if err != nil {
		log.Printf("Error querying posts with author and like count: %v", err)
		jsonError(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var posts []models.PostResponse
	for rows.Next() {
		var p models.PostResponse
		if err := rows.Scan(&p.ID, &p.Author, &p.Content, &p.CreatedAt, &p.LikeCount); err != nil {
			log.Printf("Error scanning post row: %v", err)
			jsonError(w, "Error scanning post row", http.StatusInternalServerError)
			return
		}
		posts = append(posts, p)
	}

	if err = rows.Err(); err != nil {
		log.Printf("Error after iterating post rows: %v", err)
		jsonError(w, "Error iterating post rows", http.StatusInternalServerError)
		return
	}

	if posts == nil {
		posts = []models.PostResponse{}
	}

	writeJSON(w, http.StatusOK, posts)
}
