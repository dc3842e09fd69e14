package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"pulsefeed/database"
	"pulsefeed/middleware"
	"pulsefeed/models"
)

// CreateCommentHandler handles adding a new comment to a post.
// Expected URL: POST /comments/ with {post_id, content}.
func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok || userID == 0 {
		jsonError(w, "Unauthorized: User ID not found in session context.", http.StatusUnauthorized)
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Error reading request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Content == "" {
		jsonError(w, "Content is required", http.StatusBadRequest)
		return
	}
	if req.PostID == 0 {
		jsonError(w, "post_id is required", http.StatusBadRequest)
		return
	}

	var exists bool
	err := database.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM posts WHERE id = ?)`, req.PostID).Scan(&exists)
	if err != nil {
		log.Printf("Error checking post %d existence: %v", req.PostID, err)
		jsonError(w, "Error checking post existence", http.StatusInternalServerError)
		return
	}
	if !exists {
		jsonError(w, "Post not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	result, err := database.DB.Exec(`
        INSERT INTO comments (post_id, user_id, content, created_at)
        VALUES (?, ?, ?, ?)
    `, req.PostID, userID, req.Content, now)
	if err != nil {
		log.Printf("Error inserting comment for post %d by user %d: %v", req.PostID, userID, err)
		jsonError(w, "Failed to create comment", http.StatusInternalServerError)
		return
	}

	commentID, err := result.LastInsertId()
	if err != nil {
		log.Printf("Error getting last insert ID for comment: %v", err)
		jsonError(w, "Failed to retrieve comment ID", http.StatusInternalServerError)
		return
	}

	var authorUsername string
	err = database.DB.QueryRow(`SELECT username FROM users WHERE id = ?`, userID).Scan(&authorUsername)
	if err != nil {
		log.Printf("Error fetching username for commenter %d of new comment %d: %v", userID, commentID, err)
		authorUsername = "unknown"
	}

	log.Printf("User %d commented on post %d (comment %d)", userID, req.PostID, commentID)
	writeJSON(w, http.StatusCreated, models.CommentResponse{
		ID:        commentID,
		PostID:    req.PostID,
		Author:    authorUsername,
		Content:   req.Content,
		CreatedAt: now,
	})
}

// GetCommentsForPostHandler handles fetching all comments for a specific
// post, oldest first.
// Expected URL: GET /posts/{postID}/comments/
func GetCommentsForPostHandler(w http.ResponseWriter, r *http.Request) {
	postIDStr := r.PathValue("postID")
	postID, err := strconv.ParseInt(postIDStr, 10, 64)
	if err != nil {
		jsonError(w, "Invalid post ID in URL path", http.StatusBadRequest)
		return
	}

	var exists bool
	err = database.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM posts WHERE id = ?)`, postID).Scan(&exists)
	if err != nil {
		log.Printf("Error checking post %d existence: %v", postID, err)
		jsonError(w, "Error checking post existence", http.StatusInternalServerError)
		return
	}
	if !exists {
		jsonError(w, "Post not found", http.StatusNotFound)
		return
	}

	query := `
        SELECT c.id, c.post_id, u.username, c.content, c.created_at
        FROM comments c
        JOIN users u ON c.user_id = u.id
        WHERE c.post_id = ?
        ORDER BY c.created_at ASC, c.id ASC
    `
	rows, err := database.DB.Query(query, postID)
	if err != nil {
		log.Printf("Error querying comments for post %d: %v", postID, err)
		jsonError(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var comments []models.CommentResponse
	for rows.Next() {
		var c models.CommentResponse
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			log.Printf("Error scanning comment for post %d: %v", postID, err)
			jsonError(w, "Error scanning comment row", http.StatusInternalServerError)
			return
		}
		comments = append(comments, c)
	}

	if err = rows.Err(); err != nil {
		log.Printf("Error after iterating comments for post %d: %v", postID, err)
		jsonError(w, "Error iterating comment rows", http.StatusInternalServerError)
		return
	}

	if comments == nil {
		comments = []models.CommentResponse{}
	}

	writeJSON(w, http.StatusOK, comments)
}
