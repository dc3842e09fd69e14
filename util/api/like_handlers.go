package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"pulsefeed/database"
	"pulsefeed/middleware"
	"pulsefeed/models"

	"github.com/mattn/go-sqlite3"
)

// LikePostHandler records a like for a post on behalf of the caller.
// Expected URL: POST /posts/{postID}/like/
//
// The insert is a single statement guarded by the UNIQUE(user_id,
// target_type, target_id) constraint: a duplicate like from the same user
// fails inside SQLite and maps to {liked:false}, so concurrent attempts
// can never leave more than one row. The target is deliberately not
// checked for existence; a like against a missing post succeeds.
func LikePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok || userID == 0 {
		jsonError(w, "Unauthorized: User ID not found in session context.", http.StatusUnauthorized)
		return
	}

	postIDStr := r.PathValue("postID")
	postID, err := strconv.ParseInt(postIDStr, 10, 64)
	if err != nil {
		jsonError(w, "Invalid post ID in URL path", http.StatusBadRequest)
		return
	}

	_, err = database.DB.Exec(`
        INSERT INTO likes (user_id, target_type, target_id, created_at)
        VALUES (?, ?, ?, ?)
    `, userID, string(models.LikeTargetPost), postID, time.Now())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			log.Printf("User %d already liked post %d", userID, postID)
			writeJSON(w, http.StatusOK, models.LikeResponse{Liked: false})
			return
		}
		log.Printf("Error inserting like for post %d by user %d: %v", postID, userID, err)
		jsonError(w, "Failed to like post", http.StatusInternalServerError)
		return
	}

	log.Printf("User %d liked post %d", userID, postID)
	writeJSON(w, http.StatusOK, models.LikeResponse{Liked: true})
}
