package api

import (
	"log"
	"net/http"

	"pulsefeed/database"
	"pulsefeed/models"
)

// GetLeaderboardHandler ranks every user by the total number of likes
// their posts have received. Ties are broken by user id ascending so the
// ordering is deterministic; users with no likes still appear with a
// score of zero.
func GetLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	query := `
        SELECT u.username, COUNT(l.id) AS score
        FROM users u
        LEFT JOIN posts p ON p.user_id = u.id
        LEFT JOIN likes l ON l.target_type = 'POST' AND l.target_id = p.id
        GROUP BY u.id, u.username
        ORDER BY score DESC, u.id ASC
    `
	rows, err := database.DB.Query(query)
	if err != nil {
		log.Printf("Error querying leaderboard: %v", err)
		jsonError(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.User, &e.Score); err != nil {
			log.Printf("Error scanning leaderboard row: %v", err)
			jsonError(w, "Error scanning leaderboard row", http.StatusInternalServerError)
			return
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		log.Printf("Error after iterating leaderboard rows: %v", err)
		jsonError(w, "Error iterating leaderboard rows", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}
