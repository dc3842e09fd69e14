package models

// LeaderboardEntry is one row of the leaderboard: a user and the total
// number of likes their posts have received.
type LeaderboardEntry struct {
	User  string `json:"user"`
	Score int    `json:"score"`
}
