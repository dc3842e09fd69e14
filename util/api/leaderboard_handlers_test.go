package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pulsefeed/models"
)

func likePostAs(t *testing.T, router http.Handler, userID, postID int64) {
	t.Helper()

	cookie := sessionCookie(t, userID)
	rr := doRequest(t, router, http.MethodPost, fmt.Sprintf("/posts/%d/like/", postID), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, decodeBody[models.LikeResponse](t, rr).Liked)
}

func TestLeaderboardRankingAndTieBreak(t *testing.T) {
	setupTestDB(t)
	router := newRouter()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	carol := createTestUser(t, "carol")

	alicePost := insertPost(t, alice, "alice's post", time.Now())
	bobPost := insertPost(t, bob, "bob's post", time.Now())

	// alice and bob both end with a score of 2; carol receives nothing.
	likePostAs(t, router, bob, alicePost)
	likePostAs(t, router, carol, alicePost)
	likePostAs(t, router, alice, bobPost)
	likePostAs(t, router, carol, bobPost)

	rr := doRequest(t, router, http.MethodGet, "/leaderboard/", nil, sessionCookie(t, carol))
	require.Equal(t, http.StatusOK, rr.Code)

	entries := decodeBody[[]models.LeaderboardEntry](t, rr)
	require.Len(t, entries, 3)

	// Tie between alice and bob is broken by user id ascending.
	require.Equal(t, models.LeaderboardEntry{User: "alice", Score: 2}, entries[0])
	require.Equal(t, models.LeaderboardEntry{User: "bob", Score: 2}, entries[1])
	require.Equal(t, models.LeaderboardEntry{User: "carol", Score: 0}, entries[2])
}

func TestLeaderboardIgnoresDanglingLikes(t *testing.T) {
	setupTestDB(t)
	router := newRouter()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	postID := insertPost(t, alice, "real post", time.Now())

	likePostAs(t, router, bob, postID)
	// A like against a post nobody wrote counts for no one.
	likePostAs(t, router, bob, 9999)

	rr := doRequest(t, router, http.MethodGet, "/leaderboard/", nil, sessionCookie(t, alice))
	require.Equal(t, http.StatusOK, rr.Code)

	entries := decodeBody[[]models.LeaderboardEntry](t, rr)
	require.Len(t, entries, 2)
	require.Equal(t, models.LeaderboardEntry{User: "alice", Score: 1}, entries[0])
	require.Equal(t, models.LeaderboardEntry{User: "bob", Score: 0}, entries[1])
}
