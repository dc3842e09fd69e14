package util

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"pulsefeed/database"
)

const SessionCookieName = "session_token"

// SessionDuration is how long a session stays valid after login.
const SessionDuration = 24 * time.Hour

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// GenerateSessionToken creates a cryptographically secure random session token.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// CreateSession stores a new session row for the user and returns its token.
func CreateSession(userID int64) (string, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	_, err = database.DB.Exec(`
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`, token, userID, now.Add(SessionDuration), now)
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetUserIDFromSession resolves a session token to its UserID.
// Expired sessions are deleted on sight.
func GetUserIDFromSession(token string) (int64, error) {
	var userID int64
	var expiresAt time.Time
	err := database.DB.QueryRow(`
		SELECT user_id, expires_at FROM sessions WHERE token = ?
	`, token).Scan(&userID, &expiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}

	if time.Now().After(expiresAt) {
		DeleteSession(token)
		return 0, ErrSessionExpired
	}

	return userID, nil
}

// DeleteSession removes a session row.
func DeleteSession(token string) error {
	_, err := database.DB.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// CleanupExpiredSessions removes every session past its expiry.
func CleanupExpiredSessions() error {
	_, err := database.DB.Exec(`DELETE FROM sessions WHERE expires_at < ?`, time.Now())
	return err
}

// GetUserIDFromRequest extracts the UserID from the session cookie in an HTTP request.
// Returns 0 (and no error) when there is no usable session; middleware decides
// what to do about that.
func GetUserIDFromRequest(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		if err == http.ErrNoCookie {
			return 0, nil
		}
		return 0, err
	}
	if cookie.Value == "" {
		return 0, nil
	}

	userID, err := GetUserIDFromSession(cookie.Value)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired) {
			return 0, nil
		}
		return 0, err
	}

	return userID, nil
}
