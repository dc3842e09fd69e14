package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"pulsefeed/database"
	"pulsefeed/middleware"
	"pulsefeed/models"
	"pulsefeed/util"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// RegisterHandler handles user registration.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Error reading request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		jsonError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		jsonError(w, "Error processing password", http.StatusInternalServerError)
		return
	}

	result, err := database.DB.Exec(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`, req.Username, string(hashedPassword), time.Now())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			jsonError(w, "Username already taken", http.StatusConflict)
			return
		}
		log.Printf("Error inserting user %s: %v", req.Username, err)
		jsonError(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	userID, err := result.LastInsertId()
	if err != nil {
		log.Printf("Error getting last insert ID: %v", err)
		jsonError(w, "Failed to retrieve user ID", http.StatusInternalServerError)
		return
	}

	log.Printf("User %s (ID: %d) registered.", req.Username, userID)
	writeJSON(w, http.StatusCreated, models.UserResponse{
		ID:       userID,
		Username: req.Username,
	})
}

// LoginHandler handles user login.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Error reading request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		jsonError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	var userID int64
	var storedPasswordHash string
	err := database.DB.QueryRow(`
		SELECT id, password_hash FROM users WHERE username = ?
	`, req.Username).Scan(&userID, &storedPasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			// Unknown user and wrong password are indistinguishable on purpose.
			log.Printf("Login failed - user not found: %s", req.Username)
			jsonError(w, "Invalid credentials", http.StatusBadRequest)
			return
		}
		log.Printf("Login failed - database error: %v", err)
		jsonError(w, "Database error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedPasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Login failed - invalid password for: %s", req.Username)
		jsonError(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	sessionToken, err := util.CreateSession(userID)
	if err != nil {
		log.Printf("Login failed - session creation error: %v", err)
		jsonError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     util.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		Expires:  time.Now().Add(util.SessionDuration),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})

	log.Printf("Login successful for user: %s (ID: %d)", req.Username, userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged in"})
}

// LogoutHandler handles user logout. Runs behind AuthMiddleware, so the
// caller is known to hold a valid session.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(util.SessionCookieName)
	if err != nil {
		if err == http.ErrNoCookie {
			jsonError(w, "No active session", http.StatusUnauthorized)
			return
		}
		log.Printf("Error reading session cookie on logout: %v", err)
		jsonError(w, "Server error reading cookie", http.StatusInternalServerError)
		return
	}

	if err := util.DeleteSession(cookie.Value); err != nil {
		log.Printf("Error deleting session on logout: %v", err)
		jsonError(w, "Failed to destroy session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     util.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})

	log.Println("User logged out successfully.")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// MeHandler returns the authenticated caller's id and username.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok || userID == 0 {
		jsonError(w, "Unauthorized: User ID not found in session context.", http.StatusUnauthorized)
		return
	}

	var username string
	err := database.DB.QueryRow(`SELECT username FROM users WHERE id = ?`, userID).Scan(&username)
	if err != nil {
		log.Printf("Error fetching user %d for /me/: %v", userID, err)
		jsonError(w, "Failed to load user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.UserResponse{
		ID:       userID,
		Username: username,
	})
}
