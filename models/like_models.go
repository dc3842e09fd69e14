package models

// LikeTargetType enumerates the kinds of entities a like can point at.
// Only posts are likeable today; the column exists so the unique tuple
// stays stable if more target kinds appear.
type LikeTargetType string

const LikeTargetPost LikeTargetType = "POST"

// LikeResponse defines the structure for the like action response.
// Liked is false when the caller had already liked the target.
type LikeResponse struct {
	Liked bool `json:"liked"`
}
