package models

import (
	"time"

	"recipebox/recipebox/catalog"
)

// UserSession holds the signed-in user's identity inside the session cookie.
type UserSession struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignupRequest is the payload for account registration.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Allergies string `json:"allergies"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest is the payload for profile edits. Email and password
// cannot be changed here.
type ProfileUpdateRequest struct {
	Name      string `json:"name"`
	Allergies string `json:"allergies"`
}

// DeleteAccountRequest requires the current password so a stolen session
// cannot destroy the account on its own.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// NotesRequest is the payload for replacing a saved recipe's notes.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// RecipeDetailResponse bundles a catalog recipe with its similar-recipe
// suggestions, the way the detail page consumes them.
type RecipeDetailResponse struct {
	Recipe  *catalog.RecipeInfo     `json:"recipe"`
	Similar []catalog.SimilarRecipe `json:"similar"`
}

// ProfileResponse is the public view of an account.
type ProfileResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Allergies string `json:"allergies"`
}
