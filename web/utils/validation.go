package utils

import (
	"regexp"

	"recipebox/web/models"
)

var (
	// ValidEmailRegex is a pragmatic email shape check, not RFC 5322.
	ValidEmailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 8

	// MaxNotesLength caps the notes attached to a saved recipe
	MaxNotesLength = 4000
)

// ValidateSignupRequest validates an account registration request
func ValidateSignupRequest(req *models.SignupRequest) map[string]string {
	details := make(map[string]string)

	if req.Email == "" {
		details["email"] = "Email is required"
	} else if !ValidEmailRegex.MatchString(req.Email) {
		details["email"] = "Email is not valid"
	}

	if req.Password == "" {
		details["password"] = "Password is required"
	} else if len(req.Password) < MinPasswordLength {
		details["password"] = "Password must be at least 8 characters"
	}

	if len(req.Name) > 100 {
		details["name"] = "Name must be less than 100 characters"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// ValidateNotes validates the notes payload for a saved recipe
func ValidateNotes(notes string) map[string]string {
	if len(notes) > MaxNotesLength {
		return map[string]string{"notes": "Notes are too long"}
	}
	return nil
}
