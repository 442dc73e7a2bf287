package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"recipebox/recipebox/allergen"
	"recipebox/recipebox/services"
	webmodels "recipebox/web/models"
	"recipebox/web/utils"
)

func profileResponse(id int64, email, name string, allergies allergen.List) *webmodels.ProfileResponse {
	return &webmodels.ProfileResponse{
		ID:        id,
		Email:     email,
		Name:      name,
		Allergies: allergies.String(),
	}
}

// Signup registers a new account and signs the user in
func Signup(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if details := utils.ValidateSignupRequest(&req); details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		allergies, err := allergen.Parse(req.Allergies)
		if err != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed",
				map[string]string{"allergies": err.Error()})
		}

		user, err := webApp.Accounts.Signup(c.Context(), req.Email, req.Password, req.Name, allergies)
		if err != nil {
			if errors.Is(err, services.ErrDuplicateEmail) {
				return utils.SendConflict(c, "An account with this email already exists", nil)
			}
			return err
		}

		if err := webApp.SessionService.CreateSession(c, sessionFor(user.ID, user.Email, user.Name)); err != nil {
			return err
		}

		return utils.SendCreated(c, profileResponse(user.ID, user.Email, user.Name, user.Allergies), "Account created")
	}
}

// Login checks credentials and starts a session
func Login(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		user, err := webApp.Accounts.Authenticate(c.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return utils.SendUnauthorized(c, "Invalid email or password")
			}
			return err
		}

		if err := webApp.SessionService.CreateSession(c, sessionFor(user.ID, user.Email, user.Name)); err != nil {
			return err
		}

		return utils.SendSuccess(c, profileResponse(user.ID, user.Email, user.Name, user.Allergies), "Signed in")
	}
}

// Logout destroys the current session
func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		webApp.SessionService.DestroySession(c)
		return utils.SendNoContent(c)
	}
}

// Profile returns the signed-in user's account
func Profile(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := ensureAuthenticated(c)
		if err != nil {
			return err
		}

		user, err := webApp.Accounts.Get(c.Context(), session.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				webApp.SessionService.DestroySession(c)
				return utils.SendUnauthorized(c, "Account no longer exists")
			}
			return err
		}

		return utils.SendSuccess(c, profileResponse(user.ID, user.Email, user.Name, user.Allergies), "")
	}
}

// ProfileUpdate edits the signed-in user's name and allergy list
func ProfileUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := ensureAuthenticated(c)
		if err != nil {
			return err
		}

		var req webmodels.ProfileUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if len(req.Name) > 100 {
			return utils.SendUnprocessableEntity(c, "Validation failed",
				map[string]string{"name": "Name must be less than 100 characters"})
		}

		allergies, err := allergen.Parse(req.Allergies)
		if err != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed",
				map[string]string{"allergies": err.Error()})
		}

		user, err := webApp.Accounts.EditProfile(c.Context(), session.UserID, req.Name, allergies)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return utils.SendNotFound(c, "Account not found")
			}
			return err
		}

		// Keep the cookie's display name current.
		if err := webApp.SessionService.RefreshSession(c, sessionFor(user.ID, user.Email, user.Name)); err != nil {
			return err
		}

		return utils.SendSuccess(c, profileResponse(user.ID, user.Email, user.Name, user.Allergies), "Profile updated")
	}
}

// AccountDelete removes the account after re-checking the password
func AccountDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := ensureAuthenticated(c)
		if err != nil {
			return err
		}

		var req webmodels.DeleteAccountRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if _, err := webApp.Accounts.Authenticate(c.Context(), session.Email, req.Password); err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return utils.SendUnauthorized(c, "Password confirmation failed")
			}
			return err
		}

		if err := webApp.Accounts.DeleteAccount(c.Context(), session.UserID); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return utils.SendNotFound(c, "Account not found")
			}
			return err
		}

		webApp.SessionService.DestroySession(c)

		return utils.SendNoContent(c)
	}
}
