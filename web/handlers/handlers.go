package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"recipebox/recipebox"
	"recipebox/recipebox/catalog"
	"recipebox/recipebox/database"
	"recipebox/recipebox/services"
	webmodels "recipebox/web/models"
	webservices "recipebox/web/services"
	"recipebox/web/utils"
)

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config         *recipebox.Config
	DB             *database.DB
	Accounts       *services.AccountService
	Collection     *services.CollectionService
	Catalog        *catalog.Client
	SessionService *webservices.SessionService
	Version        string
}

// GetSession exposes session lookup to middleware.
func (w *WebApp) GetSession(c *fiber.Ctx) (*webmodels.UserSession, error) {
	return w.SessionService.GetSession(c)
}

// parseRecipeID parses the :id route parameter
func parseRecipeID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// HealthCheck reports service and dependency health
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := webmodels.NewHealthCheck(webApp.Version)

		if err := webApp.DB.Ping(c.Context()); err != nil {
			health.AddComponent("database", "unhealthy", err.Error())
		} else {
			health.AddComponent("database", "healthy", "")
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
			slog.Warn("Health check failed", slog.String("status", health.Status))
		}

		return c.Status(status).JSON(health)
	}
}

// sessionFor builds the cookie session payload for a signed-in user.
func sessionFor(userID int64, email, name string) *webmodels.UserSession {
	return &webmodels.UserSession{
		UserID: userID,
		Email:  email,
		Name:   name,
	}
}

// ensureAuthenticated pulls the session out of the request context.
func ensureAuthenticated(c *fiber.Ctx) (*webmodels.UserSession, error) {
	session, ok := utils.ExtractUserSession(c)
	if !ok {
		return nil, utils.SendUnauthorized(c, "Authentication required")
	}
	return session, nil
}
