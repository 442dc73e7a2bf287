package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"recipebox/recipebox/catalog"
	"recipebox/recipebox/services"
	webmodels "recipebox/web/models"
	"recipebox/web/utils"
)

// CollectionList returns the user's saved recipes, optionally filtered by a
// fuzzy name query.
func CollectionList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := ensureAuthenticated(c)
		if err != nil {
			return err
		}

		saved, err := webApp.Collection.SearchSaved(c.Context(), session.UserID, c.Query("q"))
		if err != nil {
			return err
		}

		return utils.SendSuccess(c, saved, "")
	}
}

// CollectionSave adds a recipe to the user's collection, importing it from
// the catalog on first reference.
func CollectionSave(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := ensureAuthenticated(c)
		if err != nil {
			return err
		}

		id, err := parseRecipeID(c)
		if err != nil {
			return utils.SendBadRequest(c, "Recipe id must be an integer", nil)
		}

		link, err := webApp.Collection.Save(c.Context(), session.UserID, id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return utils.SendNotFound(c, "Recipe not found in catalog")
			}
			if catalog.IsUnavailable(err) {
				return utils.SendBadGateway(c, "Recipe catalog is unavailable")
			}
			return err
		}

		return utils.SendCreated(c, link, "Recipe saved")
	}
}

// CollectionRemove takes a recipe out of the user's collection
func CollectionRemove(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := ensureAuthenticated(c)
		if err != nil {
			return err
		}

		id, err := parseRecipeID(c)
		if err != nil {
			return utils.SendBadRequest(c, "Recipe id must be an integer", nil)
		}

		if err := webApp.Collection.Unsave(c.Context(), session.UserID, id); err != nil {
			if errors.Is(err, services.ErrNotSaved) {
				return utils.SendNotFound(c, "Recipe is not in your collection")
			}
			return err
		}

		return utils.SendNoContent(c)
	}
}

// NotesUpdate replaces the notes on a saved recipe
func NotesUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := ensureAuthenticated(c)
		if err != nil {
			return err
		}

		id, err := parseRecipeID(c)
		if err != nil {
			return utils.SendBadRequest(c, "Recipe id must be an integer", nil)
		}

		var req webmodels.NotesRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if details := utils.ValidateNotes(req.Notes); details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		link, err := webApp.Collection.UpdateNotes(c.Context(), session.UserID, id, req.Notes)
		if err != nil {
			if errors.Is(err, services.ErrNotSaved) {
				return utils.SendNotFound(c, "Recipe is not in your collection")
			}
			return err
		}

		return utils.SendSuccess(c, link, "Notes updated")
	}
}
