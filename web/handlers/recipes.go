package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"recipebox/recipebox/catalog"
	webmodels "recipebox/web/models"
	"recipebox/web/utils"
)

// RecipeSearch proxies a catalog search. When a signed-in user has allergies
// on file, they are merged into the intolerance filter so flagged recipes
// never come back.
func RecipeSearch(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := catalog.SearchParams{
			Query:              c.Query("q"),
			IncludeIngredients: c.Query("include"),
			ExcludeIngredients: c.Query("exclude"),
			Diet:               c.Query("diet"),
		}

		if maxReady := c.Query("max_ready_time"); maxReady != "" {
			v, err := strconv.Atoi(maxReady)
			if err != nil || v < 0 {
				return utils.SendBadRequest(c, "max_ready_time must be a non-negative integer", nil)
			}
			params.MaxReadyTime = v
		}

		if session, ok := utils.ExtractUserSession(c); ok {
			user, err := webApp.Accounts.Get(c.Context(), session.UserID)
			if err == nil {
				params.Intolerances = user.Allergies.Strings()
			}
		}

		result, err := webApp.Catalog.Search(c.Context(), params)
		if err != nil {
			if catalog.IsUnavailable(err) {
				return utils.SendBadGateway(c, "Recipe catalog is unavailable")
			}
			return err
		}

		return utils.SendSuccess(c, result, "")
	}
}

// RecipeExplore returns a batch of random catalog recipes for browsing.
func RecipeExplore(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipes, err := webApp.Catalog.Random(c.Context(), c.QueryInt("number"))
		if err != nil {
			if catalog.IsUnavailable(err) {
				return utils.SendBadGateway(c, "Recipe catalog is unavailable")
			}
			return err
		}

		return utils.SendSuccess(c, recipes, "")
	}
}

// RecipeDetail proxies a single catalog recipe together with the catalog's
// similar-recipe suggestions. Nothing is persisted here; rows are only
// written when a user saves the recipe.
func RecipeDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseRecipeID(c)
		if err != nil {
			return utils.SendBadRequest(c, "Recipe id must be an integer", nil)
		}

		info, err := webApp.Catalog.GetRecipe(c.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return utils.SendNotFound(c, "Recipe not found in catalog")
			}
			if catalog.IsUnavailable(err) {
				return utils.SendBadGateway(c, "Recipe catalog is unavailable")
			}
			return err
		}

		// Suggestions are decoration; a failed lookup must not break the
		// detail view.
		similar, err := webApp.Catalog.Similar(c.Context(), id, 3)
		if err != nil {
			slog.Warn("Similar recipe lookup failed",
				slog.Int64("recipe_id", id),
				slog.Any("error", err))
			similar = nil
		}

		return utils.SendSuccess(c, webmodels.RecipeDetailResponse{
			Recipe:  info,
			Similar: similar,
		}, "")
	}
}
