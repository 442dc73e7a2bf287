package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"recipebox/recipebox"
	"recipebox/recipebox/catalog"
	"recipebox/recipebox/database"
	"recipebox/recipebox/database/repositories"
	"recipebox/recipebox/images"
	"recipebox/recipebox/logger"
	"recipebox/recipebox/services"
	"recipebox/web/handlers"
	"recipebox/web/middleware"
	webservices "recipebox/web/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Initialize custom logger
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting RecipeBox",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldResetDB := flag.Bool("reset-db", false, "Whether to truncate application tables on startup")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := recipebox.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	customHandler.SetLevel(cfg.Log.Level)
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(-1)
	}
	defer db.Close()

	if *shouldResetDB {
		if err := db.ResetAppTables(ctx); err != nil {
			slog.Error("Failed to reset tables", slog.Any("error", err))
			os.Exit(-1)
		}
		slog.Info("Application tables truncated")
	}

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(dbStartTime)))

	// Repositories
	userRepo := repositories.NewUserRepository(db.BunDB())
	recipeRepo := repositories.NewRecipeRepository(db.BunDB())
	userRecipeRepo := repositories.NewUserRecipeRepository(db.BunDB())

	// Catalog client
	catalogClient := catalog.NewClient(cfg.Catalog)

	// Optional image mirror
	var mirror services.ImageMirror
	if cfg.Spaces.Enabled() {
		spaces, err := images.NewSpacesService(cfg.Spaces)
		if err != nil {
			slog.Error("Failed to initialize Spaces", slog.Any("error", err))
			os.Exit(-1)
		}
		mirror = spaces
		slog.Info("Image mirror enabled", slog.String("bucket", cfg.Spaces.Bucket))
	}

	// Services
	recipeCache := services.NewRecipeCache(recipeRepo, catalogClient, mirror)
	collectionService := services.NewCollectionService(userRecipeRepo, recipeCache)
	accountService := services.NewAccountService(userRepo)
	sessionService := webservices.NewSessionService(cfg.Web)

	app := fiber.New(fiber.Config{
		AppName:      "RecipeBox",
		ServerHeader: "RecipeBox",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Web.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cookie",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		Config:         cfg,
		DB:             db,
		Accounts:       accountService,
		Collection:     collectionService,
		Catalog:        catalogClient,
		SessionService: sessionService,
		Version:        version,
	}

	setupRoutes(app, webApp)

	address := ":" + cfg.Web.Port
	slog.Info("Starting server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.Any("error", err))
		}
	}()

	<-c
	slog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.Any("error", err))
	}

	slog.Info("Shutdown complete")
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	// Authentication routes
	auth := app.Group("/auth")
	auth.Post("/signup", handlers.Signup(webApp))
	auth.Post("/login", handlers.Login(webApp))
	auth.Post("/logout", handlers.Logout(webApp))

	api := app.Group("/api")

	// Account routes
	me := api.Group("/me")
	me.Use(middleware.AuthRequired(webApp))
	me.Get("/", handlers.Profile(webApp))
	me.Put("/", handlers.ProfileUpdate(webApp))
	me.Delete("/", handlers.AccountDelete(webApp))

	// Catalog browsing; allergy filtering kicks in for signed-in users
	recipes := api.Group("/recipes")
	recipes.Use(middleware.OptionalAuth(webApp))
	recipes.Get("/search", handlers.RecipeSearch(webApp))
	recipes.Get("/explore", handlers.RecipeExplore(webApp))
	recipes.Get("/:id", handlers.RecipeDetail(webApp))

	// Saved recipe collection
	collection := api.Group("/collection")
	collection.Use(middleware.AuthRequired(webApp))
	collection.Get("/", handlers.CollectionList(webApp))
	collection.Post("/:id", handlers.CollectionSave(webApp))
	collection.Delete("/:id", handlers.CollectionRemove(webApp))
	collection.Put("/:id/notes", handlers.NotesUpdate(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return c.Status(404).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})
}
