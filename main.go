package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"flavorquest-system/catalog"
	"flavorquest-system/handlers"
	"flavorquest-system/middleware"
	"flavorquest-system/services"
	"flavorquest-system/store"
	"flavorquest-system/utils"
	"flavorquest-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // proof photos
	})

	// Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// The catalog is validated at build time; a broken catalog never serves.
	cat, err := catalog.NewFromSeed()
	if err != nil {
		log.Fatal("catalog failed integrity check: ", err)
	}

	st, err := store.NewFromEnv()
	if err != nil {
		log.Fatal("failed to initialize store: ", err)
	}

	if os.Getenv("R2_BUCKET_NAME") != "" {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client: ", err)
		}
		log.Println("R2 proof-photo uploads enabled")
	} else {
		if err := utils.EnsureUploadDir(); err != nil {
			log.Fatal("failed to ensure upload dir: ", err)
		}
		log.Println("R2 not configured — proof photos stored locally")
	}

	userService := services.NewUserService(st)
	feedService := services.NewFeedService(st, cat)
	progressionService := services.NewProgressionService(st, cat, feedService.PostFromCompletion)
	generatorService := services.NewGeneratorService(cat, userService,
		os.Getenv("GENERATOR_URL"), os.Getenv("GENERATOR_TOKEN"))

	generatorService.StartCacheSweeper()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if profileSyncURL := os.Getenv("PROFILE_SYNC_URL"); profileSyncURL != "" {
		syncWorker := workers.NewProfileSyncWorker(st, profileSyncURL, os.Getenv("FLAVORQUEST_SERVICE_TOKEN"))
		go syncWorker.Start(ctx)
	} else {
		log.Println("PROFILE_SYNC_URL not set — running on local/demo users only")
	}

	handlers.SetupProgressionRoutes(app, progressionService, generatorService)
	handlers.SetupFeedRoutes(app, feedService, userService)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("Server running on http://localhost:5300")
	log.Printf("CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
