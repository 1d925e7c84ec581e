// handlers/feed_routes.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"flavorquest-system/middleware"
	"flavorquest-system/services"
	"flavorquest-system/store"
)

func SetupFeedRoutes(app *fiber.App, feed *services.FeedService, users *services.UserService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/feed", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		posts, err := feed.ListFeed(c.Context(), userID)
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to load feed",
				"cause": err.Error(),
			})
		}

		if pathID := c.Query("path_id"); pathID != "" {
			posts = feed.PostsByPath(posts, pathID)
		}
		return c.JSON(posts)
	})

	securedGroup.Get("/feed/by-country", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		posts, err := feed.ListFeed(c.Context(), userID)
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to load feed",
				"cause": err.Error(),
			})
		}
		return c.JSON(feed.PostsByCountry(posts))
	})

	securedGroup.Post("/feed/:postID/like", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if err := feed.ToggleLike(c.Context(), c.Params("postID"), userID); err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to toggle like",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "ok"})
	})

	securedGroup.Get("/feed/:postID/comments", func(c *fiber.Ctx) error {
		comments, err := feed.ListComments(c.Context(), c.Params("postID"))
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to list comments",
				"cause": err.Error(),
			})
		}
		return c.JSON(comments)
	})

	securedGroup.Post("/feed/:postID/comments", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Body            string `json:"body"`
			ParentCommentID string `json:"parent_comment_id,omitempty"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		comment, err := feed.AddComment(c.Context(), c.Params("postID"), userID, req.Body, req.ParentCommentID)
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to add comment",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	})

	securedGroup.Get("/users/:userID", func(c *fiber.Ctx) error {
		user, err := users.GetUser(c.Context(), c.Params("userID"))
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to get user",
				"cause": err.Error(),
			})
		}
		return c.JSON(user)
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())

	adminGroup.Get("/users", func(c *fiber.Ctx) error {
		if !middleware.IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin role required",
			})
		}
		list, err := users.ListUsers(c.Context())
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to list users",
				"cause": err.Error(),
			})
		}
		return c.JSON(list)
	})
}
