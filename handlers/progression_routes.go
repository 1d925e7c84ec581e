// handlers/progression_routes.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"flavorquest-system/middleware"
	"flavorquest-system/services"
	"flavorquest-system/utils"
)

const defaultPathID = "sg_general"

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidChallengeID):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnknownChallenge), errors.Is(err, services.ErrUnknownStone):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrStorageUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func SetupProgressionRoutes(app *fiber.App, progression *services.ProgressionService, generator *services.GeneratorService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/user/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		pathID := c.Query("path_id", defaultPathID)

		progress, err := progression.GetProgress(c.Context(), userID, pathID)
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to get progress",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"progress": progress,
			"level":    services.LevelFor(progress.Points),
		})
	})

	securedGroup.Get("/journeys/:pathID/stones", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		stones, err := progression.ListStonesWithStatus(c.Context(), userID, c.Params("pathID"))
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to list stones",
				"cause": err.Error(),
			})
		}
		return c.JSON(stones)
	})

	securedGroup.Get("/journeys/:pathID/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		summary, err := progression.PathProgress(c.Context(), userID, c.Params("pathID"))
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to get path progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(summary)
	})

	securedGroup.Get("/regions/:countryID/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		summary, err := progression.RegionProgress(c.Context(), userID, c.Params("countryID"))
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to get region progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(summary)
	})

	securedGroup.Post("/challenges/:id/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		challengeID := c.Params("id")

		rating, _ := strconv.Atoi(c.FormValue("rating", "0"))
		if rating < 0 || rating > 5 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "rating must be between 1 and 5",
			})
		}

		proof := services.Proof{
			Caption:    c.FormValue("caption"),
			Rating:     rating,
			PlaceName:  c.FormValue("place_name"),
			UsedAIHint: c.FormValue("used_ai_hint") == "true",
		}

		if fileHeader, err := c.FormFile("photo"); err == nil && fileHeader != nil {
			key := utils.ProofKey(challengeID, fileHeader.Filename)
			if utils.R2Enabled() {
				url, err := utils.UploadProofToR2(fileHeader, key)
				if err != nil {
					return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
						"error": "photo upload failed",
						"cause": err.Error(),
					})
				}
				proof.PhotoURL = url
			} else {
				destPath := utils.GetUploadPath(key)
				if err := utils.SaveFile(fileHeader, destPath); err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"error": "photo save failed",
						"cause": err.Error(),
					})
				}
				proof.PhotoURL = "/" + destPath
			}
		}

		completion, progress, err := progression.RecordCompletion(c.Context(), userID, challengeID, proof)
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to record completion",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"completion": completion,
			"progress":   progress,
			"level":      services.LevelFor(progress.Points),
		})
	})

	securedGroup.Post("/stones/:id/generate", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		challenges, err := generator.GenerateForStone(c.Context(), c.Params("id"), userID)
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "challenge generation failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"challenges": challenges})
	})
}
