package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zoraaver/wlogger/internal/domain"
	"github.com/zoraaver/wlogger/internal/service"
)

// respondError maps service errors onto status codes and error bodies
func respondError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusNotAcceptable).JSON(verr)
	case errors.Is(err, domain.ErrNoCurrentPlan):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No current workout plan found."})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrExerciseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundMessage(c)})
	case errors.Is(err, domain.ErrInvalidID):
		return c.Status(fiber.StatusNotAcceptable).JSON(fiber.Map{"error": "Invalid id"})
	case errors.Is(err, domain.ErrEmailTaken):
		return c.Status(fiber.StatusNotAcceptable).JSON(domain.NewValidationError("email", "Email is already taken"))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	case errors.Is(err, service.ErrGoogleAccount):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Please sign in with Google"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidFileType):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrStorageDisabled), errors.Is(err, service.ErrFirebaseDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	log.WithError(err).WithField("path", c.Path()).Error("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "An error occurred"})
}

func notFoundMessage(c *fiber.Ctx) string {
	if id := c.Params("id"); id != "" {
		return "Cannot find resource with id " + id
	}
	return "Not found"
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
