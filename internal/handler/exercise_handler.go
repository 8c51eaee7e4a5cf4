package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zoraaver/wlogger/internal/domain"
	"github.com/zoraaver/wlogger/internal/middleware"
	"github.com/zoraaver/wlogger/internal/service"
)

type ExerciseHandler struct {
	exerciseService *service.ExerciseService
}

func NewExerciseHandler(exerciseService *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	exs, err := h.exerciseService.List(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exs)
}

func (h *ExerciseHandler) Create(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	ex, err := h.exerciseService.Create(c.UserContext(), middleware.GetUserID(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ex)
}

func (h *ExerciseHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.exerciseService.Delete(c.UserContext(), middleware.GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(id)
}
