package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zoraaver/wlogger/internal/domain"
	"github.com/zoraaver/wlogger/internal/middleware"
	"github.com/zoraaver/wlogger/internal/service"
	"github.com/zoraaver/wlogger/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type WorkoutPlanHandler struct {
	planService *service.WorkoutPlanService
}

func NewWorkoutPlanHandler(planService *service.WorkoutPlanService) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{planService: planService}
}

type createPlanRequest struct {
	domain.WorkoutPlan
	Current bool `json:"current"`
}

// nextWorkoutResponse is the workout with the date it falls on
type nextWorkoutResponse struct {
	domain.Workout
	Date time.Time `json:"date"`
}

// List GET /v1/workout-plans
func (h *WorkoutPlanHandler) List(c *fiber.Ctx) error {
	plans, err := h.planService.List(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plans)
}

// Create POST /v1/workout-plans
func (h *WorkoutPlanHandler) Create(c *fiber.Ctx) error {
	var req createPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	plan, err := h.planService.Create(c.UserContext(), middleware.GetUserID(c), &req.WorkoutPlan, req.Current)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// Get GET /v1/workout-plans/:id
func (h *WorkoutPlanHandler) Get(c *fiber.Ctx) error {
	plan, err := h.planService.Get(c.UserContext(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// Update PUT /v1/workout-plans/:id
func (h *WorkoutPlanHandler) Update(c *fiber.Ctx) error {
	var req domain.WorkoutPlan
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	plan, err := h.planService.Update(c.UserContext(), middleware.GetUserID(c), c.Params("id"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// Delete DELETE /v1/workout-plans/:id responds with the deleted id
func (h *WorkoutPlanHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.planService.Delete(c.UserContext(), middleware.GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(id)
}

// Start PATCH /v1/workout-plans/:id/start
func (h *WorkoutPlanHandler) Start(c *fiber.Ctx) error {
	res, err := h.planService.Start(c.UserContext(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Current GET /v1/workout-plans/current
func (h *WorkoutPlanHandler) Current(c *fiber.Ctx) error {
	plan, err := h.planService.Current(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// Next GET /v1/workout-plans/next
// Terminal states are sent as a bare JSON string.
func (h *WorkoutPlanHandler) Next(c *fiber.Ctx) error {
	next, err := h.planService.NextWorkout(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if next.Workout == nil {
		telemetry.AddSpanEvent(c, "next_workout.terminal", attribute.String("status", next.Status))
		return c.JSON(next.Status)
	}
	telemetry.SetSpanAttribute(c, "workout.day_of_week", string(next.Workout.DayOfWeek))
	return c.JSON(nextWorkoutResponse{Workout: *next.Workout, Date: next.Date})
}
