package handler

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/zoraaver/wlogger/internal/domain"
	"github.com/zoraaver/wlogger/internal/middleware"
	"github.com/zoraaver/wlogger/internal/service"
)

type WorkoutLogHandler struct {
	logService      *service.WorkoutLogService
	maxUploadSizeMB int64
}

func NewWorkoutLogHandler(logService *service.WorkoutLogService, maxUploadSizeMB int64) *WorkoutLogHandler {
	return &WorkoutLogHandler{
		logService:      logService,
		maxUploadSizeMB: maxUploadSizeMB,
	}
}

// List GET /v1/workout-logs
func (h *WorkoutLogHandler) List(c *fiber.Ctx) error {
	headers, err := h.logService.List(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(headers)
}

// Create POST /v1/workout-logs
func (h *WorkoutLogHandler) Create(c *fiber.Ctx) error {
	var req domain.WorkoutLog
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	wl, err := h.logService.Create(c.UserContext(), middleware.GetUserID(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(wl)
}

// Get GET /v1/workout-logs/:id
func (h *WorkoutLogHandler) Get(c *fiber.Ctx) error {
	wl, err := h.logService.Get(c.UserContext(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wl)
}

// Delete DELETE /v1/workout-logs/:id responds with the deleted id
func (h *WorkoutLogHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.logService.Delete(c.UserContext(), middleware.GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(id)
}

// UploadVideo POST /v1/workout-logs/:id/exercises/:exercise/sets/:set/video
func (h *WorkoutLogHandler) UploadVideo(c *fiber.Ctx) error {
	exerciseIdx, setIdx, err := setIndexes(c)
	if err != nil {
		return badRequest(c, "exercise and set must be integers")
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		return badRequest(c, "Missing 'video' field in multipart form")
	}

	maxSize := h.maxUploadSizeMB * 1024 * 1024
	if fileHeader.Size > maxSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "File too large",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, err)
	}

	wl, err := h.logService.AttachFormVideo(
		c.UserContext(),
		middleware.GetUserID(c),
		c.Params("id"),
		exerciseIdx,
		setIdx,
		data,
		fileHeader.Header.Get(fiber.HeaderContentType),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wl)
}

// VideoURL GET /v1/workout-logs/:id/exercises/:exercise/sets/:set/video
func (h *WorkoutLogHandler) VideoURL(c *fiber.Ctx) error {
	exerciseIdx, setIdx, err := setIndexes(c)
	if err != nil {
		return badRequest(c, "exercise and set must be integers")
	}

	url, err := h.logService.FormVideoURL(c.UserContext(), middleware.GetUserID(c), c.Params("id"), exerciseIdx, setIdx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}

func setIndexes(c *fiber.Ctx) (int, int, error) {
	exerciseIdx, err := strconv.Atoi(c.Params("exercise"))
	if err != nil {
		return 0, 0, err
	}
	setIdx, err := strconv.Atoi(c.Params("set"))
	if err != nil {
		return 0, 0, err
	}
	return exerciseIdx, setIdx, nil
}
