package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Masozee/ladapala-sub001/internal/model"
	"github.com/Masozee/ladapala-sub001/internal/repository"
)

// HousekeepingHandler implements the housekeeping task board.
type HousekeepingHandler struct {
	Tasks *repository.HousekeepingRepo
	Rooms *repository.RoomRepo
}

// NewHousekeepingHandler constructs a HousekeepingHandler.
func NewHousekeepingHandler(tasks *repository.HousekeepingRepo, rooms *repository.RoomRepo) *HousekeepingHandler {
	if tasks == nil || rooms == nil {
		panic("nil repository passed to NewHousekeepingHandler")
	}
	return &HousekeepingHandler{Tasks: tasks, Rooms: rooms}
}

// ListOpenTasks handles GET /v1/housekeeping/tasks.
func (h *HousekeepingHandler) ListOpenTasks(c echo.Context) error {
	items, err := h.Tasks.ListOpen(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tasks"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type complaintTaskReq struct {
	RoomID       uint64 `json:"room_id" validate:"required"`
	ComplaintRef string `json:"complaint_ref" validate:"required"`
	Type         string `json:"type"`
	Priority     int    `json:"priority" validate:"min=0,max=3"`
	Notes        string `json:"notes"`
}

// CreateComplaintTask handles POST /v1/housekeeping/tasks.  Each
// complaint reference spawns at most one task; a repeat submission
// gets a 409.
func (h *HousekeepingHandler) CreateComplaintTask(c echo.Context) error {
	var req complaintTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	taskType := model.TaskComplaint
	if req.Type != "" {
		taskType = model.TaskType(req.Type)
		if !taskType.Valid() || taskType == model.TaskCheckoutCleaning {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task type"})
		}
	}
	ref := req.ComplaintRef
	t := &model.HousekeepingTask{
		RoomID:       req.RoomID,
		ComplaintRef: &ref,
		Type:         taskType,
		Priority:     req.Priority,
		Notes:        req.Notes,
	}
	if err := h.Tasks.CreateComplaintTask(c.Request().Context(), t); err != nil {
		if errors.Is(err, repository.ErrDuplicateTask) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "complaint already has a task"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create task"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"task": t})
}

// CompleteTask handles POST /v1/housekeeping/tasks/:id/complete.
// Finishing a checkout cleaning returns the room to AVAILABLE, unless
// the next guest has already checked in and holds it OCCUPIED.
func (h *HousekeepingHandler) CompleteTask(c echo.Context) error {
	uid, err := staffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	ctx := c.Request().Context()
	t, err := h.Tasks.Complete(ctx, id, uid, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "task not found or already done"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to complete task"})
	}
	released := false
	if t.Type == model.TaskCheckoutCleaning {
		released, err = h.Rooms.ReleaseAfterCleaning(ctx, t.RoomID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release room"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"task": t, "room_released": released})
}
