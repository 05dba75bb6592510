package model

import "time"

// TaskType enumerates the kinds of housekeeping work.
type TaskType string

const (
	TaskCheckoutCleaning TaskType = "CHECKOUT_CLEANING"
	TaskDeepCleaning     TaskType = "DEEP_CLEANING"
	TaskMaintenance      TaskType = "MAINTENANCE"
	TaskComplaint        TaskType = "COMPLAINT"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	switch t {
	case TaskCheckoutCleaning, TaskDeepCleaning, TaskMaintenance, TaskComplaint:
		return true
	}
	return false
}

// TaskStatus enumerates a task's lifecycle.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "OPEN"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// HousekeepingTask mirrors the `housekeeping_tasks` table.  Checkout
// creates exactly one CHECKOUT_CLEANING task per reservation, and a
// complaint spawns at most one task (unique key on complaint_ref).
type HousekeepingTask struct {
	ID            uint64     // housekeeping_tasks.id
	RoomID        uint64     // housekeeping_tasks.room_id
	ReservationID *uint64    // housekeeping_tasks.reservation_id (nullable; set by checkout)
	ComplaintRef  *string    // housekeeping_tasks.complaint_ref (nullable, unique)
	Type          TaskType   // housekeeping_tasks.type
	Status        TaskStatus // housekeeping_tasks.status
	Priority      int        // housekeeping_tasks.priority (higher is more urgent)
	Notes         string     // housekeeping_tasks.notes
	CompletedBy   *uint64    // housekeeping_tasks.completed_by (staff user)
	CreatedAt     time.Time  // housekeeping_tasks.created_at
	CompletedAt   *time.Time // housekeeping_tasks.completed_at (nullable)
}
