package domain

import "time"

// TaskStatus is the workflow state of a task.
type TaskStatus string

// Known task statuses, in canonical board order.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists the known task statuses in canonical order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

// Valid reports whether the status is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusInProgress || s == TaskStatusCompleted
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

// Known task priorities.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskPriorities lists the known task priorities.
var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

// Valid reports whether the priority is one of the known task priorities.
func (p TaskPriority) Valid() bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}

// Task is a unit of work attached to a client. AssigneeID is always the
// principal that created or last updated the task; tasks cannot be
// assigned to someone else through the API. DueDate is a calendar date
// string (YYYY-MM-DD), kept as text because it carries no time zone.
type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ClientID     string       `json:"clientId"`
	AssigneeID   string       `json:"assigneeId"`
	AssigneeName string       `json:"assigneeName,omitempty"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      string       `json:"dueDate"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
