package domain

// TaskStatusCount is one slice of the dashboard status breakdown.
type TaskStatusCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
	Color string `json:"color"`
}

// Stats is the derived dashboard snapshot for one principal's scope.
// It is cached with a short TTL and always reconstructable from the
// client and task collections; it is never the source of truth.
type Stats struct {
	Clients      int64             `json:"clients"`
	Tasks        int64             `json:"tasks"`
	TaskStatuses []TaskStatusCount `json:"taskStatuses"`
}

// Fixed display metadata for the status breakdown.
const (
	labelPending    = "to-do"
	labelInProgress = "in progress"
	labelCompleted  = "done"

	colorPending    = "#3B82F6"
	colorInProgress = "#F59E0B"
	colorCompleted  = "#10B981"
)

// BuildTaskStatusCounts turns a raw status→count map into the fixed-order
// dashboard breakdown. All three canonical statuses are always present;
// statuses absent from the map report zero.
func BuildTaskStatusCounts(counts map[TaskStatus]int64) []TaskStatusCount {
	return []TaskStatusCount{
		{Label: labelPending, Count: counts[TaskStatusPending], Color: colorPending},
		{Label: labelInProgress, Count: counts[TaskStatusInProgress], Color: colorInProgress},
		{Label: labelCompleted, Count: counts[TaskStatusCompleted], Color: colorCompleted},
	}
}
