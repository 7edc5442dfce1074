package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TaskDistribution holds status and priority counts for a task snapshot.
// Both maps always carry every named bucket, zero-filled when absent, and
// StatusCounts additionally carries the synthetic "All" total. Keys are
// whitespace-stripped status names ("In Progress" -> "InProgress") so chart
// clients can address them directly.
type TaskDistribution struct {
	StatusCounts   map[string]int
	PriorityCounts map[string]int
}

// UserTaskCounts is the per-assignee breakdown of assigned tasks by status.
type UserTaskCounts struct {
	UserID          primitive.ObjectID `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	PendingTasks    int                `json:"pendingTasks"`
	InProgressTasks int                `json:"inProgressTasks"`
	CompletedTasks  int                `json:"completedTasks"`
}

// UserWithTaskCounts decorates a full user record with its task counts for
// the admin user-management listing.
type UserWithTaskCounts struct {
	User
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

type DashboardStatistics struct {
	TotalTasks      int `json:"totalTasks"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
	OverdueTasks    int `json:"overdueTasks"`
}

type DashboardCharts struct {
	TaskDistribution   map[string]int `json:"taskDistribution"`
	TaskPriorityLevels map[string]int `json:"taskPriorityLevels"`
}

// DashboardData is rebuilt from a fresh snapshot on every call and is never
// cached; clients poll it on a fixed interval.
type DashboardData struct {
	Statistics  DashboardStatistics `json:"statistics"`
	Charts      DashboardCharts     `json:"charts"`
	RecentTasks []Task              `json:"recentTasks"`
}

// TaskWithDetails decorates a task with derived fields and resolved assignee
// profiles for list and detail responses. The AssignedTo field shadows the
// raw ObjectID slice on the embedded task.
type TaskWithDetails struct {
	Task
	AssignedTo      []UserSummary `json:"assignedTo"`
	Progress        int           `json:"progress"`
	AttachmentCount int           `json:"attachmentCount"`
}

type StatusSummary struct {
	All             int `json:"all"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

type TaskListResponse struct {
	Tasks         []TaskWithDetails `json:"tasks"`
	StatusSummary StatusSummary     `json:"statusSummary"`
}
