package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// StatusAll is the synthetic bucket that holds the total task count in
// aggregated distributions.
const StatusAll = "All"

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

type ChecklistItem struct {
	Text      string `json:"text" bson:"text"`
	Completed bool   `json:"completed" bson:"completed"`
}

type Task struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	Status      TaskStatus           `json:"status" bson:"status"`
	Priority    TaskPriority         `json:"priority" bson:"priority"`
	AssignedTo  []primitive.ObjectID `json:"assignedTo" bson:"assignedTo"`
	DueDate     time.Time            `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	Checklist   []ChecklistItem      `json:"todoChecklist" bson:"todoChecklist"`
	Attachments []string             `json:"attachments" bson:"attachments"`
}

// Progress is the checklist completion percentage. It is always derived from
// the checklist, never stored; an empty checklist reports 0. A completed task
// with progress below 100 is legal data and must be tolerated downstream.
func (t *Task) Progress() int {
	if len(t.Checklist) == 0 {
		return 0
	}
	done := 0
	for _, item := range t.Checklist {
		if item.Completed {
			done++
		}
	}
	return done * 100 / len(t.Checklist)
}

// IsAssignedTo reports whether the given user appears among the task's
// assignees.
func (t *Task) IsAssignedTo(userID primitive.ObjectID) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}
