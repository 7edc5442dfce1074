package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"task-manager/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Column headers for the two report modes. Every row built below must carry
// exactly this many columns; the export encoder enforces it.
var (
	TaskReportHeader = []string{"Task ID", "Title", "Description", "Priority", "Status", "Due Date", "Assigned To"}
	UserReportHeader = []string{"Name", "Email", "Pending Tasks", "In Progress Tasks", "Completed Tasks"}
)

// ReportService flattens task and user snapshots into export-ready rows.
// Rows keep the retrieval order of the underlying snapshot; no re-sorting is
// imposed here.
type ReportService struct {
	tasks     TaskReader
	users     UserReader
	analytics *AnalyticsService
}

func NewReportService(tasks TaskReader, users UserReader, analytics *AnalyticsService) *ReportService {
	return &ReportService{tasks: tasks, users: users, analytics: analytics}
}

// TaskReport builds one row per task. An empty task collection yields zero
// rows, not an error.
func (s *ReportService) TaskReport(ctx context.Context) ([][]string, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for report: %v", err)
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users for report: %v", err)
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}

	rows := [][]string{}
	for _, task := range tasks {
		rows = append(rows, []string{
			task.ID.Hex(),
			task.Title,
			task.Description,
			string(task.Priority),
			string(task.Status),
			formatDueDate(task.DueDate),
			assigneeNames(task, names),
		})
	}
	return rows, nil
}

// UserReport builds one row per account with the "user" role, carrying that
// user's assigned-task counts broken down by status.
func (s *ReportService) UserReport(ctx context.Context) ([][]string, error) {
	users, err := s.users.FindByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load users for report: %v", err)
	}
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for report: %v", err)
	}

	rows := [][]string{}
	for _, counts := range s.analytics.PerUserCounts(users, tasks) {
		rows = append(rows, []string{
			counts.Name,
			counts.Email,
			strconv.Itoa(counts.PendingTasks),
			strconv.Itoa(counts.InProgressTasks),
			strconv.Itoa(counts.CompletedTasks),
		})
	}
	return rows, nil
}

// formatDueDate renders a due date as an absolute date string, or the
// literal "N/A" when the task has none.
func formatDueDate(due time.Time) string {
	if due.IsZero() {
		return "N/A"
	}
	return due.Format("2006-01-02")
}

// assigneeNames joins the assignees' display names in assignedTo order, not
// alphabetically. Assignee IDs with no matching user record are skipped.
func assigneeNames(task models.Task, names map[primitive.ObjectID]string) string {
	parts := []string{}
	for _, id := range task.AssignedTo {
		if name, ok := names[id]; ok {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "Unassigned"
	}
	return strings.Join(parts, ", ")
}
