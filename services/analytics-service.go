package services

import (
	"strings"
	"time"

	"task-manager/backend/models"
)

// AnalyticsService computes aggregate task metrics. Every method is a pure
// function over the snapshot it is handed; the service holds no state and is
// safe for concurrent use.
type AnalyticsService struct{}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

// Aggregate counts tasks by status and priority. The three named status
// buckets and the synthetic "All" total are always present, as are the three
// priority buckets. A status or priority outside the known set counts toward
// "All" but lands in no named bucket.
func (s *AnalyticsService) Aggregate(tasks []models.Task) models.TaskDistribution {
	dist := models.TaskDistribution{
		StatusCounts: map[string]int{
			chartKey(string(models.StatusPending)):    0,
			chartKey(string(models.StatusInProgress)): 0,
			chartKey(string(models.StatusCompleted)):  0,
			models.StatusAll:                          0,
		},
		PriorityCounts: map[string]int{
			string(models.PriorityLow):    0,
			string(models.PriorityMedium): 0,
			string(models.PriorityHigh):   0,
		},
	}

	for _, task := range tasks {
		dist.StatusCounts[models.StatusAll]++
		switch task.Status {
		case models.StatusPending, models.StatusInProgress, models.StatusCompleted:
			dist.StatusCounts[chartKey(string(task.Status))]++
		}
		switch task.Priority {
		case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
			dist.PriorityCounts[string(task.Priority)]++
		}
	}

	return dist
}

// PerUserCounts breaks assigned-task counts down by status for every account
// with the "user" role, preserving the order of the user snapshot. Admins
// assign tasks rather than receive them and are skipped. A task assigned to
// several users counts once for each of them.
func (s *AnalyticsService) PerUserCounts(users []models.User, tasks []models.Task) []models.UserTaskCounts {
	counts := []models.UserTaskCounts{}
	for _, user := range users {
		if user.Role != models.RoleUser {
			continue
		}
		uc := models.UserTaskCounts{UserID: user.ID, Name: user.Name, Email: user.Email}
		for _, task := range tasks {
			if !task.IsAssignedTo(user.ID) {
				continue
			}
			switch task.Status {
			case models.StatusPending:
				uc.PendingTasks++
			case models.StatusInProgress:
				uc.InProgressTasks++
			case models.StatusCompleted:
				uc.CompletedTasks++
			}
		}
		counts = append(counts, uc)
	}
	return counts
}

// CountOverdue counts tasks whose due date lies before now and that are not
// completed. Tasks without a due date are never overdue.
func (s *AnalyticsService) CountOverdue(tasks []models.Task, now time.Time) int {
	overdue := 0
	for _, task := range tasks {
		if task.Status == models.StatusCompleted || task.DueDate.IsZero() {
			continue
		}
		if task.DueDate.Before(now) {
			overdue++
		}
	}
	return overdue
}

// chartKey strips whitespace from a status name ("In Progress" ->
// "InProgress") so chart clients can address buckets directly.
func chartKey(name string) string {
	return strings.ReplaceAll(name, " ", "")
}
