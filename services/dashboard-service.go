package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"task-manager/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recentTaskCount is the fixed size of the dashboard's recent-tasks slice.
const recentTaskCount = 10

// TaskReader is the read contract the dashboard and report services need
// from the task collection.
type TaskReader interface {
	FindAll(ctx context.Context) ([]models.Task, error)
	FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
}

// UserReader is the read contract the report and user services need from the
// user collection.
type UserReader interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByRole(ctx context.Context, role string) ([]models.User, error)
}

type DashboardService struct {
	tasks     TaskReader
	analytics *AnalyticsService
	now       func() time.Time
}

func NewDashboardService(tasks TaskReader, analytics *AnalyticsService) *DashboardService {
	return &DashboardService{tasks: tasks, analytics: analytics, now: time.Now}
}

// GetDashboard recomputes the dashboard from a fresh task snapshot. Admins
// see every task; regular users see only tasks assigned to them. Two calls
// with no task mutation in between yield identical counts, which is what
// allows clients to poll this endpoint naively.
func (s *DashboardService) GetDashboard(ctx context.Context, principal models.Principal) (*models.DashboardData, error) {
	var tasks []models.Task
	var err error
	if principal.IsAdmin() {
		tasks, err = s.tasks.FindAll(ctx)
	} else {
		tasks, err = s.tasks.FindByAssignee(ctx, principal.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task snapshot: %v", err)
	}

	dist := s.analytics.Aggregate(tasks)

	return &models.DashboardData{
		Statistics: models.DashboardStatistics{
			TotalTasks:      dist.StatusCounts[models.StatusAll],
			PendingTasks:    dist.StatusCounts["Pending"],
			InProgressTasks: dist.StatusCounts["InProgress"],
			CompletedTasks:  dist.StatusCounts["Completed"],
			OverdueTasks:    s.analytics.CountOverdue(tasks, s.now()),
		},
		Charts: models.DashboardCharts{
			TaskDistribution:   dist.StatusCounts,
			TaskPriorityLevels: dist.PriorityCounts,
		},
		RecentTasks: recentTasks(tasks, recentTaskCount),
	}, nil
}

// recentTasks returns the n most recently created tasks, newest first,
// without reordering the caller's slice.
func recentTasks(tasks []models.Task, n int) []models.Task {
	recent := make([]models.Task, len(tasks))
	copy(recent, tasks)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}
