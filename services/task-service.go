package services

import (
	"context"
	"fmt"

	"task-manager/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStore extends TaskReader with single-task lookup.
type TaskStore interface {
	TaskReader
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
}

// TaskService is the read-only task surface: listings and detail views with
// resolved assignee profiles and derived checklist progress. Task mutation
// lives elsewhere; nothing here writes back.
type TaskService struct {
	tasks     TaskStore
	users     UserReader
	analytics *AnalyticsService
}

func NewTaskService(tasks TaskStore, users UserReader, analytics *AnalyticsService) *TaskService {
	return &TaskService{tasks: tasks, users: users, analytics: analytics}
}

// ListTasks returns tasks visible to the principal, optionally filtered by
// status. The status summary is always computed over the unfiltered visible
// set so the filter tabs can show their counts.
func (s *TaskService) ListTasks(ctx context.Context, principal models.Principal, status models.TaskStatus) (*models.TaskListResponse, error) {
	var tasks []models.Task
	var err error
	if principal.IsAdmin() {
		tasks, err = s.tasks.FindAll(ctx)
	} else {
		tasks, err = s.tasks.FindByAssignee(ctx, principal.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %v", err)
	}

	dist := s.analytics.Aggregate(tasks)
	summary := models.StatusSummary{
		All:             dist.StatusCounts[models.StatusAll],
		PendingTasks:    dist.StatusCounts["Pending"],
		InProgressTasks: dist.StatusCounts["InProgress"],
		CompletedTasks:  dist.StatusCounts["Completed"],
	}

	if status != "" {
		filtered := []models.Task{}
		for _, task := range tasks {
			if task.Status == status {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}

	summaries, err := s.userSummaries(ctx)
	if err != nil {
		return nil, err
	}

	detailed := []models.TaskWithDetails{}
	for _, task := range tasks {
		detailed = append(detailed, withDetails(task, summaries))
	}

	return &models.TaskListResponse{Tasks: detailed, StatusSummary: summary}, nil
}

// GetTask returns a single task with resolved assignees and derived
// progress.
func (s *TaskService) GetTask(ctx context.Context, id primitive.ObjectID) (*models.TaskWithDetails, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summaries, err := s.userSummaries(ctx)
	if err != nil {
		return nil, err
	}

	detailed := withDetails(*task, summaries)
	return &detailed, nil
}

func (s *TaskService) userSummaries(ctx context.Context) (map[primitive.ObjectID]models.UserSummary, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %v", err)
	}
	summaries := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for i := range users {
		summaries[users[i].ID] = users[i].Summary()
	}
	return summaries, nil
}

func withDetails(task models.Task, summaries map[primitive.ObjectID]models.UserSummary) models.TaskWithDetails {
	assignees := []models.UserSummary{}
	for _, id := range task.AssignedTo {
		if summary, ok := summaries[id]; ok {
			assignees = append(assignees, summary)
		}
	}
	return models.TaskWithDetails{
		Task:            task,
		AssignedTo:      assignees,
		Progress:        task.Progress(),
		AttachmentCount: len(task.Attachments),
	}
}
