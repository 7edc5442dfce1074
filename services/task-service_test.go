package services

import (
	"context"
	"errors"
	"testing"

	"task-manager/backend/models"
	"task-manager/backend/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListTasksStatusFilterKeepsFullSummary(t *testing.T) {
	store := &fakeTaskStore{tasks: []models.Task{
		{ID: primitive.NewObjectID(), Status: models.StatusPending},
		{ID: primitive.NewObjectID(), Status: models.StatusPending},
		{ID: primitive.NewObjectID(), Status: models.StatusCompleted},
	}}
	svc := NewTaskService(store, &fakeUserStore{}, NewAnalyticsService())

	response, err := svc.ListTasks(context.Background(), models.Principal{Role: models.RoleAdmin}, models.StatusCompleted)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}

	if len(response.Tasks) != 1 {
		t.Errorf("len(Tasks) = %d, want 1 (filtered)", len(response.Tasks))
	}
	// Summary stays computed over the unfiltered visible set.
	if response.StatusSummary.All != 3 || response.StatusSummary.PendingTasks != 2 || response.StatusSummary.CompletedTasks != 1 {
		t.Errorf("StatusSummary = %+v, want all 3, pending 2, completed 1", response.StatusSummary)
	}
}

func TestListTasksUserScope(t *testing.T) {
	me := primitive.NewObjectID()
	store := &fakeTaskStore{tasks: []models.Task{
		{ID: primitive.NewObjectID(), Status: models.StatusPending, AssignedTo: []primitive.ObjectID{me}},
		{ID: primitive.NewObjectID(), Status: models.StatusPending},
	}}
	svc := NewTaskService(store, &fakeUserStore{}, NewAnalyticsService())

	response, err := svc.ListTasks(context.Background(), models.Principal{ID: me, Role: models.RoleUser}, "")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}

	if len(response.Tasks) != 1 {
		t.Errorf("len(Tasks) = %d, want 1 (assigned only)", len(response.Tasks))
	}
	if response.StatusSummary.All != 1 {
		t.Errorf("StatusSummary.All = %d, want 1", response.StatusSummary.All)
	}
}

func TestListTasksDecoratesTasks(t *testing.T) {
	ana := models.User{ID: primitive.NewObjectID(), Name: "Ana", Email: "ana@example.com", Role: models.RoleUser}
	store := &fakeTaskStore{tasks: []models.Task{{
		ID:         primitive.NewObjectID(),
		Status:     models.StatusInProgress,
		AssignedTo: []primitive.ObjectID{ana.ID},
		Checklist: []models.ChecklistItem{
			{Text: "design", Completed: true},
			{Text: "build", Completed: false},
		},
		Attachments: []string{"spec.pdf", "notes.txt"},
	}}}
	svc := NewTaskService(store, &fakeUserStore{users: []models.User{ana}}, NewAnalyticsService())

	response, err := svc.ListTasks(context.Background(), models.Principal{Role: models.RoleAdmin}, "")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}

	task := response.Tasks[0]
	if task.Progress != 50 {
		t.Errorf("Progress = %d, want 50", task.Progress)
	}
	if task.AttachmentCount != 2 {
		t.Errorf("AttachmentCount = %d, want 2", task.AttachmentCount)
	}
	if len(task.AssignedTo) != 1 || task.AssignedTo[0].Name != "Ana" {
		t.Errorf("AssignedTo = %v, want resolved profile for Ana", task.AssignedTo)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	svc := NewTaskService(&fakeTaskStore{}, &fakeUserStore{}, NewAnalyticsService())

	_, err := svc.GetTask(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, repositories.ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}
