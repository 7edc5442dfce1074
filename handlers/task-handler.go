package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"task-manager/backend/logging"
	"task-manager/backend/middleware"
	"task-manager/backend/models"
	"task-manager/backend/repositories"
	"task-manager/backend/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	TaskService      *services.TaskService
	DashboardService *services.DashboardService
}

func NewTaskHandler(taskService *services.TaskService, dashboardService *services.DashboardService) *TaskHandler {
	return &TaskHandler{TaskService: taskService, DashboardService: dashboardService}
}

// GetTasks lists tasks visible to the caller, optionally filtered with
// ?status=. Admins see every task; regular users only their assignments.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	status := models.TaskStatus(r.URL.Query().Get("status"))
	response, err := h.TaskService.ListTasks(r.Context(), principal, status)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_LIST_FAILED, Description: Failed to list tasks for %s: %v", principal.ID.Hex(), err)
		http.Error(w, "Failed to load tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid task ID format", http.StatusBadRequest)
		return
	}

	task, err := h.TaskService.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			http.Error(w, "Task not found", http.StatusNotFound)
			return
		}
		logging.Logger.Errorf("Event ID: TASK_FETCH_FAILED, Description: Failed to fetch task %s: %v", vars["id"], err)
		http.Error(w, "Failed to load task", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// GetDashboardData returns the polled dashboard snapshot, scoped by the
// caller's role. A failed poll is a plain 500; the client keeps its last
// good snapshot until the next poll succeeds.
func (h *TaskHandler) GetDashboardData(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	data, err := h.DashboardService.GetDashboard(r.Context(), principal)
	if err != nil {
		logging.Logger.Errorf("Event ID: DASHBOARD_FAILED, Description: Failed to build dashboard for %s: %v", principal.ID.Hex(), err)
		http.Error(w, "Failed to load dashboard data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
