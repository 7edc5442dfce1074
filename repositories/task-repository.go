package repositories

import (
	"context"
	"errors"
	"fmt"

	"task-manager/backend/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository is the read side of the task collection. All reads run
// through a circuit breaker: the dashboard is polled on a fixed interval, so
// a down database should fail fast instead of stacking up slow requests.
type TaskRepository struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewTaskRepository(collection *mongo.Collection, breaker *gobreaker.CircuitBreaker) *TaskRepository {
	return &TaskRepository{collection: collection, breaker: breaker}
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	return r.find(ctx, bson.M{})
}

func (r *TaskRepository) FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return r.find(ctx, bson.M{"assignedTo": userID})
}

func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		var task models.Task
		err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
		if err == mongo.ErrNoDocuments {
			return nil, ErrTaskNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve task: %v", err)
		}
		normalizeTask(&task)
		return &task, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Task), nil
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		cursor, err := r.collection.Find(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
		}
		defer cursor.Close(ctx)

		tasks := []models.Task{}
		for cursor.Next(ctx) {
			var task models.Task
			if err := cursor.Decode(&task); err != nil {
				return nil, fmt.Errorf("failed to decode task: %v", err)
			}
			normalizeTask(&task)
			tasks = append(tasks, task)
		}

		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("cursor error: %v", err)
		}

		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Task), nil
}

// normalizeTask applies safe defaults so legacy documents degrade gracefully
// instead of failing the whole read. Unknown status or priority strings are
// kept verbatim; the analytics layer decides how to bucket them.
func normalizeTask(task *models.Task) {
	if task.AssignedTo == nil {
		task.AssignedTo = []primitive.ObjectID{}
	}
	if task.Checklist == nil {
		task.Checklist = []models.ChecklistItem{}
	}
	if task.Attachments == nil {
		task.Attachments = []string{}
	}
}
