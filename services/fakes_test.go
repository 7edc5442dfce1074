package services

import (
	"context"

	"task-manager/backend/models"
	"task-manager/backend/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo repositories.

type fakeTaskStore struct {
	tasks []models.Task
	err   error
}

func (f *fakeTaskStore) FindAll(ctx context.Context) ([]models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func (f *fakeTaskStore) FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	assigned := []models.Task{}
	for _, task := range f.tasks {
		if task.IsAssignedTo(userID) {
			assigned = append(assigned, task)
		}
	}
	return assigned, nil
}

func (f *fakeTaskStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return &f.tasks[i], nil
		}
	}
	return nil, repositories.ErrTaskNotFound
}

type fakeUserStore struct {
	users []models.User
	err   error
}

func (f *fakeUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

func (f *fakeUserStore) FindByRole(ctx context.Context, role string) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	matched := []models.User{}
	for _, user := range f.users {
		if user.Role == role {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].Email == email {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	stored := *user
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	f.users = append(f.users, stored)
	return stored.ID, nil
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return repositories.ErrUserNotFound
}
