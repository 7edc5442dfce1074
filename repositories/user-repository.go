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

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewUserRepository(collection *mongo.Collection, breaker *gobreaker.CircuitBreaker) *UserRepository {
	return &UserRepository{collection: collection, breaker: breaker}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *UserRepository) FindByRole(ctx context.Context, role string) ([]models.User, error) {
	return r.find(ctx, bson.M{"role": role})
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		res, err := r.collection.InsertOne(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to save user: %v", err)
		}
		return res.InsertedID.(primitive.ObjectID), nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.(primitive.ObjectID), nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
		if err != nil {
			return nil, fmt.Errorf("failed to update user: %v", err)
		}
		if res.MatchedCount == 0 {
			return nil, ErrUserNotFound
		}
		return nil, nil
	})
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		var user models.User
		err := r.collection.FindOne(ctx, filter).Decode(&user)
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve user: %v", err)
		}
		return &user, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.User), nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		cursor, err := r.collection.Find(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve users: %v", err)
		}
		defer cursor.Close(ctx)

		users := []models.User{}
		for cursor.Next(ctx) {
			var user models.User
			if err := cursor.Decode(&user); err != nil {
				return nil, fmt.Errorf("failed to decode user: %v", err)
			}
			users = append(users, user)
		}

		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("cursor error: %v", err)
		}

		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.User), nil
}
