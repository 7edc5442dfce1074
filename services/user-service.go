package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"task-manager/backend/models"
	"task-manager/backend/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
)

// UserStore extends UserReader with lookup and write operations used by the
// account plumbing.
type UserStore interface {
	UserReader
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	Update(ctx context.Context, user *models.User) error
}

type UserService struct {
	users     UserStore
	tasks     TaskReader
	analytics *AnalyticsService
}

func NewUserService(users UserStore, tasks TaskReader, analytics *AnalyticsService) *UserService {
	return &UserService{users: users, tasks: tasks, analytics: analytics}
}

// Register creates an account and returns it with a signed token. The admin
// role is granted only when the request carries the matching invite token
// from ADMIN_INVITE_TOKEN; everyone else registers as a regular user.
func (s *UserService) Register(ctx context.Context, user models.User, inviteToken string) (*models.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, user.Email); err == nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %v", err)
	}
	user.Password = string(hashedPassword)

	user.Role = models.RoleUser
	adminToken := os.Getenv("ADMIN_INVITE_TOKEN")
	if adminToken != "" && inviteToken == adminToken {
		user.Role = models.RoleAdmin
	}

	id, err := s.users.Insert(ctx, &user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %v", err)
	}
	return &user, token, nil
}

// Login verifies the password and returns the user with a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %v", err)
	}
	return user, token, nil
}

// UpdateProfile applies non-empty fields of the update to the principal's
// own profile. A new password is re-hashed before storage.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email, password string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %v", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsersWithTaskCounts returns every regular-user account decorated with
// its assigned-task counts, for the admin user-management view.
func (s *UserService) ListUsersWithTaskCounts(ctx context.Context) ([]models.UserWithTaskCounts, error) {
	users, err := s.users.FindByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %v", err)
	}
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %v", err)
	}

	countsByID := make(map[primitive.ObjectID]models.UserTaskCounts)
	for _, counts := range s.analytics.PerUserCounts(users, tasks) {
		countsByID[counts.UserID] = counts
	}

	decorated := []models.UserWithTaskCounts{}
	for _, user := range users {
		counts := countsByID[user.ID]
		decorated = append(decorated, models.UserWithTaskCounts{
			User:            user,
			PendingTasks:    counts.PendingTasks,
			InProgressTasks: counts.InProgressTasks,
			CompletedTasks:  counts.CompletedTasks,
		})
	}
	return decorated, nil
}

func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}
