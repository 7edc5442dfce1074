package services

import (
	"context"
	"errors"
	"testing"

	"task-manager/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := &fakeUserStore{}
	svc := NewUserService(store, &fakeTaskStore{}, NewAnalyticsService())

	user, token, err := svc.Register(context.Background(), models.User{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	}, "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.Role != models.RoleUser {
		t.Errorf("Role = %q, want %q", user.Role, models.RoleUser)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if user.Password == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored password is not a valid bcrypt hash of the input: %v", err)
	}
}

func TestRegisterAdminInviteToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_INVITE_TOKEN", "let-me-in")
	svc := NewUserService(&fakeUserStore{}, &fakeTaskStore{}, NewAnalyticsService())

	user, _, err := svc.Register(context.Background(), models.User{
		Name:     "Boss",
		Email:    "boss@example.com",
		Password: "s3cret-pass",
	}, "let-me-in")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want %q", user.Role, models.RoleAdmin)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := &fakeUserStore{users: []models.User{
		{ID: primitive.NewObjectID(), Email: "ana@example.com"},
	}}
	svc := NewUserService(store, &fakeTaskStore{}, NewAnalyticsService())

	_, _, err := svc.Register(context.Background(), models.User{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	}, "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	store := &fakeUserStore{users: []models.User{
		{ID: primitive.NewObjectID(), Email: "ana@example.com", Password: string(hash), Role: models.RoleUser},
	}}
	svc := NewUserService(store, &fakeTaskStore{}, NewAnalyticsService())

	if _, _, err := svc.Login(context.Background(), "ana@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "right-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	user, token, err := svc.Login(context.Background(), "ana@example.com", "right-pass")
	if err != nil {
		t.Fatalf("Login with correct password: %v", err)
	}
	if token == "" || user.Email != "ana@example.com" {
		t.Errorf("unexpected login result: user=%+v token=%q", user, token)
	}
}

func TestListUsersWithTaskCounts(t *testing.T) {
	ana := models.User{ID: primitive.NewObjectID(), Name: "Ana", Email: "ana@example.com", Role: models.RoleUser}
	idle := models.User{ID: primitive.NewObjectID(), Name: "Idle", Email: "idle@example.com", Role: models.RoleUser}
	store := &fakeUserStore{users: []models.User{ana, idle}}
	tasks := &fakeTaskStore{tasks: []models.Task{
		{Status: models.StatusPending, AssignedTo: []primitive.ObjectID{ana.ID}},
		{Status: models.StatusInProgress, AssignedTo: []primitive.ObjectID{ana.ID}},
	}}
	svc := NewUserService(store, tasks, NewAnalyticsService())

	users, err := svc.ListUsersWithTaskCounts(context.Background())
	if err != nil {
		t.Fatalf("ListUsersWithTaskCounts: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}
	if users[0].PendingTasks != 1 || users[0].InProgressTasks != 1 || users[0].CompletedTasks != 0 {
		t.Errorf("counts for Ana = %+v", users[0])
	}
	if users[1].PendingTasks != 0 || users[1].InProgressTasks != 0 || users[1].CompletedTasks != 0 {
		t.Errorf("counts for Idle = %+v, want all zeros", users[1])
	}
}
