package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Password        string             `json:"-" bson:"password"`
	ProfileImageURL string             `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
	Role            string             `json:"role" bson:"role"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// UserSummary is the assignee shape embedded in task responses.
type UserSummary struct {
	ID              primitive.ObjectID `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	ProfileImageURL string             `json:"profileImageUrl,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// Principal identifies the authenticated caller. It is threaded explicitly
// through every service call rather than kept as ambient request state.
type Principal struct {
	ID   primitive.ObjectID
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
