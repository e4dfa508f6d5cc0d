package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Roles derived at registration.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account able to log into the site. It is never exposed as a resource;
// Hash and Salt stay server side.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	Username  string        `bson:"username" json:"-"`
	Hash      string        `bson:"hash" json:"-"`
	Salt      string        `bson:"salt" json:"-"`
	Role      string        `bson:"role" json:"-"`
	CreatedAt time.Time     `bson:"createdAt" json:"-"`
}

// PublicUser is the descriptor returned on a successful login.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Public returns the login descriptor; a missing role reads as RoleUser.
func (u *User) Public() PublicUser {
	role := u.Role
	if role == "" {
		role = RoleUser
	}
	return PublicUser{ID: u.ID.Hex(), Username: u.Username, Role: role}
}
