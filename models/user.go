package models

import "time"

// User roles as carried in the auth token.
const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)

// User is the minimal identity record the booking core needs: auto-accept
// preference and a delivery address for notifications. Account management
// lives elsewhere.
type User struct {
	ID         string    `bson:"id" json:"id"`
	Email      string    `bson:"email" json:"email"`
	Role       string    `bson:"role" json:"role"`
	AutoAccept bool      `bson:"auto_accept" json:"auto_accept"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
