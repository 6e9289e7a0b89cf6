package users

import "time"

// User is the account record. PostIDs is a denormalized list of posts owned by
// the user, maintained alongside post writes.
type User struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	PostIDs   []string  `json:"posts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName is the display name snapshotted onto posts at creation time.
func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}
