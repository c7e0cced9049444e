// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core entity in the system, representing a single account.
// The ID is the auth provider's stable user identifier.
type User struct {
	ID       string // Stable identifier assigned by the auth collaborator.
	Username string // Display name shown across dashboards and chat.
	Email    string // Primary contact email, also the login identifier.
	Role     Role   // Authorization role; Level is always derived from it.
	Address  string
	Phone    string
	Blocked  bool    // Set by supervisor moderation; blocked users cannot act.
	PhotoURL string  // Profile photo location, empty when never uploaded.
	Hobbies  []Hobby // Ordered list of profile hobby records.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hobby is a single ordered key/value record on a user profile.
type Hobby struct {
	Name  string
	Value string
}

// Level returns the authorization tier derived from the user's role.
func (u *User) Level() Level {
	return u.Role.Level()
}

// ProfileSnapshot is the denormalized subset of a user embedded into orders
// and reports at creation time.
type ProfileSnapshot struct {
	UserID   string
	Username string
	Email    string
	Address  string
	Phone    string
	Blocked  bool
}

// Snapshot captures the denormalized profile fields of the user.
func (u *User) Snapshot() ProfileSnapshot {
	return ProfileSnapshot{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Address:  u.Address,
		Phone:    u.Phone,
		Blocked:  u.Blocked,
	}
}
