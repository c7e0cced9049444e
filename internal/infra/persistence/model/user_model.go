package model

// UserDoc mirrors a users/{id} record. The role is stored next to its derived
// level so legacy readers of the tree keep working; the level is rewritten on
// every role change and never trusted on read.
type UserDoc struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Level     int        `json:"level"`
	Address   string     `json:"address,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Blocked   bool       `json:"blocked,omitempty"`
	PhotoURL  string     `json:"photoUrl,omitempty"`
	Hobbies   []HobbyDoc `json:"hobbies,omitempty"`
	CreatedAt any        `json:"createdAt,omitempty"`
	UpdatedAt any        `json:"updatedAt,omitempty"`
}

// HobbyDoc is one ordered hobby record on a user profile.
type HobbyDoc struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SnapshotDoc is the denormalized profile subset embedded into orders and
// reports at creation time.
type SnapshotDoc struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Blocked  bool   `json:"blocked,omitempty"`
}
