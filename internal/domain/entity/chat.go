package entity

import "time"

// RoomID derives the deterministic chat room identifier for an unordered pair
// of user IDs. The lexicographically smaller ID comes first, so both
// participants resolve the same room.
func RoomID(a, b string) string {
	if a < b {
		return a + "-" + b
	}

	return b + "-" + a
}

// ChatRoom is the shared per-room metadata record, distinct from each
// participant's private index entry. It is bootstrapped exactly once on first
// contact and never deleted.
type ChatRoom struct {
	ID             string
	ParticipantIDs []string // Exactly two user IDs.
	LastMessage    string
	LastTimestamp  time.Time
}

// HasParticipant reports whether the user is a member of the room.
func (r *ChatRoom) HasParticipant(userID string) bool {
	for _, id := range r.ParticipantIDs {
		if id == userID {
			return true
		}
	}

	return false
}

// ChatIndexEntry is a participant's private listing of a room, recording the
// counterpart's identity and the room's latest activity.
type ChatIndexEntry struct {
	RoomID          string
	CounterpartID   string
	CounterpartName string
	LastMessage     string
	LastTimestamp   time.Time
}

// ChatMessage is one append-only message in a room's log. The timestamp is
// server-assigned and monotonically non-decreasing within a room.
type ChatMessage struct {
	ID        string
	SenderID  string
	Text      string
	Timestamp time.Time
}
