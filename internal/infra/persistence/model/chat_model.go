package model

// ChatRoomDoc mirrors a chats/meta/{roomId} record shared by both
// participants.
type ChatRoomDoc struct {
	Participants  []string `json:"participants"`
	LastMessage   string   `json:"lastMessage,omitempty"`
	LastTimestamp any      `json:"lastTimestamp,omitempty"`
}

// ChatIndexDoc mirrors a chats/index/{userId}/{roomId} private listing entry.
// The room ID is the record key.
type ChatIndexDoc struct {
	CounterpartID   string `json:"counterpartId"`
	CounterpartName string `json:"counterpartName"`
	LastMessage     string `json:"lastMessage,omitempty"`
	LastTimestamp   any    `json:"lastTimestamp,omitempty"`
}

// ChatMessageDoc mirrors a chats/messages/{roomId}/{msgId} record. The
// message ID is the push key, which orders the log chronologically.
type ChatMessageDoc struct {
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp any    `json:"timestamp,omitempty"`
}
