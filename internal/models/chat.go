package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Chat message roles. The assistant side is "model", matching the role set
// the generative API uses on the wire.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// ChatSessionRecord is the stored form of a conversation transcript.
// Messages holds the full JSON-encoded message list; every save rewrites it
// wholesale.
type ChatSessionRecord struct {
	ID        string         `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID    string         `gorm:"size:255;not null;index" json:"userId"`
	Title     string         `gorm:"size:255" json:"title"`
	Messages  datatypes.JSON `gorm:"type:json" json:"messages"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// TableName overrides the table name for ChatSessionRecord
func (ChatSessionRecord) TableName() string {
	return "chat_sessions"
}

// ChatSession is the API form of a session, with messages decoded.
type ChatSession struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Session converts a stored record to its API form. A messages column that
// fails to decode yields an empty message list rather than an error; the
// transcript is display data, not something worth failing a list call over.
func (r ChatSessionRecord) Session() ChatSession {
	var messages []ChatMessage
	if len(r.Messages) > 0 {
		_ = json.Unmarshal(r.Messages, &messages)
	}
	if messages == nil {
		messages = []ChatMessage{}
	}
	return ChatSession{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Messages:  messages,
		UpdatedAt: r.UpdatedAt,
	}
}
