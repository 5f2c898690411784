package domain

import (
	"errors"
	"time"
)

var ErrEmptyMessage = errors.New("message content is empty")
var ErrNoProvince = errors.New("no province selected")
var ErrAuthorMuted = errors.New("author is muted in this province")

// Message is a single chat entry. Messages are append-only: once written they
// are never edited or deleted, only hidden from reads by a mute entry.
type Message struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	Author    string    `json:"author" bson:"author"`
	Province  string    `json:"province" bson:"province"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// MessageView is the read-side projection returned to clients. The author's
// role is resolved at read time; it is not stored on the message.
type MessageView struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
