package domain

import (
	"errors"
	"time"
)

var ErrForbidden = errors.New("access forbidden")

// MuteEntry suppresses one author's messages within one province. At most one
// entry exists per (province, username) pair.
type MuteEntry struct {
	Province  string    `json:"province" bson:"province"`
	Username  string    `json:"username" bson:"username"`
	MutedBy   string    `json:"muted_by" bson:"muted_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Moderation audit actions.
const (
	ActionMute   = "mute"
	ActionUnmute = "unmute"
)

// ModerationAction is an audit record of a mute or unmute, persisted
// asynchronously off the request path.
type ModerationAction struct {
	Action    string    `json:"action" bson:"action"`
	Actor     string    `json:"actor" bson:"actor"`
	Target    string    `json:"target" bson:"target"`
	Province  string    `json:"province" bson:"province"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
