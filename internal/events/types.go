package events

import (
	"strings"
	"time"
)

const (
	EventTypeMessageCreated = "message.created"
	EventTypeMessageRead    = "message.read"
)

const AggregateMessage = "message"

const userChannelPrefix = "channel:user:"

// UserChannelPattern matches every per-user channel.
const UserChannelPattern = userChannelPrefix + "*"

// UserChannel is the channel a user's realtime connections listen on.
func UserChannel(username string) string {
	return userChannelPrefix + username
}

// UsernameFromChannel is the inverse of UserChannel.
func UsernameFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, userChannelPrefix) {
		return "", false
	}
	username := strings.TrimPrefix(channel, userChannelPrefix)
	return username, username != ""
}

type MessageCreatedPayload struct {
	ID           string    `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

type MessageReadPayload struct {
	ID     string    `json:"id"`
	ReadBy string    `json:"read_by"`
	ReadAt time.Time `json:"read_at"`
}
