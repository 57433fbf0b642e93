package chat

import "github.com/suPer8Hu/gopherchat/internal/api"

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Entry is one rendered line of the conversation. ID is local to this
// client and never sent to the server.
type Entry struct {
	ID      string
	Message api.Message
	Status  Status
}

// Mine reports whether the current user wrote the message (avatar "me").
func (e Entry) Mine() bool {
	return !e.Message.FromBot()
}
