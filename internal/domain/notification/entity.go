package notification

import "time"

// Notification is one entry in the live feed pushed over the websocket.
type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CompanyID int64     `json:"company_id,omitempty"`
	PollID    int64     `json:"poll_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n Notification) EntityID() int64 {
	return n.ID
}

// Merge overlays in onto old; Read is sticky once true so a replayed
// feed entry cannot un-read a notification.
func Merge(old, in Notification) Notification {
	out := in
	if in.Type == "" {
		out.Type = old.Type
	}
	if in.Message == "" {
		out.Message = old.Message
	}
	if in.CreatedAt.IsZero() {
		out.CreatedAt = old.CreatedAt
	}
	if old.Read {
		out.Read = true
	}
	return out
}
