package poll

import "time"

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Option is one selectable answer.
type Option struct {
	ID            int64  `json:"id"`
	Text          string `json:"text"`
	ResponseCount int    `json:"response_count"`
}

// Statistics aggregates responses for a poll.
type Statistics struct {
	TotalResponses int                       `json:"total_responses"`
	OptionCounts   map[int64]int             `json:"option_counts,omitempty"`
	OptionPercent  map[int64]float64         `json:"option_percent,omitempty"`
	Demographics   map[string]map[string]int `json:"demographics,omitempty"`
}

// Poll represents polls as the client sees them.
type Poll struct {
	ID                  int64       `json:"id"`
	CompanyID           int64       `json:"company_id,omitempty"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	AllowMultipleChoice bool        `json:"allow_multiple_choice"`
	AllowTextResponse   bool        `json:"allow_text_response"`
	Options             []Option    `json:"options"`
	Status              Status      `json:"status"`
	ExpiresAt           *time.Time  `json:"expires_at,omitempty"`
	ClosedAt            *time.Time  `json:"closed_at,omitempty"`
	HasResponded        bool        `json:"has_responded"`
	Statistics          *Statistics `json:"statistics,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
}

func (p Poll) EntityID() int64 {
	return p.ID
}

func (p Poll) IsOpen() bool {
	return p.Status == StatusOpen
}

// CreateInput carries the fields for a poll creation call.
type CreateInput struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	AllowMultipleChoice bool       `json:"allow_multiple_choice"`
	AllowTextResponse   bool       `json:"allow_text_response"`
	Options             []string   `json:"options"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
}

// ResponseInput carries a response submission. TextResponse is only
// honoured by the backend when the poll allows text responses.
type ResponseInput struct {
	OptionIDs    []int64 `json:"option_ids"`
	TextResponse string  `json:"text_response,omitempty"`
}

// Merge overlays in onto old. Fields the incoming payload omitted keep
// their cached values; HasResponded is sticky once true, a partial refresh
// must not forget that the user answered.
func Merge(old, in Poll) Poll {
	out := in
	if in.CompanyID == 0 {
		out.CompanyID = old.CompanyID
	}
	if in.Title == "" {
		out.Title = old.Title
	}
	if in.Description == "" {
		out.Description = old.Description
	}
	if in.Options == nil {
		out.Options = old.Options
	}
	if in.Status == "" {
		out.Status = old.Status
	}
	if in.ExpiresAt == nil {
		out.ExpiresAt = old.ExpiresAt
	}
	if in.ClosedAt == nil {
		out.ClosedAt = old.ClosedAt
	}
	if in.Statistics == nil {
		out.Statistics = old.Statistics
	}
	if in.CreatedAt.IsZero() {
		out.CreatedAt = old.CreatedAt
	}
	if old.HasResponded {
		out.HasResponded = true
	}
	return out
}
