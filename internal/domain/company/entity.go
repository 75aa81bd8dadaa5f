package company

import "time"

// Summary is the denormalized company slice embedded in other entities.
type Summary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Company represents a directory entry.
type Company struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	Website       string    `json:"website"`
	OpenPositions int       `json:"open_positions"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c Company) EntityID() int64 {
	return c.ID
}

func (c Company) Summarize() Summary {
	return Summary{ID: c.ID, Name: c.Name, Category: c.Category}
}

// Filter narrows a directory listing. Zero values match everything.
type Filter struct {
	Category string
	Search   string
}

// Merge overlays in onto old, keeping old values for fields the incoming
// payload omitted.
func Merge(old, in Company) Company {
	out := in
	if in.Name == "" {
		out.Name = old.Name
	}
	if in.Category == "" {
		out.Category = old.Category
	}
	if in.Location == "" {
		out.Location = old.Location
	}
	if in.Description == "" {
		out.Description = old.Description
	}
	if in.Website == "" {
		out.Website = old.Website
	}
	if in.OpenPositions == 0 {
		out.OpenPositions = old.OpenPositions
	}
	if in.UpdatedAt.IsZero() {
		out.UpdatedAt = old.UpdatedAt
	}
	return out
}
