package favourite

import (
	"time"

	"jobmatch-client/internal/domain/company"

	"github.com/google/uuid"
)

// Favourite marks one company as favourited by the current user. At most
// one Favourite exists per company.
type Favourite struct {
	ID        int64            `json:"id"`
	CompanyID int64            `json:"company_id"`
	Company   *company.Summary `json:"company,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (f Favourite) EntityID() int64 {
	return f.ID
}

// IsPlaceholder reports whether the entry was created optimistically on
// the client and has not been confirmed by the server. Placeholder ids are
// negative so they can never collide with server-assigned ones.
func (f Favourite) IsPlaceholder() bool {
	return f.ID < 0
}

// NewPlaceholder builds the optimistic entry inserted before the add call
// round-trips.
func NewPlaceholder(companyID int64) Favourite {
	return Favourite{
		ID:        -int64(uuid.New().ID()) - 1,
		CompanyID: companyID,
		CreatedAt: time.Now(),
	}
}

// Merge overlays in onto old; fields the incoming payload omitted keep
// their cached values.
func Merge(old, in Favourite) Favourite {
	out := in
	if in.CompanyID == 0 {
		out.CompanyID = old.CompanyID
	}
	if in.Company == nil {
		out.Company = old.Company
	}
	if in.CreatedAt.IsZero() {
		out.CreatedAt = old.CreatedAt
	}
	return out
}
