package rest

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"jobmatch-client/internal/domain/company"
	"jobmatch-client/internal/domain/favourite"
	"jobmatch-client/internal/domain/poll"
)

// Wire types tolerate the backend's field-name drift: each logical field
// reads every alias the backend has been seen emitting, and the normalize
// functions below are the single place where that drift is resolved into
// the internal entities.

type companyWire struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	CompanyName   string      `json:"company_name"`
	Category      string      `json:"category"`
	Industry      string      `json:"industry"`
	Location      string      `json:"location"`
	Description   string      `json:"description"`
	Website       string      `json:"website"`
	OpenPositions *int        `json:"open_positions"`
	JobsCount     *int        `json:"jobs_count"`
	UpdatedAt     string      `json:"updated_at"`
}

type favouriteWire struct {
	ID        json.Number  `json:"id"`
	CompanyID json.Number  `json:"company_id"`
	Company   *companyWire `json:"company"`
	CreatedAt string       `json:"created_at"`
}

type optionWire struct {
	ID            json.Number `json:"id"`
	OptionID      json.Number `json:"option_id"`
	Text          string      `json:"text"`
	OptionText    string      `json:"option_text"`
	Label         string      `json:"label"`
	ResponseCount *int        `json:"response_count"`
	Votes         *int        `json:"votes"`
	Count         *int        `json:"count"`
}

type statsWire struct {
	TotalResponses *int                      `json:"total_responses"`
	Total          *int                      `json:"total"`
	OptionCounts   map[string]int            `json:"option_counts"`
	PerOption      map[string]int            `json:"per_option"`
	OptionPercent  map[string]float64        `json:"option_percentages"`
	Percentages    map[string]float64        `json:"percentages"`
	Demographics   map[string]map[string]int `json:"demographics"`
}

type pollWire struct {
	ID                  json.Number  `json:"id"`
	PollID              json.Number  `json:"poll_id"`
	CompanyID           json.Number  `json:"company_id"`
	Title               string       `json:"title"`
	Question            string       `json:"question"`
	Description         string       `json:"description"`
	AllowMultipleChoice *bool        `json:"allow_multiple_choice"`
	MultipleChoice      *bool        `json:"multiple_choice"`
	AllowsMultiple      *bool        `json:"allows_multiple"`
	AllowTextResponse   *bool        `json:"allow_text_response"`
	AllowFreeText       *bool        `json:"allow_free_text"`
	Status              string       `json:"status"`
	ExpiresAt           string       `json:"expires_at"`
	EndsAt              string       `json:"ends_at"`
	ClosedAt            string       `json:"closed_at"`
	Options             []optionWire `json:"options"`
	Choices             []optionWire `json:"choices"`
	HasResponded        *bool        `json:"has_responded"`
	UserResponded       *bool        `json:"user_responded"`
	Statistics          *statsWire   `json:"statistics"`
	Stats               *statsWire   `json:"stats"`
	CreatedAt           string       `json:"created_at"`
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstBool(values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return false
}

func firstInt(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func numberToID(values ...json.Number) int64 {
	for _, v := range values {
		if v == "" {
			continue
		}
		if id, err := v.Int64(); err == nil {
			return id
		}
	}
	return 0
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	// some endpoints send epoch seconds
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil && secs > 0 {
		ts := time.Unix(secs, 0)
		return &ts
	}
	return nil
}

func normalizeCompany(w companyWire) company.Company {
	out := company.Company{
		ID:            numberToID(w.ID),
		Name:          firstString(w.Name, w.CompanyName),
		Category:      firstString(w.Category, w.Industry),
		Location:      w.Location,
		Description:   w.Description,
		Website:       w.Website,
		OpenPositions: firstInt(w.OpenPositions, w.JobsCount),
	}
	if ts := parseTime(w.UpdatedAt); ts != nil {
		out.UpdatedAt = *ts
	}
	return out
}

func normalizeFavourite(w favouriteWire) favourite.Favourite {
	out := favourite.Favourite{
		ID:        numberToID(w.ID),
		CompanyID: numberToID(w.CompanyID),
	}
	if w.Company != nil {
		summary := normalizeCompany(*w.Company).Summarize()
		out.Company = &summary
		if out.CompanyID == 0 {
			out.CompanyID = summary.ID
		}
	}
	if ts := parseTime(w.CreatedAt); ts != nil {
		out.CreatedAt = *ts
	}
	return out
}

func normalizeOption(w optionWire) poll.Option {
	return poll.Option{
		ID:            numberToID(w.ID, w.OptionID),
		Text:          firstString(w.Text, w.OptionText, w.Label),
		ResponseCount: firstInt(w.ResponseCount, w.Votes, w.Count),
	}
}

func idKeyedCounts(values ...map[string]int) map[int64]int {
	for _, m := range values {
		if m == nil {
			continue
		}
		out := make(map[int64]int, len(m))
		for key, count := range m {
			if id, err := strconv.ParseInt(key, 10, 64); err == nil {
				out[id] = count
			}
		}
		return out
	}
	return nil
}

func idKeyedPercent(values ...map[string]float64) map[int64]float64 {
	for _, m := range values {
		if m == nil {
			continue
		}
		out := make(map[int64]float64, len(m))
		for key, pct := range m {
			if id, err := strconv.ParseInt(key, 10, 64); err == nil {
				out[id] = pct
			}
		}
		return out
	}
	return nil
}

func normalizeStatistics(w *statsWire) *poll.Statistics {
	if w == nil {
		return nil
	}
	return &poll.Statistics{
		TotalResponses: firstInt(w.TotalResponses, w.Total),
		OptionCounts:   idKeyedCounts(w.OptionCounts, w.PerOption),
		OptionPercent:  idKeyedPercent(w.OptionPercent, w.Percentages),
		Demographics:   w.Demographics,
	}
}

// normalizePoll resolves every alias and derives the effective status as
// of now.
func normalizePoll(w pollWire, now time.Time) poll.Poll {
	out := poll.Poll{
		ID:                  numberToID(w.ID, w.PollID),
		CompanyID:           numberToID(w.CompanyID),
		Title:               firstString(w.Title, w.Question),
		Description:         w.Description,
		AllowMultipleChoice: firstBool(w.AllowMultipleChoice, w.MultipleChoice, w.AllowsMultiple),
		AllowTextResponse:   firstBool(w.AllowTextResponse, w.AllowFreeText),
		ExpiresAt:           parseTime(firstString(w.ExpiresAt, w.EndsAt)),
		ClosedAt:            parseTime(w.ClosedAt),
		HasResponded:        firstBool(w.HasResponded, w.UserResponded),
	}

	rawOptions := w.Options
	if rawOptions == nil {
		rawOptions = w.Choices
	}
	if rawOptions != nil {
		out.Options = make([]poll.Option, 0, len(rawOptions))
		for _, o := range rawOptions {
			out.Options = append(out.Options, normalizeOption(o))
		}
	}

	stats := w.Statistics
	if stats == nil {
		stats = w.Stats
	}
	out.Statistics = normalizeStatistics(stats)

	if ts := parseTime(w.CreatedAt); ts != nil {
		out.CreatedAt = *ts
	}

	raw := strings.ToLower(strings.TrimSpace(w.Status))
	out.Status = poll.DeriveStatus(raw, out.ExpiresAt, out.ClosedAt, now)
	return out
}
