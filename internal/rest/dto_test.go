package rest

import (
	"encoding/json"
	"testing"
	"time"

	"jobmatch-client/internal/domain/poll"
)

func decodePollWire(t *testing.T, raw string) pollWire {
	t.Helper()
	var w pollWire
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("unmarshal poll wire: %v", err)
	}
	return w
}

func TestNormalizePollCanonicalFields(t *testing.T) {
	raw := `{
		"id": 10,
		"company_id": 42,
		"title": "Remote work",
		"description": "How often?",
		"allow_multiple_choice": true,
		"allow_text_response": false,
		"status": "open",
		"options": [
			{"id": 1, "text": "Never", "response_count": 4},
			{"id": 2, "text": "Always", "response_count": 9}
		],
		"has_responded": true,
		"statistics": {"total_responses": 13, "option_counts": {"1": 4, "2": 9}}
	}`
	got := normalizePoll(decodePollWire(t, raw), time.Now())

	if got.ID != 10 || got.CompanyID != 42 {
		t.Errorf("ids = (%d, %d), want (10, 42)", got.ID, got.CompanyID)
	}
	if got.Title != "Remote work" || !got.AllowMultipleChoice || got.AllowTextResponse {
		t.Errorf("fields wrong: %+v", got)
	}
	if got.Status != poll.StatusOpen {
		t.Errorf("Status = %q, want open", got.Status)
	}
	if len(got.Options) != 2 || got.Options[1].ResponseCount != 9 {
		t.Errorf("Options = %+v", got.Options)
	}
	if !got.HasResponded {
		t.Error("HasResponded not carried over")
	}
	if got.Statistics == nil || got.Statistics.TotalResponses != 13 || got.Statistics.OptionCounts[2] != 9 {
		t.Errorf("Statistics = %+v", got.Statistics)
	}
}

func TestNormalizePollAliases(t *testing.T) {
	raw := `{
		"poll_id": "77",
		"question": "Best stack?",
		"multiple_choice": true,
		"allow_free_text": true,
		"choices": [
			{"option_id": 3, "option_text": "Go", "votes": 5},
			{"id": 4, "label": "Rust", "count": 2}
		],
		"user_responded": true,
		"stats": {"total": 7, "per_option": {"3": 5, "4": 2}, "percentages": {"3": 71.4, "4": 28.6}}
	}`
	got := normalizePoll(decodePollWire(t, raw), time.Now())

	if got.ID != 77 {
		t.Errorf("ID = %d, want 77 from poll_id alias", got.ID)
	}
	if got.Title != "Best stack?" {
		t.Errorf("Title = %q, want question alias", got.Title)
	}
	if !got.AllowMultipleChoice || !got.AllowTextResponse {
		t.Error("boolean aliases not resolved")
	}
	if len(got.Options) != 2 {
		t.Fatalf("Options = %+v", got.Options)
	}
	if got.Options[0].ID != 3 || got.Options[0].Text != "Go" || got.Options[0].ResponseCount != 5 {
		t.Errorf("option aliases: %+v", got.Options[0])
	}
	if got.Options[1].Text != "Rust" || got.Options[1].ResponseCount != 2 {
		t.Errorf("option aliases: %+v", got.Options[1])
	}
	if !got.HasResponded {
		t.Error("user_responded alias not resolved")
	}
	if got.Statistics == nil || got.Statistics.TotalResponses != 7 {
		t.Fatalf("Statistics = %+v", got.Statistics)
	}
	if got.Statistics.OptionPercent[3] != 71.4 {
		t.Errorf("OptionPercent = %+v", got.Statistics.OptionPercent)
	}
}

func TestNormalizePollStatusDerivation(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		raw  string
		want poll.Status
	}{
		{
			// explicit open beats a past expiry
			"explicit open stale expiry",
			`{"id": 1, "status": "open", "expires_at": "2000-01-01T00:00:00Z"}`,
			poll.StatusOpen,
		},
		{
			"explicit closed",
			`{"id": 1, "status": "closed", "expires_at": "2999-01-01T00:00:00Z"}`,
			poll.StatusClosed,
		},
		{
			"closed_at set no status",
			`{"id": 1, "closed_at": "2026-05-01T00:00:00Z"}`,
			poll.StatusClosed,
		},
		{
			"expired no status",
			`{"id": 1, "ends_at": "2026-01-01T00:00:00Z"}`,
			poll.StatusClosed,
		},
		{
			"future expiry no status",
			`{"id": 1, "expires_at": "2026-12-01T00:00:00Z"}`,
			poll.StatusOpen,
		},
		{
			"uppercase status normalized",
			`{"id": 1, "status": "CLOSED"}`,
			poll.StatusClosed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizePoll(decodePollWire(t, tc.raw), now)
			if got.Status != tc.want {
				t.Errorf("Status = %q, want %q", got.Status, tc.want)
			}
		})
	}
}

func TestNormalizeFavourite(t *testing.T) {
	raw := `{
		"id": 5,
		"company": {"id": 42, "company_name": "Acme", "industry": "Fintech"}
	}`
	var w favouriteWire
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := normalizeFavourite(w)

	if got.ID != 5 {
		t.Errorf("ID = %d, want 5", got.ID)
	}
	// company_id absent, derived from the embedded summary
	if got.CompanyID != 42 {
		t.Errorf("CompanyID = %d, want 42 from embedded company", got.CompanyID)
	}
	if got.Company == nil || got.Company.Name != "Acme" || got.Company.Category != "Fintech" {
		t.Errorf("Company = %+v", got.Company)
	}
}

func TestParseTimeFormats(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"rfc3339", "2026-03-01T10:00:00Z", true},
		{"date only", "2026-03-01", true},
		{"sql style", "2026-03-01 10:00:00", true},
		{"epoch seconds", "1767225600", true},
		{"empty", "", false},
		{"garbage", "soon", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseTime(tc.raw)
			if (got != nil) != tc.ok {
				t.Errorf("parseTime(%q) = %v, want ok=%v", tc.raw, got, tc.ok)
			}
		})
	}
}
