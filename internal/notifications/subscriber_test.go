package notifications

import (
	"encoding/json"
	"testing"
)

func TestNormalizeAliases(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantMsg string
		wantTyp string
	}{
		{
			"canonical fields",
			`{"id": 1, "type": "poll_closed", "message": "Poll closed", "poll_id": 9}`,
			"Poll closed",
			"poll_closed",
		},
		{
			"kind and text aliases",
			`{"id": 2, "kind": "company_update", "text": "Acme updated its profile", "company_id": 42}`,
			"Acme updated its profile",
			"company_update",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var wire notificationWire
			if err := json.Unmarshal([]byte(tc.raw), &wire); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got := normalize(wire)
			if got.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tc.wantMsg)
			}
			if got.Type != tc.wantTyp {
				t.Errorf("Type = %q, want %q", got.Type, tc.wantTyp)
			}
		})
	}
}

func TestNormalizeIDs(t *testing.T) {
	raw := `{"id": "7", "type": "favourite", "company_id": "42", "created_at": "2026-03-01T10:00:00Z"}`
	var wire notificationWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := normalize(wire)
	if got.ID != 7 || got.CompanyID != 42 {
		t.Errorf("ids = (%d, %d), want (7, 42)", got.ID, got.CompanyID)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
}
