package model

import (
	"encoding/json"
	"testing"
)

func TestMinutesUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Minutes
		wantErr bool
	}{
		{name: "number", payload: `60`, want: 60},
		{name: "quoted number", payload: `"45"`, want: 45},
		{name: "quoted with spaces", payload: `" 30 "`, want: 30},
		{name: "not a number", payload: `"hour"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Minutes
			err := json.Unmarshal([]byte(tt.payload), &m)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) = %d, want error", tt.payload, m)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.payload, err)
			}
			if m != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.payload, m, tt.want)
			}
		})
	}
}

func TestSessionHasMeetingLink(t *testing.T) {
	tests := []struct {
		name string
		link string
		want bool
	}{
		{name: "present", link: "https://meet.example.com/abc", want: true},
		{name: "empty", link: "", want: false},
		{name: "whitespace only", link: "   ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := Session{MeetingLink: tt.link}
			if got := sess.HasMeetingLink(); got != tt.want {
				t.Errorf("HasMeetingLink() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionUnmarshalDurationString(t *testing.T) {
	payload := `{"_id":"s1","slot_id":"a1","duration":"90","status":"pending"}`

	var sess Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		t.Fatalf("Unmarshal session: %v", err)
	}
	if sess.Duration != 90 {
		t.Errorf("Duration = %d, want 90", sess.Duration)
	}
	if sess.Status != SessionStatusPending {
		t.Errorf("Status = %q, want pending", sess.Status)
	}
}
