package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestTeacherSlots(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"_id":"a1","date":"2024-03-10","start_time":"10:00","end_time":"11:00","is_booked":false}]`))
	})

	slots, err := client.TeacherSlots(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, "/availability/t1", gotPath)
	require.Len(t, slots, 1)
	assert.Equal(t, "a1", slots[0].ID)
	// teacher_id не приходит от бэкенда - клиент дописывает его сам
	assert.Equal(t, "t1", slots[0].TeacherID)
}

func TestTeacherSlotsKeepsProvidedTeacherID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"a1","teacher_id":"original","date":"2024-03-10"}]`))
	})

	slots, err := client.TeacherSlots(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "original", slots[0].TeacherID)
}

func TestTeacherSlotsErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.TeacherSlots(context.Background(), "t1")

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
		})
	}
}

func TestStudentSessionsShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "array", body: `[{"_id":"s1","slot_id":"a1","duration":60,"status":"pending"}]`, want: 1},
		{name: "envelope", body: `{"sessions":[{"_id":"s1","slot_id":"a1","duration":60,"status":"pending"}]}`, want: 1},
		{name: "single", body: `{"_id":"s1","slot_id":"a1","duration":60,"status":"pending"}`, want: 1},
		{name: "empty envelope list", body: `{"sessions":[]}`, want: 0},
		{name: "unexpected shape", body: `{"whatever":1}`, want: 0},
		{name: "number", body: `42`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(tt.body))
			})

			sessions, err := client.StudentSessions(context.Background(), "stud1")
			require.NoError(t, err)
			assert.Equal(t, "/availability/student/stud1", gotPath)
			assert.Len(t, sessions, tt.want)
		})
	}
}

func TestStudentSessionsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := New(srv.URL, time.Second, zap.NewNop())

	_, err := client.StudentSessions(context.Background(), "stud1")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestBookSlot(t *testing.T) {
	var (
		gotPath      string
		gotMethod    string
		gotContent   string
		gotRequestID string
		gotBody      map[string]any
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContent = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"session":{"_id":"s1","slot_id":"a1","duration":60,"status":"pending"}}`))
	})

	sess, err := client.BookSlot(context.Background(), "a1", BookingRequest{
		StudentID:     "stud1",
		TeacherID:     "t1",
		Duration:      60,
		RequestedTime: "2024-03-10T10:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/availability/book/a1", gotPath)
	assert.Equal(t, "application/json", gotContent)
	assert.NotEmpty(t, gotRequestID)

	assert.Equal(t, "stud1", gotBody["student_id"])
	assert.Equal(t, "t1", gotBody["teacher_id"])
	assert.Equal(t, float64(60), gotBody["duration"])
	assert.Equal(t, "2024-03-10T10:00:00Z", gotBody["requested_time"])

	require.NotNil(t, sess)
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, model.Minutes(60), sess.Duration)
}

func TestBookSlotRejection(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "conflict with message",
			status:      http.StatusConflict,
			body:        `{"message":"slot already taken"}`,
			wantMessage: "slot already taken",
		},
		{
			name:        "error without message",
			status:      http.StatusBadRequest,
			body:        `{"error":"nope"}`,
			wantMessage: "",
		},
		{
			name:        "error with unreadable body",
			status:      http.StatusInternalServerError,
			body:        `<html>boom</html>`,
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.BookSlot(context.Background(), "a1", BookingRequest{StudentID: "stud1"})

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestBookSlotResponseWithoutSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.BookSlot(context.Background(), "a1", BookingRequest{StudentID: "stud1"})
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}
