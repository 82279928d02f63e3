package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/mosje-chat/testutil"
)

func TestClient_History(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.SetHistory(testutil.HistoryFixture)
	client := NewClient(backend.URL()+"/", 5*time.Second)

	chats, err := client.History(context.Background(), "user123")
	require.NoError(t, err)
	require.Len(t, chats, 2)

	assert.Equal(t, "hist-1", chats[0].MessageID)
	assert.Equal(t, "What is Go?", chats[0].Question)
	assert.Equal(t, "A programming language.", chats[0].Answer)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), chats[0].Timestamp.Time())
	assert.Equal(t, time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC), chats[1].Timestamp.Time().UTC())
}

func TestClient_WithHTTPClient(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.SetHistory(testutil.HistoryFixture)
	client := NewClientWithHTTP(backend.URL()+"/", backend.Server.Client())

	assert.Equal(t, backend.URL(), client.BaseURL())

	chats, err := client.History(context.Background(), "user123")
	require.NoError(t, err)
	assert.Len(t, chats, 2)
}

func TestClient_HistoryFailure(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.FailHistory(http.StatusInternalServerError)
	client := NewClient(backend.URL(), 5*time.Second)

	_, err := client.History(context.Background(), "user123")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "want APIError, got %v", err)
	assert.Equal(t, "history", apiErr.Op)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "history unavailable", apiErr.Body)
}

func TestClient_Send(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.SetReply("Four.")
	client := NewClient(backend.URL(), 5*time.Second)

	resp, err := client.Send(context.Background(), &SendRequest{
		UserID:   "alice",
		Message:  "2+2?",
		Metadata: SendMetadata{Language: "en"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Four.", resp.Response)
	assert.NotEmpty(t, resp.MessageID)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), resp.Timestamp.Time().UTC())

	sent := backend.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "alice", sent[0].UserID)
	assert.Equal(t, "2+2?", sent[0].Message)
	assert.Equal(t, "en", sent[0].Metadata.Language)
}

func TestClient_SendFailure(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.FailSend(http.StatusBadGateway)
	client := NewClient(backend.URL(), 5*time.Second)

	_, err := client.Send(context.Background(), &SendRequest{UserID: "u", Message: "hi"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestClient_Unreachable(t *testing.T) {
	backend := testutil.NewBackend(t)
	url := backend.URL()
	backend.Server.Close()

	_, err := NewClient(url, time.Second).Send(context.Background(), &SendRequest{UserID: "u", Message: "hi"})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
}

func TestClient_Upload(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := NewClient(backend.URL(), 5*time.Second)

	dir := testutil.CreateTempDir(t)
	path := testutil.WriteAttachment(t, dir, "notes.txt", []byte("remember the milk"))

	tests := []struct {
		name string
		uri  string
	}{
		{name: "plain path", uri: path},
		{name: "file uri", uri: "file://" + path},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.Upload(context.Background(), "alice", Attachment{Name: "notes.txt", Type: "text/plain", URI: tt.uri})
			require.NoError(t, err)
		})
	}

	uploads := backend.Uploads()
	require.Len(t, uploads, 2)
	for _, u := range uploads {
		assert.Equal(t, "alice", u.UserID)
		assert.Equal(t, "notes.txt", u.Filename)
		assert.Equal(t, "text/plain", u.ContentType)
		assert.Equal(t, "remember the milk", string(u.Content))
	}
}

func TestClient_UploadErrors(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := NewClient(backend.URL(), 5*time.Second)

	err := client.Upload(context.Background(), "u", Attachment{Name: "gone.png", URI: "/does/not/exist.png"})
	var upErr *UploadError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "gone.png", upErr.Name)
	assert.Empty(t, backend.Uploads(), "unreadable files are never sent")

	backend.FailUpload(http.StatusRequestEntityTooLarge)
	path := testutil.WriteAttachment(t, testutil.CreateTempDir(t), "big.bin", []byte("x"))
	err = client.Upload(context.Background(), "u", Attachment{Name: "big.bin", URI: path})
	require.True(t, errors.As(err, &upErr))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.Status)
	assert.Equal(t, DefaultAttachmentType, backend.Uploads()[0].ContentType)
}

func TestClient_Profile(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.SetProfile(`{"name": "Ada", "language": "en", "plan": "pro"}`)
	client := NewClient(backend.URL(), 5*time.Second)

	profile, err := client.Profile(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "en", profile.Language)
	assert.Equal(t, "pro", profile.Extra["plan"])
	assert.NotContains(t, profile.Extra, "name")
}

func TestAPITime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "rfc3339", raw: `"2025-03-01T10:00:00Z"`, want: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{name: "naive iso", raw: `"2025-03-01T10:00:00.123456"`, want: time.Date(2025, 3, 1, 10, 0, 0, 123456000, time.UTC)},
		{name: "space separated", raw: `"2025-03-01 10:00:00"`, want: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{name: "epoch millis", raw: `1740823200000`, want: time.UnixMilli(1740823200000)},
		{name: "millis string", raw: `"1740823200000"`, want: time.UnixMilli(1740823200000)},
		{name: "null", raw: `null`},
		{name: "garbage", raw: `"yesterday"`},
		{name: "object", raw: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var at APITime
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &at))
			assert.True(t, tt.want.Equal(at.Time()), "got %v, want %v", at.Time(), tt.want)
		})
	}
}

func TestAPITime_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewAPITime(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-01T10:00:00Z"`, string(data))

	data, err = json.Marshal(APITime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{body: `{"detail": "Not Found"}`, want: "Not Found"},
		{body: `{"detail": [{"loc": ["body"], "msg": "field required"}]}`, want: `[{"loc":["body"],"msg":"field required"}]`},
		{body: `{"error": "boom"}`, want: "boom"},
		{body: "plain text\n", want: "plain text"},
		{body: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorDetail([]byte(tt.body)), "body %q", tt.body)
	}
}
