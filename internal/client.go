package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// ChatAPI is the remote chat backend as seen by the session store
type ChatAPI interface {
	History(ctx context.Context, userID string) ([]HistoryChat, error)
	Send(ctx context.Context, req *SendRequest) (*SendResponse, error)
	Upload(ctx context.Context, userID string, file Attachment) error
	Profile(ctx context.Context, userID string) (*Profile, error)
}

// HistoryChat is one recorded question/answer exchange
type HistoryChat struct {
	MessageID string  `json:"message_id"`
	Question  string  `json:"question"`
	Answer    string  `json:"answer"`
	Timestamp APITime `json:"timestamp"`
}

// HistoryResponse is the body of GET /chat/history
type HistoryResponse struct {
	Chats []HistoryChat `json:"chats"`
}

// SendMetadata travels with every outgoing message
type SendMetadata struct {
	Language string `json:"language"`
}

// SendRequest is the body of POST /chat/send
type SendRequest struct {
	UserID   string       `json:"user_id"`
	Message  string       `json:"message"`
	Metadata SendMetadata `json:"metadata"`
}

// SendResponse is the body returned by POST /chat/send
type SendResponse struct {
	MessageID string  `json:"message_id"`
	Response  string  `json:"response"`
	Timestamp APITime `json:"timestamp"`
}

// Profile is the body of GET /user/profile/{id}. Unknown fields are kept in Extra.
type Profile struct {
	Name     string                 `json:"name"`
	Language string                 `json:"language"`
	Extra    map[string]interface{} `json:"-"`
}

// UnmarshalJSON keeps every field of the profile document
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["name"].(string); ok {
		p.Name = v
	}
	if v, ok := raw["language"].(string); ok {
		p.Language = v
	}
	delete(raw, "name")
	delete(raw, "language")
	p.Extra = raw
	return nil
}

// APITime accepts the timestamp shapes the backend produces: RFC 3339 or
// naive ISO-8601 strings, and numeric epoch milliseconds. Anything else
// decodes to the zero time.
type APITime struct {
	t time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// NewAPITime wraps a time.Time
func NewAPITime(t time.Time) APITime {
	return APITime{t: t}
}

// Time returns the parsed time, zero when the value was missing or invalid
func (a APITime) Time() time.Time {
	return a.t
}

// UnmarshalJSON implements json.Unmarshaler
func (a *APITime) UnmarshalJSON(data []byte) error {
	a.t = time.Time{}
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}
	if raw[0] != '"' {
		if ms, err := strconv.ParseFloat(raw, 64); err == nil {
			a.t = time.UnixMilli(int64(ms))
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	a.t = ParseAPITime(s)
	return nil
}

// MarshalJSON implements json.Marshaler
func (a APITime) MarshalJSON() ([]byte, error) {
	if a.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(a.t.UTC().Format(time.RFC3339Nano))
}

// ParseAPITime parses a backend timestamp string. Naive timestamps are read as UTC.
func ParseAPITime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// errorBody is the FastAPI error envelope
type errorBody struct {
	Detail interface{} `json:"detail"`
	Error  string      `json:"error"`
}

// Client is an HTTP client for the chat backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new chat backend client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTP creates a client around an existing http.Client
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the backend address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// History calls GET /chat/history
func (c *Client) History(ctx context.Context, userID string) ([]HistoryChat, error) {
	endpoint := fmt.Sprintf("%s/chat/history?user_id=%s", c.baseURL, url.QueryEscape(userID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var historyResp HistoryResponse
	if err := c.do(httpReq, "history", &historyResp); err != nil {
		return nil, err
	}
	return historyResp.Chats, nil
}

// Send calls POST /chat/send
func (c *Client) Send(ctx context.Context, req *SendRequest) (*SendResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal send request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/send", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var sendResp SendResponse
	if err := c.do(httpReq, "send", &sendResp); err != nil {
		return nil, err
	}
	return &sendResp, nil
}

// Upload calls POST /chat/upload with a multipart body holding user_id and file.
// The file content is read from the attachment URI, a local path or file:// URL.
func (c *Client) Upload(ctx context.Context, userID string, file Attachment) error {
	content, err := readAttachment(file.URI)
	if err != nil {
		return &UploadError{Name: file.Name, Err: err}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("user_id", userID); err != nil {
		return &UploadError{Name: file.Name, Err: err}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	contentType := file.Type
	if contentType == "" {
		contentType = DefaultAttachmentType
	}
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return &UploadError{Name: file.Name, Err: err}
	}
	if _, err := part.Write(content); err != nil {
		return &UploadError{Name: file.Name, Err: err}
	}
	if err := mw.Close(); err != nil {
		return &UploadError{Name: file.Name, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/upload", &buf)
	if err != nil {
		return &UploadError{Name: file.Name, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	if err := c.do(httpReq, "upload", nil); err != nil {
		return &UploadError{Name: file.Name, Err: err}
	}
	return nil
}

// Profile calls GET /user/profile/{id}
func (c *Client) Profile(ctx context.Context, userID string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/user/profile/%s", c.baseURL, url.PathEscape(userID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var profile Profile
	if err := c.do(httpReq, "profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// do executes the request and decodes a JSON body into out when out is non-nil
func (c *Client) do(httpReq *http.Request, op string, out interface{}) error {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call chat backend (%s): %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{Op: op, Status: resp.StatusCode, Body: errorDetail(respBody)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

// errorDetail extracts a readable message from an error body
func errorDetail(body []byte) string {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		switch d := eb.Detail.(type) {
		case string:
			if d != "" {
				return d
			}
		case nil:
		default:
			if b, err := json.Marshal(d); err == nil {
				return string(b)
			}
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	return strings.TrimSpace(string(body))
}

func readAttachment(uri string) ([]byte, error) {
	path := uri
	if strings.HasPrefix(uri, "file://") {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid attachment uri %q: %w", uri, err)
		}
		path = u.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	return data, nil
}
