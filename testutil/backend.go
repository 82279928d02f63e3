package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Upload is a file received by the fake backend
type Upload struct {
	UserID      string
	Filename    string
	ContentType string
	Content     []byte
}

// SentMessage is a /chat/send body received by the fake backend
type SentMessage struct {
	UserID   string `json:"user_id"`
	Message  string `json:"message"`
	Metadata struct {
		Language string `json:"language"`
	} `json:"metadata"`
}

// Backend is an in-process chat backend speaking the /chat and /user routes
type Backend struct {
	Server *httptest.Server

	mu          sync.Mutex
	historyBody string
	historyCode int
	sendCode    int
	uploadCode  int
	reply       string
	profileBody string
	sent        []SentMessage
	uploads     []Upload
}

// NewBackend starts a fake backend with an empty history, closed when the test ends
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		historyBody: `{"chats": []}`,
		historyCode: http.StatusOK,
		sendCode:    http.StatusOK,
		uploadCode:  http.StatusOK,
		reply:       "Hello from the backend",
		profileBody: `{"name": "Test User", "language": "en"}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat/history", b.handleHistory)
	mux.HandleFunc("/chat/send", b.handleSend)
	mux.HandleFunc("/chat/upload", b.handleUpload)
	mux.HandleFunc("/user/profile/", b.handleProfile)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the backend base URL
func (b *Backend) URL() string {
	return b.Server.URL
}

// SetHistory replaces the /chat/history body
func (b *Backend) SetHistory(body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.historyBody = body
}

// FailHistory makes /chat/history answer with status
func (b *Backend) FailHistory(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.historyCode = status
}

// FailSend makes /chat/send answer with status
func (b *Backend) FailSend(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sendCode = status
}

// FailUpload makes /chat/upload answer with status
func (b *Backend) FailUpload(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploadCode = status
}

// SetReply sets the text returned by /chat/send
func (b *Backend) SetReply(reply string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reply = reply
}

// SetProfile replaces the /user/profile body
func (b *Backend) SetProfile(body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profileBody = body
}

// Sent returns the messages received so far
func (b *Backend) Sent() []SentMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]SentMessage(nil), b.sent...)
}

// Uploads returns the files received so far
func (b *Backend) Uploads() []Upload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Upload(nil), b.uploads...)
}

func (b *Backend) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	b.mu.Lock()
	code, body := b.historyCode, b.historyBody
	b.mu.Unlock()

	if code != http.StatusOK {
		writeDetail(w, code, "history unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func (b *Backend) handleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var msg SentMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	b.sent = append(b.sent, msg)
	code, reply, n := b.sendCode, b.reply, len(b.sent)
	b.mu.Unlock()

	if code != http.StatusOK {
		writeDetail(w, code, "send failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message_id": "srv-" + strings.Repeat("x", n),
		"response":   reply,
		"timestamp":  "2025-03-01T12:00:00Z",
	})
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()
	content, _ := io.ReadAll(file)

	b.mu.Lock()
	b.uploads = append(b.uploads, Upload{
		UserID:      r.FormValue("user_id"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	code := b.uploadCode
	b.mu.Unlock()

	if code != http.StatusOK {
		writeDetail(w, code, "upload rejected")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status": "ok"}`)
}

func (b *Backend) handleProfile(w http.ResponseWriter, r *http.Request) {
	if strings.TrimPrefix(r.URL.Path, "/user/profile/") == "" {
		writeDetail(w, http.StatusNotFound, "user not found")
		return
	}
	b.mu.Lock()
	body := b.profileBody
	b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
