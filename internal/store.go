package internal

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// SendFailureMessage replaces the bot reply when an exchange fails
const SendFailureMessage = "Sorry, there was an error connecting to the server. Please try again later."

// DefaultLanguage is sent in the message metadata when none is configured
const DefaultLanguage = "en"

// StoreState is the lifecycle of a Store
type StoreState int

const (
	StateUninitialized StoreState = iota
	StateLoading
	StateReady
)

func (s StoreState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// SendResult describes the outcome of SendMessage. A failed exchange is not
// an error: the apology is already in the session and Err holds the cause.
type SendResult struct {
	SessionID    string
	UserMessage  Message
	Reply        Message
	Delivered    bool
	Err          error
	UploadErrors []error
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock overrides the time source
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) { s.clock = clock }
}

// WithIDGenerator overrides session and message id generation
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) { s.newID = gen }
}

// WithIdentity sets the user identity sent to the backend
func WithIdentity(id Identity) StoreOption {
	return func(s *Store) { s.identity = id }
}

// WithLanguage sets the language sent in message metadata
func WithLanguage(lang string) StoreOption {
	return func(s *Store) { s.language = lang }
}

// WithOnChange registers a listener invoked after every state change.
// It runs without the store lock held.
func WithOnChange(fn func()) StoreOption {
	return func(s *Store) { s.onChange = fn }
}

// Store owns the chat sessions, the current selection and the exchange with
// the backend. Sessions are keyed by id so replies land on the session they
// were sent from, whatever is current when they arrive.
type Store struct {
	api      ChatAPI
	clock    func() time.Time
	newID    func() string
	identity Identity
	language string
	onChange func()

	mu       sync.Mutex
	state    StoreState
	sessions map[string]*ChatSession
	order    []string
	current  string
	inFlight int
}

// NewStore creates a store backed by the given API
func NewStore(api ChatAPI, opts ...StoreOption) *Store {
	s := &Store{
		api:      api,
		clock:    time.Now,
		newID:    uuid.NewString,
		identity: StaticIdentity(DefaultUserID),
		language: DefaultLanguage,
		sessions: make(map[string]*ChatSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the conversation history and makes the store ready. History
// failures are logged and replaced by a single empty session, so the only
// error returned is ErrAlreadyLoaded.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.state = StateLoading
	s.mu.Unlock()

	chats, err := s.api.History(ctx, s.identity.UserID())

	s.mu.Lock()
	switch {
	case err != nil:
		LogWarn("Failed to load chat history: %v", err)
		s.resetToDefaultLocked()
	case len(chats) == 0:
		LogDebug("Chat history is empty, starting a new session")
		s.resetToDefaultLocked()
	default:
		now := s.clock()
		for _, chat := range chats {
			// every exchange keeps its own session even when the backend repeats an id
			if _, taken := s.sessions[chat.MessageID]; chat.MessageID == "" || taken {
				chat.MessageID = s.newID()
			}
			session := SessionFromHistory(chat, now)
			s.addLocked(&session)
		}
		if len(s.order) == 0 {
			s.resetToDefaultLocked()
		} else {
			s.current = s.order[0]
		}
		LogDebug("Loaded %d session(s) from history", len(s.order))
	}
	s.state = StateReady
	s.mu.Unlock()

	s.notify()
	return nil
}

// State returns the lifecycle state
func (s *Store) State() StoreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsLoading reports whether a send is in flight
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// Sessions returns copies of all sessions in insertion order
func (s *Store) Sessions() []ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Map(s.order, func(id string, _ int) ChatSession {
		return s.sessions[id].Clone()
	})
}

// Session returns a copy of the session with the given id
func (s *Store) Session(id string) (ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return ChatSession{}, false
	}
	return session.Clone(), true
}

// CurrentSession returns a copy of the selected session
func (s *Store) CurrentSession() (ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[s.current]
	if !ok {
		return ChatSession{}, false
	}
	return session.Clone(), true
}

// CreateNewSession appends an empty session and selects it
func (s *Store) CreateNewSession() (ChatSession, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ChatSession{}, ErrNotReady
	}
	session := newEmptySession(s.newID(), s.clock())
	s.addLocked(session)
	s.current = session.ID
	snapshot := session.Clone()
	s.mu.Unlock()

	s.notify()
	return snapshot, nil
}

// SelectSession makes the session with the given id current. An unknown id
// leaves the selection unchanged and returns false.
func (s *Store) SelectSession(id string) bool {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return false
	}
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return false
	}
	changed := s.current != id
	s.current = id
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return true
}

// ClearHistory discards every session and selects one fresh empty session
func (s *Store) ClearHistory() error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNotReady
	}
	s.resetToDefaultLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteSession removes a session. Deleting the current session selects the
// first remaining one, or a fresh empty session when none remain.
func (s *Store) DeleteSession(id string) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNotReady
	}
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.sessions, id)
	s.order = lo.Without(s.order, id)

	if s.current == id {
		if len(s.order) > 0 {
			s.current = s.order[0]
		} else {
			s.resetToDefaultLocked()
		}
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// SendMessage appends a user message to the current session, uploads the
// attachments one at a time, sends the text and appends the reply. Upload
// failures do not stop the send. When the send fails a fixed apology is
// appended instead of a reply; the user message is never rolled back.
//
// ErrEmptyMessage is returned, with no state change, when content is blank
// and there are no attachments.
func (s *Store) SendMessage(ctx context.Context, content string, attachments []Attachment) (*SendResult, error) {
	if strings.TrimSpace(content) == "" && len(attachments) == 0 {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	session, ok := s.sessions[s.current]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotReady
	}

	now := s.clock()
	userMessage := Message{
		ID:          s.newID(),
		Content:     content,
		Sender:      SenderUser,
		Timestamp:   now.UnixMilli(),
		Attachments: append([]Attachment(nil), attachments...),
	}
	session.Messages = append(session.Messages, userMessage)
	session.LastMessage = content
	session.Timestamp = now.UnixMilli()
	sessionID := session.ID
	s.inFlight++
	s.mu.Unlock()
	s.notify()

	result := &SendResult{
		SessionID:   sessionID,
		UserMessage: userMessage.Clone(),
	}
	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
		s.notify()
	}()

	userID := s.identity.UserID()
	for _, file := range attachments {
		if err := s.api.Upload(ctx, userID, file); err != nil {
			LogWarn("Failed to upload %s: %v", file.Name, err)
			result.UploadErrors = append(result.UploadErrors, err)
		}
	}

	resp, err := s.api.Send(ctx, &SendRequest{
		UserID:   userID,
		Message:  content,
		Metadata: SendMetadata{Language: s.language},
	})
	if err != nil {
		LogError("Error sending message: %v", err)
		result.Err = err
		result.Reply = s.newBotMessage(s.newID(), SendFailureMessage, time.Time{})
	} else {
		id := resp.MessageID
		if id == "" {
			id = s.newID()
		}
		result.Delivered = true
		result.Reply = s.newBotMessage(id, resp.Response, resp.Timestamp.Time())
	}

	s.mu.Lock()
	if target, ok := s.sessions[sessionID]; ok {
		target.Messages = append(target.Messages, result.Reply)
	} else {
		LogWarn("Session %s was removed before its reply arrived, dropping reply", sessionID)
	}
	s.mu.Unlock()

	return result, nil
}

func (s *Store) newBotMessage(id, content string, ts time.Time) Message {
	if ts.IsZero() {
		ts = s.clock()
	}
	return Message{
		ID:        id,
		Content:   content,
		Sender:    SenderBot,
		Timestamp: ts.UnixMilli(),
	}
}

// addLocked appends a session; a session with a known id replaces the old one in place
func (s *Store) addLocked(session *ChatSession) {
	if _, exists := s.sessions[session.ID]; !exists {
		s.order = append(s.order, session.ID)
	}
	s.sessions[session.ID] = session
}

// resetToDefaultLocked discards all sessions and selects a fresh empty one
func (s *Store) resetToDefaultLocked() {
	s.sessions = make(map[string]*ChatSession)
	s.order = nil
	s.current = ""

	session := newEmptySession(s.newID(), s.clock())
	s.addLocked(session)
	s.current = session.ID
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
