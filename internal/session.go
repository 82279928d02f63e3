package internal

import (
	"time"

	"github.com/samber/lo"
)

const (
	// DefaultSessionTitle labels sessions created locally.
	DefaultSessionTitle = "New Chat"
	// HistorySessionTitle labels sessions converted from remote history.
	HistorySessionTitle = "Chat Session"

	// answerOffsetMillis keeps a historical answer after its question even
	// when the backend recorded both at the same instant.
	answerOffsetMillis = 1000
)

// Sender identifies who authored a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Attachment describes a file attached to a user message
type Attachment struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"` // MIME type
	URI  string `json:"uri" yaml:"uri"`
}

// Message is one turn in a conversation. ID, Sender and Timestamp are fixed
// at creation.
type Message struct {
	ID          string       `json:"id" yaml:"id"`
	Content     string       `json:"content" yaml:"content"`
	Sender      Sender       `json:"sender" yaml:"sender"`
	Timestamp   int64        `json:"timestamp" yaml:"timestamp"` // epoch milliseconds
	Attachments []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

// ChatSession is one conversation thread
type ChatSession struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	LastMessage string    `json:"lastMessage" yaml:"last_message"`
	Timestamp   int64     `json:"timestamp" yaml:"timestamp"` // epoch milliseconds of last mutation
	Messages    []Message `json:"messages" yaml:"messages"`
}

// Time returns the message timestamp as a time.Time
func (m Message) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// Time returns the session timestamp as a time.Time
func (s ChatSession) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Clone returns a deep copy of the message
func (m Message) Clone() Message {
	if m.Attachments != nil {
		m.Attachments = append([]Attachment(nil), m.Attachments...)
	}
	return m
}

// Clone returns a deep copy of the session, messages included
func (s ChatSession) Clone() ChatSession {
	s.Messages = lo.Map(s.Messages, func(m Message, _ int) Message {
		return m.Clone()
	})
	return s
}

// newEmptySession builds a fresh session with no messages
func newEmptySession(id string, now time.Time) *ChatSession {
	return &ChatSession{
		ID:        id,
		Title:     DefaultSessionTitle,
		Timestamp: now.UnixMilli(),
		Messages:  []Message{},
	}
}

// SessionFromHistory converts one recorded exchange into a two-message session.
// The question keeps the recorded time; the answer is placed one second later.
func SessionFromHistory(chat HistoryChat, fallback time.Time) ChatSession {
	ts := chat.Timestamp.Time()
	if ts.IsZero() {
		ts = fallback
	}
	millis := ts.UnixMilli()

	return ChatSession{
		ID:          chat.MessageID,
		Title:       HistorySessionTitle,
		LastMessage: chat.Question,
		Timestamp:   millis,
		Messages: []Message{
			{
				ID:        chat.MessageID + "-q",
				Content:   chat.Question,
				Sender:    SenderUser,
				Timestamp: millis,
			},
			{
				ID:        chat.MessageID + "-a",
				Content:   chat.Answer,
				Sender:    SenderBot,
				Timestamp: millis + answerOffsetMillis,
			},
		},
	}
}
