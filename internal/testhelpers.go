package internal

import (
	"time"
)

// testEpoch is 2025-03-01T10:00:00Z
var testEpoch = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// CreateTestChatSession creates a session holding one exchange
func CreateTestChatSession(id string) *ChatSession {
	ts := testEpoch.UnixMilli()
	return &ChatSession{
		ID:          id,
		Title:       DefaultSessionTitle,
		LastMessage: "Hello, how are you?",
		Timestamp:   ts,
		Messages: []Message{
			{
				ID:        id + "-1",
				Content:   "Hello, how are you?",
				Sender:    SenderUser,
				Timestamp: ts,
			},
			{
				ID:        id + "-2",
				Content:   "I'm doing well, thank you!",
				Sender:    SenderBot,
				Timestamp: ts + 1000,
			},
		},
	}
}

// CreateTestChatSessionWithMessages creates a session with custom messages
func CreateTestChatSessionWithMessages(id string, messages []Message) *ChatSession {
	s := &ChatSession{
		ID:        id,
		Title:     DefaultSessionTitle,
		Timestamp: testEpoch.UnixMilli(),
		Messages:  messages,
	}
	for _, m := range messages {
		if m.Sender == SenderUser {
			s.LastMessage = m.Content
		}
	}
	return s
}
