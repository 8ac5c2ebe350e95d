// Package assistant keeps the shopping-assistant transcript and forwards
// questions to a text-generation backend, one request at a time.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Greeting opens every transcript.
const Greeting = "Hi! I'm Nova, your AI shopping assistant. Looking for something specific today?"

var (
	ErrBusy       = errors.New("assistant is still answering the previous question")
	ErrEmptyQuery = errors.New("question is empty")
)

// Speaker identifies who wrote a message.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Message is one transcript entry.
type Message struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// Recommender answers a question given a flattened catalog summary.
// It never fails; failures come back as fallback text.
type Recommender interface {
	Recommend(ctx context.Context, query, catalogSummary string) string
}

// Session is an append-only transcript with a single in-flight question.
type Session struct {
	mu       sync.Mutex
	messages []Message
	pending  bool
	rec      Recommender
	nowFunc  func() time.Time
}

// New returns a Session seeded with the greeting.
func New(rec Recommender) *Session {
	s := &Session{rec: rec, nowFunc: time.Now}
	s.messages = []Message{{Speaker: SpeakerAssistant, Text: Greeting, At: s.nowFunc().UTC()}}
	return s
}

// Ask appends the user's message immediately and resolves the reply in the
// background. The returned channel yields the assistant message once it has
// been appended to the transcript. ctx bounds the backend call only.
func (s *Session) Ask(ctx context.Context, text, catalogSummary string) (<-chan Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.pending = true
	s.messages = append(s.messages, Message{Speaker: SpeakerUser, Text: text, At: s.nowFunc().UTC()})
	s.mu.Unlock()

	done := make(chan Message, 1)
	go func() {
		reply := s.rec.Recommend(ctx, text, catalogSummary)

		s.mu.Lock()
		msg := Message{Speaker: SpeakerAssistant, Text: reply, At: s.nowFunc().UTC()}
		s.messages = append(s.messages, msg)
		s.pending = false
		s.mu.Unlock()

		done <- msg
		close(done)
	}()
	return done, nil
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Pending reports whether a reply is outstanding.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
