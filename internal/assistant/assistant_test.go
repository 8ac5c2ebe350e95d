package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedRecommender blocks until release is closed so tests can observe the pending state.
type gatedRecommender struct {
	release chan struct{}
	reply   string
	gotQ    chan string
	gotSum  chan string
}

func newGated(reply string) *gatedRecommender {
	return &gatedRecommender{
		release: make(chan struct{}),
		reply:   reply,
		gotQ:    make(chan string, 1),
		gotSum:  make(chan string, 1),
	}
}

func (g *gatedRecommender) Recommend(ctx context.Context, query, summary string) string {
	g.gotQ <- query
	g.gotSum <- summary
	<-g.release
	return g.reply
}

type staticRecommender string

func (s staticRecommender) Recommend(context.Context, string, string) string { return string(s) }

func waitReply(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for assistant reply")
		return Message{}
	}
}

func TestNew_SeedsGreeting(t *testing.T) {
	s := New(staticRecommender("x"))
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, SpeakerAssistant, msgs[0].Speaker)
	assert.Equal(t, Greeting, msgs[0].Text)
	assert.False(t, s.Pending())
}

func TestAsk_UserMessageVisibleBeforeReply(t *testing.T) {
	g := newGated("Try the serum.")
	s := New(g)

	ch, err := s.Ask(context.Background(), "  skincare?  ", "Serum ($45.99)")
	require.NoError(t, err)

	assert.Equal(t, "skincare?", <-g.gotQ)
	assert.Equal(t, "Serum ($45.99)", <-g.gotSum)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, SpeakerUser, msgs[1].Speaker)
	assert.Equal(t, "skincare?", msgs[1].Text)
	assert.True(t, s.Pending())

	close(g.release)
	reply := waitReply(t, ch)
	assert.Equal(t, "Try the serum.", reply.Text)

	msgs = s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, SpeakerAssistant, msgs[2].Speaker)
	assert.Equal(t, "Try the serum.", msgs[2].Text)
	assert.False(t, s.Pending())
}

func TestAsk_SecondQuestionWhilePendingIsRefused(t *testing.T) {
	g := newGated("ok")
	s := New(g)

	ch, err := s.Ask(context.Background(), "first", "")
	require.NoError(t, err)
	<-g.gotQ
	<-g.gotSum

	_, err = s.Ask(context.Background(), "second", "")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, s.Messages(), 2)

	close(g.release)
	waitReply(t, ch)

	_, err = s.Ask(context.Background(), "third", "")
	assert.NoError(t, err)
}

func TestAsk_EmptyQueryRefused(t *testing.T) {
	s := New(staticRecommender("x"))
	_, err := s.Ask(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Len(t, s.Messages(), 1)
}

func TestAsk_FallbackReplyStillOrdered(t *testing.T) {
	s := New(staticRecommender("I'm sorry, I'm offline right now."))
	ch, err := s.Ask(context.Background(), "hello", "")
	require.NoError(t, err)
	waitReply(t, ch)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, SpeakerUser, msgs[1].Speaker)
	assert.Equal(t, SpeakerAssistant, msgs[2].Speaker)
	assert.Equal(t, "I'm sorry, I'm offline right now.", msgs[2].Text)
}
