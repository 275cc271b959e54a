package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingSender struct {
	mu   sync.Mutex
	got  []Message
	fail bool
}

func (s *recordingSender) SendToUser(_ context.Context, userID uint, title, body string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, Message{UserID: userID, Title: title, Body: body})
	if s.fail {
		return Result{Failed: 1}, errors.New("push provider down")
	}
	return Result{Sent: 1}, nil
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 10, zerolog.Nop())

	d.Notify(Message{UserID: 1, Title: "a"})
	d.Notify(Message{UserID: 2, Title: "b"})
	d.Close()

	assert.Len(t, sender.got, 2)
	assert.Equal(t, uint(1), sender.got[0].UserID)
}

func TestDispatcher_SenderFailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{fail: true}
	d := NewDispatcher(sender, 1, zerolog.Nop())

	assert.NotPanics(t, func() {
		d.Notify(Message{UserID: 7, Title: "x"})
		d.Close()
	})
	assert.Len(t, sender.got, 1)
}

func TestDispatcher_CloseTwice(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, 1, zerolog.Nop())
	d.Close()
	assert.NotPanics(t, d.Close)
}
