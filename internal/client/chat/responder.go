package chat

import (
	"context"
	"sync/atomic"
	"time"
)

// Responder produces the assistant side of a conversation. It is only
// invoked after a credit has been consumed for the user's message.
type Responder interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// CannedResponder cycles through fixed replies after a short delay.
// It stands in for a real model; swap in another Responder to change
// that.
type CannedResponder struct {
	delay   time.Duration
	replies []string
	next    atomic.Uint64
}

func NewCannedResponder(delay time.Duration) *CannedResponder {
	return &CannedResponder{
		delay: delay,
		replies: []string{
			"That's an interesting point. Could you tell me more about it?",
			"I see what you mean. Here's how I'd think about that.",
			"Good question. Let me break it down for you.",
			"Thanks for sharing that. Here's a thought in response.",
		},
	}
}

func (r *CannedResponder) Reply(ctx context.Context, prompt string) (string, error) {
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	idx := r.next.Add(1) - 1
	return r.replies[idx%uint64(len(r.replies))], nil
}
