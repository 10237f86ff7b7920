package notify

import "context"

// Notifier delivers a text message to a user of a messaging platform.
type Notifier interface {
	Name() string

	// Push sends text to the recipient identified by to.
	Push(ctx context.Context, to string, text string) error
}

// Nop drops every message. It backs the "none" provider.
type Nop struct{}

func (Nop) Name() string { return "none" }

func (Nop) Push(context.Context, string, string) error { return nil }
