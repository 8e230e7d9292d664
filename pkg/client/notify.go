package client

import (
	"sync"
	"time"
)

// Notifier receives user-facing transient messages. The client reports every
// request failure through it; domain operations add success messages.
type Notifier interface {
	Success(message string)
	Error(message string)
	Warning(message string)
	Info(message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
func (NopNotifier) Warning(string) {}
func (NopNotifier) Info(string)    {}

// Notification is one transient message with its expiry time.
type Notification struct {
	Type      string
	Message   string
	ExpiresAt time.Time
}

// FeedNotifier keeps an in-memory feed of notifications, each expiring after
// a fixed duration.
type FeedNotifier struct {
	mu       sync.Mutex
	duration time.Duration
	feed     []Notification
	now      func() time.Time
}

const defaultToastDuration = 5 * time.Second

func NewFeedNotifier(duration time.Duration) *FeedNotifier {
	if duration <= 0 {
		duration = defaultToastDuration
	}
	return &FeedNotifier{duration: duration, now: time.Now}
}

func (n *FeedNotifier) push(kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.feed = append(n.feed, Notification{
		Type:      kind,
		Message:   message,
		ExpiresAt: n.now().Add(n.duration),
	})
}

func (n *FeedNotifier) Success(message string) { n.push("success", message) }
func (n *FeedNotifier) Error(message string)   { n.push("error", message) }
func (n *FeedNotifier) Warning(message string) { n.push("warning", message) }
func (n *FeedNotifier) Info(message string)    { n.push("info", message) }

// Active returns the notifications that have not yet expired, dropping the
// rest from the feed.
func (n *FeedNotifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	kept := n.feed[:0]
	for _, item := range n.feed {
		if item.ExpiresAt.After(now) {
			kept = append(kept, item)
		}
	}
	n.feed = kept
	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}
