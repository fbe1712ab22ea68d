package domain

import (
	"fmt"
	"strings"
	"time"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

type Message struct {
	ID        string
	Text      string
	Sender    Sender
	CreatedAt time.Time
}

func (s Sender) Validate() error {
	switch s {
	case SenderUser, SenderAssistant:
		return nil
	default:
		return fmt.Errorf("unsupported sender %q", string(s))
	}
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("text is required")
	}
	return m.Sender.Validate()
}

// mutationMarkers are the literal confirmations the backend embeds when the
// assistant changed tasks server-side. The client pattern-matches these to
// know the cache is stale.
var mutationMarkers = []string{
	"✅ Task created successfully:",
	"✅ Task updated successfully:",
	"✅ Task deleted successfully:",
}

// MutatedTasks reports whether an assistant reply confirms a server-side task
// mutation.
func MutatedTasks(text string) bool {
	for _, marker := range mutationMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Greeting synthesizes the first transcript entry shown when no history
// exists yet.
func Greeting(displayName string) string {
	if strings.TrimSpace(displayName) != "" {
		return fmt.Sprintf("Hi %s! I'm your personal scheduling assistant. How can I help you today?", displayName)
	}
	return "Hi! I'm your scheduling assistant. How can I help you today? You can create, edit, or delete tasks by simply describing what you need."
}
