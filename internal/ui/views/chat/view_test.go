package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	chatdto "psched/internal/modules/chat/dto"
	"psched/internal/ui/views/chat"
)

type fakePort struct {
	history []chatdto.MessageOutput
	sendErr error
}

func (p *fakePort) Send(_ context.Context, text string) (chatdto.ExchangeOutput, error) {
	if p.sendErr != nil {
		return chatdto.ExchangeOutput{}, p.sendErr
	}
	now := time.Now()
	return chatdto.ExchangeOutput{
		User:      chatdto.MessageOutput{ID: "u", Text: text, Sender: "user", CreatedAt: now},
		Assistant: chatdto.MessageOutput{ID: "a", Text: "noted: " + text, Sender: "assistant", CreatedAt: now},
	}, nil
}

func (p *fakePort) History(context.Context) ([]chatdto.MessageOutput, error) {
	return p.history, nil
}

func (p *fakePort) Clear(context.Context) error { return nil }

func typed(t *testing.T, m chat.Model, text string) (chat.Model, tea.Cmd) {
	t.Helper()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSendEchoesUserMessageBeforeReply(t *testing.T) {
	t.Parallel()

	m := chat.New(&fakePort{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Focus()

	m, _ = typed(t, m, "add milk to the list")

	if !strings.Contains(m.View(), "add milk to the list") {
		t.Fatalf("sent message is not visible before the reply arrives")
	}
}

func TestFailedSendKeepsUserMessageVisible(t *testing.T) {
	t.Parallel()

	m := chat.New(&fakePort{sendErr: errors.New("relay down")})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Focus()

	m, cmd := typed(t, m, "hello")
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batched send command")
	}
	for _, sub := range batch {
		m, _ = m.Update(sub())
	}

	view := m.View()
	if !strings.Contains(view, "hello") {
		t.Fatalf("user message disappeared after the relay failed")
	}
	if !strings.Contains(view, "relay down") {
		t.Fatalf("relay error is not surfaced")
	}
}

func TestTypingTracksInputFocus(t *testing.T) {
	t.Parallel()

	m := chat.New(&fakePort{})
	if m.Typing() {
		t.Fatalf("input reports focus before Focus")
	}
	m.Focus()
	if !m.Typing() {
		t.Fatalf("input does not report focus after Focus")
	}
	m.Blur()
	if m.Typing() {
		t.Fatalf("input still reports focus after Blur")
	}
}
