package service

import (
	"context"
	"fmt"
	"strings"

	"psched/internal/modules/chat/domain"
	chatout "psched/internal/modules/chat/port/out"
	"psched/internal/platform/clock"
	"psched/internal/platform/id"
)

type ChatService struct {
	clock       clock.Clock
	idGen       id.Generator
	relay       chatout.Relay
	store       chatout.TranscriptStore
	ident       chatout.Identity
	invalidator chatout.TaskInvalidator
}

func NewChatService(clk clock.Clock, idGen id.Generator, relay chatout.Relay, store chatout.TranscriptStore, ident chatout.Identity, invalidator chatout.TaskInvalidator) *ChatService {
	return &ChatService{clock: clk, idGen: idGen, relay: relay, store: store, ident: ident, invalidator: invalidator}
}

// Send relays one message and persists both halves of the exchange. The user
// half is stored before the network call so a failed relay still shows what
// was asked.
func (s *ChatService) Send(ctx context.Context, text string) (domain.Message, domain.Message, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, domain.Message{}, false, fmt.Errorf("message is required")
	}
	userID, userKey, _, err := s.ident.Current(ctx)
	if err != nil {
		return domain.Message{}, domain.Message{}, false, err
	}

	userMsg := domain.Message{
		ID:        s.idGen.New(),
		Text:      text,
		Sender:    domain.SenderUser,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Append(ctx, userKey, userMsg); err != nil {
		return domain.Message{}, domain.Message{}, false, err
	}

	reply, err := s.relay.Ask(ctx, userID, text)
	if err != nil {
		return userMsg, domain.Message{}, false, err
	}

	assistantMsg := domain.Message{
		ID:        s.idGen.New(),
		Text:      reply,
		Sender:    domain.SenderAssistant,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Append(ctx, userKey, assistantMsg); err != nil {
		return userMsg, assistantMsg, false, err
	}

	mutated := domain.MutatedTasks(reply)
	if mutated {
		if err := s.invalidator.Invalidate(ctx, "assistant"); err != nil {
			// The exchange itself succeeded; a failed refresh only leaves the
			// cache stale and is already recorded there.
			return userMsg, assistantMsg, mutated, nil
		}
	}
	return userMsg, assistantMsg, mutated, nil
}

// History loads the stored transcript, or synthesizes a greeting for a fresh
// one.
func (s *ChatService) History(ctx context.Context) ([]domain.Message, error) {
	_, userKey, displayName, err := s.ident.Current(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.List(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		return messages, nil
	}
	greeting := domain.Message{
		ID:        s.idGen.New(),
		Text:      domain.Greeting(displayName),
		Sender:    domain.SenderAssistant,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Append(ctx, userKey, greeting); err != nil {
		return nil, err
	}
	return []domain.Message{greeting}, nil
}

func (s *ChatService) Clear(ctx context.Context) error {
	_, userKey, _, err := s.ident.Current(ctx)
	if err != nil {
		return err
	}
	return s.store.Clear(ctx, userKey)
}
