package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"psched/internal/modules/chat/domain"
	"psched/internal/modules/chat/service"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type seqIDs struct{ n int }

func (g *seqIDs) New() string {
	g.n++
	return fmt.Sprintf("msg-%d", g.n)
}

type fakeRelay struct {
	reply      string
	err        error
	lastUserID int
	calls      int
}

func (f *fakeRelay) Ask(_ context.Context, userID int, _ string) (string, error) {
	f.calls++
	f.lastUserID = userID
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type memStore struct {
	messages map[string][]domain.Message
}

func newMemStore() *memStore {
	return &memStore{messages: map[string][]domain.Message{}}
}

func (s *memStore) Append(_ context.Context, userKey string, message domain.Message) error {
	s.messages[userKey] = append(s.messages[userKey], message)
	return nil
}

func (s *memStore) List(_ context.Context, userKey string) ([]domain.Message, error) {
	return s.messages[userKey], nil
}

func (s *memStore) Clear(_ context.Context, userKey string) error {
	delete(s.messages, userKey)
	return nil
}

type fakeIdentity struct {
	userID      int
	userKey     string
	displayName string
}

func (f fakeIdentity) Current(context.Context) (int, string, string, error) {
	return f.userID, f.userKey, f.displayName, nil
}

type countingInvalidator struct {
	calls int
	err   error
}

func (c *countingInvalidator) Invalidate(context.Context, string) error {
	c.calls++
	return c.err
}

func newService(relay *fakeRelay, store *memStore, inv *countingInvalidator) *service.ChatService {
	clk := fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return service.NewChatService(clk, &seqIDs{}, relay, store,
		fakeIdentity{userID: 7, userKey: "user-7", displayName: "Ada"}, inv)
}

func TestSendPersistsBothHalves(t *testing.T) {
	t.Parallel()
	relay := &fakeRelay{reply: "Sure, here's your schedule."}
	store := newMemStore()
	inv := &countingInvalidator{}
	svc := newService(relay, store, inv)

	userMsg, assistantMsg, mutated, err := svc.Send(context.Background(), "  what's next?  ")
	if err != nil {
		t.Fatalf("send should succeed: %v", err)
	}
	if userMsg.Text != "what's next?" {
		t.Fatalf("user text should be trimmed, got %q", userMsg.Text)
	}
	if assistantMsg.Sender != domain.SenderAssistant {
		t.Fatalf("reply should come from the assistant")
	}
	if mutated {
		t.Fatalf("plain reply should not flag a mutation")
	}
	if inv.calls != 0 {
		t.Fatalf("plain reply should not invalidate, got %d calls", inv.calls)
	}
	if relay.lastUserID != 7 {
		t.Fatalf("relay should carry the user id, got %d", relay.lastUserID)
	}

	stored := store.messages["user-7"]
	if len(stored) != 2 {
		t.Fatalf("got %d stored messages, want 2", len(stored))
	}
	if stored[0].Sender != domain.SenderUser || stored[1].Sender != domain.SenderAssistant {
		t.Fatalf("transcript order should be user then assistant")
	}
}

func TestSendMutationInvalidatesOnce(t *testing.T) {
	t.Parallel()
	relay := &fakeRelay{reply: "✅ Task created successfully: Standup"}
	store := newMemStore()
	inv := &countingInvalidator{}
	svc := newService(relay, store, inv)

	_, _, mutated, err := svc.Send(context.Background(), "add standup tomorrow 9am")
	if err != nil {
		t.Fatalf("send should succeed: %v", err)
	}
	if !mutated {
		t.Fatalf("marker reply should flag a mutation")
	}
	if inv.calls != 1 {
		t.Fatalf("mutation should invalidate exactly once, got %d", inv.calls)
	}
}

func TestSendInvalidatorFailureIsNotFatal(t *testing.T) {
	t.Parallel()
	relay := &fakeRelay{reply: "✅ Task deleted successfully: reminder"}
	store := newMemStore()
	inv := &countingInvalidator{err: errors.New("backend down")}
	svc := newService(relay, store, inv)

	_, _, mutated, err := svc.Send(context.Background(), "delete the reminder")
	if err != nil {
		t.Fatalf("a stale cache should not fail the exchange: %v", err)
	}
	if !mutated {
		t.Fatalf("marker reply should still flag the mutation")
	}
}

func TestSendKeepsUserMessageWhenRelayFails(t *testing.T) {
	t.Parallel()
	relay := &fakeRelay{err: errors.New("relay down")}
	store := newMemStore()
	svc := newService(relay, store, &countingInvalidator{})

	if _, _, _, err := svc.Send(context.Background(), "hello"); err == nil {
		t.Fatalf("relay failure should surface")
	}
	stored := store.messages["user-7"]
	if len(stored) != 1 || stored[0].Sender != domain.SenderUser {
		t.Fatalf("the asked question should survive a failed relay, got %v", stored)
	}
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	t.Parallel()
	relay := &fakeRelay{reply: "unused"}
	svc := newService(relay, newMemStore(), &countingInvalidator{})

	if _, _, _, err := svc.Send(context.Background(), "   "); err == nil {
		t.Fatalf("blank message should fail")
	}
	if relay.calls != 0 {
		t.Fatalf("blank message should not reach the relay")
	}
}

func TestHistorySynthesizesGreeting(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	svc := newService(&fakeRelay{}, store, &countingInvalidator{})

	messages, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("history should succeed: %v", err)
	}
	if len(messages) != 1 || messages[0].Sender != domain.SenderAssistant {
		t.Fatalf("fresh history should be one assistant greeting, got %v", messages)
	}
	if len(store.messages["user-7"]) != 1 {
		t.Fatalf("the greeting should be persisted")
	}

	// A second call replays the stored greeting instead of appending another.
	again, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("second history should succeed: %v", err)
	}
	if len(again) != 1 || again[0].ID != messages[0].ID {
		t.Fatalf("greeting should not be duplicated, got %v", again)
	}
}

func TestClearDropsOnlyCurrentUser(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	store.messages["user-9"] = []domain.Message{{ID: "other", Text: "hi", Sender: domain.SenderUser}}
	svc := newService(&fakeRelay{}, store, &countingInvalidator{})

	if _, err := svc.History(context.Background()); err != nil {
		t.Fatalf("history should succeed: %v", err)
	}
	if err := svc.Clear(context.Background()); err != nil {
		t.Fatalf("clear should succeed: %v", err)
	}
	if len(store.messages["user-7"]) != 0 {
		t.Fatalf("current user's transcript should be gone")
	}
	if len(store.messages["user-9"]) != 1 {
		t.Fatalf("other users' transcripts should survive")
	}
}
