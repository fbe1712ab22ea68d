package out_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"psched/internal/modules/chat/adapter/out"
	"psched/internal/modules/chat/domain"
)

func newStore(t *testing.T) *out.SQLiteTranscriptStore {
	t.Helper()
	store, err := out.NewSQLiteTranscriptStore(filepath.Join(t.TempDir(), "psched.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func message(id, text string, sender domain.Sender) domain.Message {
	return domain.Message{
		ID:        id,
		Text:      text,
		Sender:    sender,
		CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestTranscriptStorePreservesOrder(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		sender := domain.SenderUser
		if i%2 == 1 {
			sender = domain.SenderAssistant
		}
		msg := message(fmt.Sprintf("m-%d", i), fmt.Sprintf("message %d", i), sender)
		if err := store.Append(ctx, "7", msg); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	messages, err := store.List(ctx, "7")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 5 {
		t.Fatalf("got %d messages, want 5", len(messages))
	}
	for i, m := range messages {
		if m.ID != fmt.Sprintf("m-%d", i) {
			t.Fatalf("message %d out of order: %s", i, m.ID)
		}
	}
}

func TestTranscriptStoreNamespacesUsers(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, "7", message("a", "ada's message", domain.SenderUser)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, "guest", message("b", "guest message", domain.SenderUser)); err != nil {
		t.Fatalf("append: %v", err)
	}

	ada, err := store.List(ctx, "7")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ada) != 1 || ada[0].ID != "a" {
		t.Fatalf("user 7 should only see their own messages, got %v", ada)
	}

	if err := store.Clear(ctx, "7"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	guest, err := store.List(ctx, "guest")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(guest) != 1 {
		t.Fatalf("clearing one user should not touch another, got %v", guest)
	}
}

func TestTranscriptStoreRoundTripsFields(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	want := message("m-1", "✅ Task created successfully: Standup", domain.SenderAssistant)
	if err := store.Append(ctx, "7", want); err != nil {
		t.Fatalf("append: %v", err)
	}

	messages, err := store.List(ctx, "7")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	got := messages[0]
	if got.Text != want.Text || got.Sender != want.Sender || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTranscriptStoreRejectsInvalidMessage(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	if err := store.Append(context.Background(), "7", domain.Message{ID: "x"}); err == nil {
		t.Fatalf("invalid message should fail validation")
	}
}
