package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"psched/internal/modules/auth/adapter/out"
	"psched/internal/modules/auth/domain"
	apperrors "psched/internal/platform/errors"
)

func TestFileSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	store := out.NewFileSessionStore(path)
	ctx := context.Background()

	session := domain.Session{UserID: 7, Username: "ada", Name: "Ada", Email: "ada@example.com"}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save should succeed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load should succeed: %v", err)
	}
	if loaded != session {
		t.Fatalf("got %+v, want %+v", loaded, session)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("session file should be private, got %v", info.Mode().Perm())
	}
}

func TestFileSessionStoreMissingFile(t *testing.T) {
	t.Parallel()
	store := out.NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))

	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("missing file should mean not logged in, got %v", err)
	}
}

func TestFileSessionStoreRejectsAnonymousBlob(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"id": 0, "username": "ghost"}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	store := out.NewFileSessionStore(path)

	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("zero user id should mean not logged in, got %v", err)
	}
}

func TestFileSessionStoreClearIsIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	store := out.NewFileSessionStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, domain.Session{UserID: 7, Username: "ada"}); err != nil {
		t.Fatalf("save should succeed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear should succeed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clearing twice should be a no-op: %v", err)
	}
}
