package service_test

import (
	"context"
	"errors"
	"testing"

	"psched/internal/modules/auth/domain"
	"psched/internal/modules/auth/service"
	apperrors "psched/internal/platform/errors"
)

type fakeDirectory struct {
	session  domain.Session
	err      error
	lastName string
}

func (f *fakeDirectory) Register(_ context.Context, reg domain.Registration) (domain.Session, error) {
	f.lastName = reg.Name
	return f.session, f.err
}

func (f *fakeDirectory) Login(context.Context, domain.Credentials) (domain.Session, error) {
	return f.session, f.err
}

type memSessionStore struct {
	session domain.Session
	saved   bool
}

func (s *memSessionStore) Save(_ context.Context, session domain.Session) error {
	s.session = session
	s.saved = true
	return nil
}

func (s *memSessionStore) Load(context.Context) (domain.Session, error) {
	if !s.saved {
		return domain.Session{}, apperrors.ErrNotLoggedIn
	}
	return s.session, nil
}

func (s *memSessionStore) Clear(context.Context) error {
	s.session = domain.Session{}
	s.saved = false
	return nil
}

type recordingPurger struct {
	keys []string
	err  error
}

func (p *recordingPurger) Purge(_ context.Context, userKey string) error {
	p.keys = append(p.keys, userKey)
	return p.err
}

func validSession() domain.Session {
	return domain.Session{UserID: 7, Username: "ada", Name: "Ada"}
}

func TestLoginStoresSession(t *testing.T) {
	t.Parallel()
	store := &memSessionStore{}
	svc := service.NewAuthService(&fakeDirectory{session: validSession()}, store, &recordingPurger{})

	session, err := svc.Login(context.Background(), domain.Credentials{Username: "ada", Password: "pw"})
	if err != nil {
		t.Fatalf("login should succeed: %v", err)
	}
	if session.UserID != 7 {
		t.Fatalf("got user id %d, want 7", session.UserID)
	}
	if !store.saved {
		t.Fatalf("login should persist the session")
	}
}

func TestLoginValidatesCredentials(t *testing.T) {
	t.Parallel()
	svc := service.NewAuthService(&fakeDirectory{session: validSession()}, &memSessionStore{}, &recordingPurger{})

	if _, err := svc.Login(context.Background(), domain.Credentials{Username: "", Password: "pw"}); err == nil {
		t.Fatalf("missing username should fail")
	}
	if _, err := svc.Login(context.Background(), domain.Credentials{Username: "ada", Password: ""}); err == nil {
		t.Fatalf("missing password should fail")
	}
}

func TestLoginRejectsMalformedBackendUser(t *testing.T) {
	t.Parallel()
	dir := &fakeDirectory{session: domain.Session{UserID: 0, Username: "ada"}}
	store := &memSessionStore{}
	svc := service.NewAuthService(dir, store, &recordingPurger{})

	if _, err := svc.Login(context.Background(), domain.Credentials{Username: "ada", Password: "pw"}); err == nil {
		t.Fatalf("zero user id from the backend should fail")
	}
	if store.saved {
		t.Fatalf("malformed session should not be persisted")
	}
}

func TestRegisterDefaultsNameToUsername(t *testing.T) {
	t.Parallel()
	dir := &fakeDirectory{session: validSession()}
	svc := service.NewAuthService(dir, &memSessionStore{}, &recordingPurger{})

	reg := domain.Registration{Credentials: domain.Credentials{Username: "ada", Password: "pw"}}
	if _, err := svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("register should succeed: %v", err)
	}
	if dir.lastName != "ada" {
		t.Fatalf("blank name should default to the username, got %q", dir.lastName)
	}
}

func TestLogoutPurgesOwnTranscripts(t *testing.T) {
	t.Parallel()
	store := &memSessionStore{}
	purger := &recordingPurger{}
	svc := service.NewAuthService(&fakeDirectory{session: validSession()}, store, purger)

	if _, err := svc.Login(context.Background(), domain.Credentials{Username: "ada", Password: "pw"}); err != nil {
		t.Fatalf("login should succeed: %v", err)
	}
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout should succeed: %v", err)
	}
	if len(purger.keys) != 1 || purger.keys[0] != "7" {
		t.Fatalf("logout should purge the user's own key, got %v", purger.keys)
	}
	if _, err := svc.Current(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("session should be gone after logout, got %v", err)
	}
}

func TestLogoutWithoutSessionIsNoop(t *testing.T) {
	t.Parallel()
	purger := &recordingPurger{}
	svc := service.NewAuthService(&fakeDirectory{}, &memSessionStore{}, purger)

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logging out while logged out should be a no-op: %v", err)
	}
	if len(purger.keys) != 0 {
		t.Fatalf("nothing should be purged without a session, got %v", purger.keys)
	}
}

func TestLogoutStopsWhenPurgeFails(t *testing.T) {
	t.Parallel()
	store := &memSessionStore{}
	purger := &recordingPurger{err: errors.New("db locked")}
	svc := service.NewAuthService(&fakeDirectory{session: validSession()}, store, purger)

	if _, err := svc.Login(context.Background(), domain.Credentials{Username: "ada", Password: "pw"}); err != nil {
		t.Fatalf("login should succeed: %v", err)
	}
	if err := svc.Logout(context.Background()); err == nil {
		t.Fatalf("a failed purge should surface")
	}
	if !store.saved {
		t.Fatalf("the session should survive so logout can be retried")
	}
}
