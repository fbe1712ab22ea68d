package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"psched/internal/modules/auth/domain"
	authout "psched/internal/modules/auth/port/out"
	apperrors "psched/internal/platform/errors"
)

type AuthService struct {
	directory authout.Directory
	store     authout.SessionStore
	purger    authout.TranscriptPurger
}

func NewAuthService(directory authout.Directory, store authout.SessionStore, purger authout.TranscriptPurger) *AuthService {
	return &AuthService{directory: directory, store: store, purger: purger}
}

func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	if err := reg.Credentials.Validate(); err != nil {
		return domain.Session{}, err
	}
	// The backend falls back to the username when no display name is given;
	// doing it here keeps the greeting personalized even on older servers.
	if strings.TrimSpace(reg.Name) == "" {
		reg.Name = reg.Username
	}
	session, err := s.directory.Register(ctx, reg)
	if err != nil {
		return domain.Session{}, err
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("backend returned malformed user: %w", err)
	}
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	if err := creds.Validate(); err != nil {
		return domain.Session{}, err
	}
	session, err := s.directory.Login(ctx, creds)
	if err != nil {
		return domain.Session{}, err
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("backend returned malformed user: %w", err)
	}
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Logout purges the user's transcripts before dropping the session blob, so
// the purge still knows whose rows to remove. Logging out while already
// logged out is a no-op.
func (s *AuthService) Logout(ctx context.Context) error {
	session, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotLoggedIn) {
			return nil
		}
		return err
	}
	if err := s.purger.Purge(ctx, session.Key()); err != nil {
		return err
	}
	return s.store.Clear(ctx)
}

func (s *AuthService) Current(ctx context.Context) (domain.Session, error) {
	return s.store.Load(ctx)
}
