package out

import (
	"context"

	"psched/internal/modules/auth/domain"
)

// Directory is the backend user endpoint.
type Directory interface {
	Register(ctx context.Context, reg domain.Registration) (domain.Session, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.Session, error)
}

// SessionStore persists the session blob between runs.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}

// TranscriptPurger removes one user's locally stored chat history at logout.
type TranscriptPurger interface {
	Purge(ctx context.Context, userKey string) error
}
