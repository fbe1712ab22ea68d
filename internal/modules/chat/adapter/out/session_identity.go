package out

import (
	"context"
	"errors"

	authin "psched/internal/modules/auth/port/in"
	chatout "psched/internal/modules/chat/port/out"
	apperrors "psched/internal/platform/errors"
)

// SessionIdentity resolves the transcript namespace for the chat module.
// Without a session the chat still works against the backend's anonymous
// path, under the "guest" key.
type SessionIdentity struct {
	auth authin.Usecase
}

func NewSessionIdentity(auth authin.Usecase) chatout.Identity {
	return &SessionIdentity{auth: auth}
}

func (a *SessionIdentity) Current(ctx context.Context) (int, string, string, error) {
	session, err := a.auth.Current(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotLoggedIn) {
			return 0, "guest", "", nil
		}
		return 0, "", "", err
	}
	return session.UserID, session.Key, session.DisplayName, nil
}
