package out

import (
	"context"

	authin "psched/internal/modules/auth/port/in"
	taskout "psched/internal/modules/task/port/out"
)

// SessionIdentity narrows the auth usecase to the single question the task
// cache asks: whose tasks am I fetching.
type SessionIdentity struct {
	auth authin.Usecase
}

func NewSessionIdentity(auth authin.Usecase) taskout.Identity {
	return &SessionIdentity{auth: auth}
}

func (a *SessionIdentity) CurrentUserID(ctx context.Context) (int, error) {
	session, err := a.auth.Current(ctx)
	if err != nil {
		return 0, err
	}
	return session.UserID, nil
}
