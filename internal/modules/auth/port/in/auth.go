package in

import (
	"context"

	"psched/internal/modules/auth/dto"
)

type Usecase interface {
	Register(ctx context.Context, input dto.RegisterInput) (dto.SessionOutput, error)
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	// Logout clears the stored session and the user's local transcripts.
	// Nothing is invalidated server-side.
	Logout(ctx context.Context) error
	Current(ctx context.Context) (dto.SessionOutput, error)
}
