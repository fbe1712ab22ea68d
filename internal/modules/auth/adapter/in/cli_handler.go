package in

import (
	"context"

	"psched/internal/modules/auth/dto"
	authin "psched/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, input dto.RegisterInput) (dto.SessionOutput, error) {
	return h.usecase.Register(ctx, input)
}

func (h CLIHandler) Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error) {
	return h.usecase.Login(ctx, input)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Current(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Current(ctx)
}
