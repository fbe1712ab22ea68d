package usecase

import (
	"context"

	"psched/internal/modules/auth/domain"
	"psched/internal/modules/auth/dto"
	authin "psched/internal/modules/auth/port/in"
	"psched/internal/modules/auth/service"
)

type Interactor struct {
	svc *service.AuthService
}

func NewInteractor(svc *service.AuthService) authin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.SessionOutput, error) {
	session, err := i.svc.Register(ctx, domain.Registration{
		Credentials: domain.Credentials{Username: input.Username, Password: input.Password},
		Name:        input.Name,
		Email:       input.Email,
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error) {
	session, err := i.svc.Login(ctx, domain.Credentials{Username: input.Username, Password: input.Password})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func (i *Interactor) Current(ctx context.Context) (dto.SessionOutput, error) {
	session, err := i.svc.Current(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func toOutput(session domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		UserID:      session.UserID,
		Username:    session.Username,
		Name:        session.Name,
		Email:       session.Email,
		DisplayName: session.DisplayName(),
		Key:         session.Key(),
	}
}
